package domain

import "time"

type Session struct {
	ID        string    `json:"id"`
	Domain    Legal     `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}
