package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"legal-llm/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, id string) (domain.Session, error)
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (id, domain, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		string(session.Domain),
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT id, domain, created_at
		FROM sessions
		WHERE id = $1
	`
	var (
		session   domain.Session
		domainRaw string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&domainRaw,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	session.Domain = domain.ParseDomain(domainRaw)
	return session, nil
}
