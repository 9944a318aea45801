package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"legal-llm/internal/domain"
	"legal-llm/internal/repository"
)

// HistoryService define el contrato para renderizar el historial de una sesión.
type HistoryService interface {
	Render(ctx context.Context, sessionID string) (string, error)
}

// BasicHistoryService obtiene los últimos mensajes y los formatea como
// líneas "User:"/"Assistant:" para el prompt.
type BasicHistoryService struct {
	messageRepo repository.MessageRepository
	limit       int
}

func NewBasicHistoryService(messageRepo repository.MessageRepository, limit int) *BasicHistoryService {
	if limit <= 0 {
		limit = 10
	}
	return &BasicHistoryService{messageRepo: messageRepo, limit: limit}
}

func (s *BasicHistoryService) Render(ctx context.Context, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", nil
	}

	messages, err := s.messageRepo.ListBySessionID(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	if len(messages) == 0 {
		return "", nil
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	if len(messages) > s.limit {
		messages = messages[len(messages)-s.limit:]
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		role := "User"
		if strings.EqualFold(m.Role, domain.RoleAssistant) {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, m.Content))
	}

	return strings.Join(lines, "\n"), nil
}
