package repository

import (
	"context"
	"sync"

	"legal-llm/internal/domain"
)

// MemoryMessageRepository mantiene el historial en memoria por sesión.
// Lo usan el CLI y los tests; el mutex permite sesiones concurrentes.
type MemoryMessageRepository struct {
	mu       sync.Mutex
	bySessID map[string][]domain.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{bySessID: make(map[string][]domain.Message)}
}

func (r *MemoryMessageRepository) Create(_ context.Context, message domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySessID[message.SessionID] = append(r.bySessID[message.SessionID], message)
	return nil
}

func (r *MemoryMessageRepository) ListBySessionID(_ context.Context, sessionID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.bySessID[sessionID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *MemoryMessageRepository) DeleteBySessionID(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bySessID, sessionID)
	return nil
}

// MemorySessionRepository guarda sesiones en memoria.
type MemorySessionRepository struct {
	mu   sync.Mutex
	byID map[string]domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{byID: make(map[string]domain.Session)}
}

func (r *MemorySessionRepository) Create(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) GetByID(_ context.Context, id string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byID[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	return session, nil
}
