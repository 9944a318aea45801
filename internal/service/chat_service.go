package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"legal-llm/internal/domain"
	"legal-llm/internal/faq"
	"legal-llm/internal/guard"
	"legal-llm/internal/llm"
	"legal-llm/internal/repository"
)

var ErrEmptyQuestion = errors.New("empty question")

// ChatService orquesta un turno completo: guardas, prompt, modelo,
// disclaimer y persistencia de ambos mensajes.
type ChatService struct {
	llmClient   llm.CompletionClient
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	faqStore    *faq.Store
	guards      *guard.Ladder
	history     HistoryService
	prompts     LegalPromptBuilder
}

// Answer es el resultado de un turno. Guarded indica que una regla
// cortocircuitó y el modelo nunca fue llamado.
type Answer struct {
	UserMessage      domain.Message `json:"user_message"`
	AssistantMessage domain.Message `json:"assistant_message"`
	Guarded          bool           `json:"guarded"`
	GuardRule        string         `json:"guard_rule,omitempty"`
}

func NewChatService(
	llmClient llm.CompletionClient,
	sessionRepo repository.SessionRepository,
	messageRepo repository.MessageRepository,
	faqStore *faq.Store,
	guards *guard.Ladder,
	history HistoryService,
) *ChatService {
	return &ChatService{
		llmClient:   llmClient,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		faqStore:    faqStore,
		guards:      guards,
		history:     history,
	}
}

// CreateSession crea una sesión nueva con el área seleccionada.
func (s *ChatService) CreateSession(ctx context.Context, d domain.Legal) (domain.Session, error) {
	session := domain.Session{
		ID:        uuid.NewString(),
		Domain:    d,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Session devuelve la sesión por id.
func (s *ChatService) Session(ctx context.Context, id string) (domain.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// Ask procesa una pregunta dentro de una sesión. Un turno se procesa por
// completo antes de aceptar el siguiente; el cliente LLM se inyecta una vez
// y se reutiliza entre turnos.
func (s *ChatService) Ask(ctx context.Context, sessionID string, d domain.Legal, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return Answer{}, fmt.Errorf("get session: %w", err)
	}

	// El historial se renderiza antes de persistir la pregunta actual:
	// "Conversation so far" contiene solo turnos previos.
	historyText, err := s.history.Render(ctx, sessionID)
	if err != nil {
		return Answer{}, fmt.Errorf("render history: %w", err)
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return Answer{}, fmt.Errorf("persist user message: %w", err)
	}

	if res, hit := s.guards.Evaluate(d, question); hit {
		assistantMsg, err := s.appendAssistant(ctx, sessionID, res.Response)
		if err != nil {
			return Answer{}, err
		}
		return Answer{
			UserMessage:      userMsg,
			AssistantMessage: assistantMsg,
			Guarded:          true,
			GuardRule:        res.Rule,
		}, nil
	}

	system, user := s.prompts.Build(d, s.faqStore.BuildContext(d), historyText, question)

	response, err := s.llmClient.Complete(ctx, system, user)
	if err != nil {
		return Answer{}, fmt.Errorf("llm complete: %w", err)
	}

	assistantMsg, err := s.appendAssistant(ctx, sessionID, ensureDisclaimer(response))
	if err != nil {
		return Answer{}, err
	}

	return Answer{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

// Clear borra el historial de la sesión; el siguiente turno arma su prompt
// desde cero.
func (s *ChatService) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := s.messageRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// History expone los mensajes de la sesión en orden cronológico.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s.messageRepo.ListBySessionID(ctx, sessionID)
}

func (s *ChatService) appendAssistant(ctx context.Context, sessionID, content string) (domain.Message, error) {
	msg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("persist assistant message: %w", err)
	}
	return msg, nil
}

// ensureDisclaimer garantiza el cierre exacto aunque el modelo lo omita o
// lo parafrasee.
func ensureDisclaimer(answer string) string {
	trimmed := strings.TrimSpace(answer)
	if strings.HasSuffix(trimmed, Disclaimer) {
		return trimmed
	}
	return trimmed + "\n\n" + Disclaimer
}
