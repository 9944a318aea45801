package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"legal-llm/internal/domain"
	"legal-llm/internal/faq"
	"legal-llm/internal/guard"
	"legal-llm/internal/llm"
	"legal-llm/internal/repository"
)

func newTestChatService(mock *llm.MockClient) (*ChatService, domain.Session) {
	sessions := repository.NewMemorySessionRepository()
	messages := repository.NewMemoryMessageRepository()
	svc := NewChatService(
		mock,
		sessions,
		messages,
		faq.NewStore(),
		guard.NewLadder(),
		NewBasicHistoryService(messages, 10),
	)
	session, err := svc.CreateSession(context.Background(), domain.DomainGeneral)
	if err != nil {
		panic(err)
	}
	return svc, session
}

func TestAsk_GenericGuardShortCircuits(t *testing.T) {
	mock := &llm.MockClient{Response: "should never be used"}
	svc, session := newTestChatService(mock)

	ans, err := svc.Ask(context.Background(), session.ID, domain.DomainGeneral, "Is this legal in my case?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.Guarded || ans.GuardRule != "generic-question" {
		t.Fatalf("expected generic-question guard, got %+v", ans)
	}
	if mock.Calls != 0 {
		t.Fatalf("expected zero llm calls, got %d", mock.Calls)
	}

	history, err := svc.History(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected user+assistant messages persisted, got %d", len(history))
	}
	if history[1].Role != domain.RoleAssistant || history[1].Content != ans.AssistantMessage.Content {
		t.Fatalf("expected canned response persisted as assistant message")
	}
}

func TestAsk_ShortQuestionGuard(t *testing.T) {
	mock := &llm.MockClient{}
	svc, session := newTestChatService(mock)

	ans, err := svc.Ask(context.Background(), session.ID, domain.DomainGeneral, "  help  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.Guarded || ans.GuardRule != "short-question" {
		t.Fatalf("expected short-question guard, got %+v", ans)
	}
	if mock.Calls != 0 {
		t.Fatalf("expected zero llm calls, got %d", mock.Calls)
	}
}

func TestAsk_DomainMismatchGuard(t *testing.T) {
	mock := &llm.MockClient{}
	svc, session := newTestChatService(mock)

	ans, err := svc.Ask(context.Background(), session.ID, domain.DomainConsumer, "My employer fired me without notice last week")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.Guarded || ans.GuardRule != "domain-mismatch" {
		t.Fatalf("expected domain-mismatch guard, got %+v", ans)
	}
	if !strings.Contains(ans.AssistantMessage.Content, "Consumer Rights") {
		t.Fatalf("expected response to name Consumer Rights: %s", ans.AssistantMessage.Content)
	}
	if mock.Calls != 0 {
		t.Fatalf("expected zero llm calls, got %d", mock.Calls)
	}
}

func TestAsk_AppendsDisclaimer(t *testing.T) {
	mock := &llm.MockClient{Response: "In many places a tenant can dispute this."}
	svc, session := newTestChatService(mock)

	ans, err := svc.Ask(context.Background(), session.ID, domain.DomainCivil, "My landlord is keeping my security deposit, what generally happens in disputes like this?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Guarded {
		t.Fatalf("did not expect a guard to fire")
	}
	if mock.Calls != 1 {
		t.Fatalf("expected exactly one llm call, got %d", mock.Calls)
	}
	if !strings.HasSuffix(ans.AssistantMessage.Content, Disclaimer) {
		t.Fatalf("expected answer to end with disclaimer: %s", ans.AssistantMessage.Content)
	}
}

func TestAsk_DoesNotDuplicateDisclaimer(t *testing.T) {
	mock := &llm.MockClient{Response: "Generally you can escalate the complaint. " + Disclaimer}
	svc, session := newTestChatService(mock)

	ans, err := svc.Ask(context.Background(), session.ID, domain.DomainConsumer, "The seller refuses to repair my defective product, what options exist in general?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(ans.AssistantMessage.Content, Disclaimer) != 1 {
		t.Fatalf("expected a single disclaimer, got: %s", ans.AssistantMessage.Content)
	}
}

func TestAsk_IncludesPriorHistoryInPrompt(t *testing.T) {
	mock := &llm.MockClient{Response: "answer one"}
	svc, session := newTestChatService(mock)
	ctx := context.Background()

	first := "My landlord is keeping my security deposit without any reason"
	if _, err := svc.Ask(ctx, session.ID, domain.DomainCivil, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.LastUser, "No prior messages.") {
		t.Fatalf("expected first turn to have no history, got:\n%s", mock.LastUser)
	}

	mock.Response = "answer two"
	if _, err := svc.Ask(ctx, session.ID, domain.DomainCivil, "How long would a dispute like that usually take?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.LastUser, "User: "+first) {
		t.Fatalf("expected prior user turn in history, got:\n%s", mock.LastUser)
	}
	if !strings.Contains(mock.LastUser, "Assistant: answer one") {
		t.Fatalf("expected prior assistant turn in history, got:\n%s", mock.LastUser)
	}
}

func TestClear_ResetsHistory(t *testing.T) {
	mock := &llm.MockClient{Response: "first answer"}
	svc, session := newTestChatService(mock)
	ctx := context.Background()

	if _, err := svc.Ask(ctx, session.ID, domain.DomainCyber, "Someone hacked my account and posted screenshots of my chats"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Clear(ctx, session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, err := svc.History(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history after clear, got %d messages", len(history))
	}

	if _, err := svc.Ask(ctx, session.ID, domain.DomainCyber, "What generally counts as online harassment in most regions?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.LastUser, "No prior messages.") {
		t.Fatalf("expected no history after clear, got:\n%s", mock.LastUser)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc, session := newTestChatService(&llm.MockClient{})

	if _, err := svc.Ask(context.Background(), session.ID, domain.DomainGeneral, "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAsk_UnknownSession(t *testing.T) {
	svc, _ := newTestChatService(&llm.MockClient{})

	_, err := svc.Ask(context.Background(), "missing", domain.DomainGeneral, "A perfectly reasonable legal question about contracts")
	if !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAsk_LLMFailurePropagates(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("llm http error: status=503")}
	svc, session := newTestChatService(mock)

	_, err := svc.Ask(context.Background(), session.ID, domain.DomainCivil, "My neighbour built a wall over the property boundary line")
	if err == nil || !strings.Contains(err.Error(), "llm complete") {
		t.Fatalf("expected wrapped llm error, got %v", err)
	}

	history, herr := svc.History(context.Background(), session.ID)
	if herr != nil {
		t.Fatalf("unexpected error: %v", herr)
	}
	if len(history) != 1 || history[0].Role != domain.RoleUser {
		t.Fatalf("expected only the user message persisted on failure, got %d", len(history))
	}
}
