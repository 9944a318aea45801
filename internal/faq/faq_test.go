package faq

import (
	"strings"
	"testing"

	"legal-llm/internal/domain"
)

func TestBuildContext_IncludesAllEntriesInOrder(t *testing.T) {
	store := NewStore()

	for _, d := range domain.Domains() {
		entries := store.Entries(d)
		if len(entries) == 0 {
			continue
		}

		ctxText := store.BuildContext(d)
		if !strings.HasPrefix(ctxText, "Example FAQs and generic answers for "+d.String()+":") {
			t.Fatalf("expected header for %s, got: %s", d, ctxText)
		}

		pos := 0
		for _, e := range entries {
			qIdx := strings.Index(ctxText[pos:], "- Q: "+e.Question)
			if qIdx == -1 {
				t.Fatalf("missing question %q in context for %s", e.Question, d)
			}
			pos += qIdx
			aIdx := strings.Index(ctxText[pos:], "  A: "+e.Answer)
			if aIdx == -1 {
				t.Fatalf("missing answer after question %q for %s", e.Question, d)
			}
			pos += aIdx
		}
	}
}

func TestBuildContext_UnknownOrEmptyDomain(t *testing.T) {
	store := NewStore()

	if got := store.BuildContext(domain.DomainGeneral); got != "" {
		t.Fatalf("expected empty context for general domain, got: %q", got)
	}
	if got := store.BuildContext(domain.Legal("Maritime Law")); got != "" {
		t.Fatalf("expected empty context for unknown domain, got: %q", got)
	}
}

func TestParseDomain_DegradesToGeneral(t *testing.T) {
	if d := domain.ParseDomain("employment law"); d != domain.DomainEmployment {
		t.Fatalf("expected case-insensitive match, got %s", d)
	}
	if d := domain.ParseDomain("  Cyber Law  "); d != domain.DomainCyber {
		t.Fatalf("expected trimmed match, got %s", d)
	}
	if d := domain.ParseDomain("something else"); d != domain.DomainGeneral {
		t.Fatalf("expected fallback to general, got %s", d)
	}
}
