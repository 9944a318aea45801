package guard

import (
	"strings"
	"unicode/utf8"

	"legal-llm/internal/domain"
)

// Rule es un par predicado+respuesta. Check devuelve la respuesta enlatada
// cuando la pregunta debe cortocircuitar antes de llamar al modelo.
type Rule struct {
	Name  string
	Check func(d domain.Legal, question string) (string, bool)
}

// Result identifica la regla que disparó y su respuesta fija.
type Result struct {
	Rule     string `json:"rule"`
	Response string `json:"response"`
}

// Ladder evalúa reglas en orden; la primera coincidencia gana.
type Ladder struct {
	rules []Rule
}

func NewLadder(rules ...Rule) *Ladder {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Ladder{rules: rules}
}

// Evaluate recorre la escalera de arriba hacia abajo. Todas las reglas son
// puras y deterministas; no hay ranking ni aprendizaje.
func (l *Ladder) Evaluate(d domain.Legal, question string) (Result, bool) {
	for _, r := range l.rules {
		if resp, ok := r.Check(d, question); ok {
			return Result{Rule: r.Name, Response: resp}, true
		}
	}
	return Result{}, false
}

// DefaultRules arma la escalera por defecto: longitud mínima, pregunta
// demasiado genérica y desajuste de área.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "short-question", Check: checkShortQuestion},
		{Name: "generic-question", Check: checkGenericQuestion},
		{Name: "domain-mismatch", Check: checkDomainMismatch},
	}
}

const minQuestionRunes = 8

const shortQuestionResponse = "Could you share a bit more detail? Very short questions are hard to answer usefully. A sentence or two about what happened helps a lot."

const genericQuestionResponse = "Your question is quite broad. Could you clarify your situation, for example what happened, who was involved, and what outcome you are hoping for? That will help give more useful general information."

// Patrones demasiado amplios para responder sin contexto.
var genericPatterns = []string{
	"is this legal",
	"is it legal",
	"is it illegal",
	"can i sue",
	"what are my rights",
	"can i go to jail",
	"what should i do",
	"help me",
	"i need help",
}

func checkShortQuestion(_ domain.Legal, question string) (string, bool) {
	trimmed := strings.TrimSpace(question)
	if utf8.RuneCountInString(trimmed) < minQuestionRunes {
		return shortQuestionResponse, true
	}
	return "", false
}

func checkGenericQuestion(_ domain.Legal, question string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	for _, p := range genericPatterns {
		if strings.Contains(normalized, p) {
			return genericQuestionResponse, true
		}
	}
	return "", false
}
