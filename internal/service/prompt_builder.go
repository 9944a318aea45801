package service

import (
	"fmt"
	"strings"

	"legal-llm/internal/domain"
)

// Disclaimer es la frase exacta con la que debe terminar toda respuesta
// no cortocircuitada.
const Disclaimer = "This is general information, not legal advice. Please consult a qualified lawyer for advice on your specific situation."

// SystemPrompt fija las reglas de cumplimiento del asistente. No se
// parametriza por turno.
const SystemPrompt = `You are an AI assistant that gives GENERAL INFORMATION about basic legal topics,
not personalised legal advice.

SAFETY & COMPLIANCE RULES (VERY IMPORTANT):
- You are NOT a lawyer and NOT a law firm.
- You do NOT create a lawyer-client relationship.
- You only provide high-level, generic information.
- You MUST NOT draft contracts, notices, petitions, or formal legal documents.
- You MUST NOT tell users exactly what they 'should' do in their specific case.
- If a question is complex, high-stakes, or depends on local law, say that they should consult a qualified advocate or legal professional in their jurisdiction.
- Laws differ by country and change over time. You should speak in general terms (e.g., 'in many places', 'often', 'typically') rather than asserting that something is definitely legal or illegal everywhere.
- If the user asks for help evading law, doing something illegal, or harming others, refuse and suggest seeking lawful options only.
- Always include a short disclaimer at the end: '` + Disclaimer + `'`

// LegalPromptBuilder arma el par de mensajes system+user que consume el
// modelo en cada turno.
type LegalPromptBuilder struct{}

// Build devuelve el prompt de sistema fijo y la instrucción de usuario con
// área, contexto FAQ, historial y la pregunta literal.
func (LegalPromptBuilder) Build(d domain.Legal, faqContext, historyText, question string) (string, string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("User's selected legal domain: %s\n\n", d))

	// Contexto FAQ (o marcador cuando el área no tiene entradas).
	sb.WriteString("Here are some example FAQs and generic answers for this domain (if any):\n")
	sb.WriteString("---\n")
	if strings.TrimSpace(faqContext) == "" {
		sb.WriteString("No FAQs available for this domain.")
	} else {
		sb.WriteString(strings.TrimSpace(faqContext))
	}
	sb.WriteString("\n---\n\n")

	// Turnos previos, ya recortados por el servicio de historial.
	sb.WriteString("Conversation so far (if any):\n")
	if strings.TrimSpace(historyText) == "" {
		sb.WriteString("No prior messages.")
	} else {
		sb.WriteString(strings.TrimSpace(historyText))
	}
	sb.WriteString("\n\n")

	sb.WriteString("User's new question:\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", strings.TrimSpace(question)))

	sb.WriteString("TASK:\n")
	sb.WriteString("- Answer in simple, clear language.\n")
	sb.WriteString("- First, briefly identify which general area of law the question relates to and what the user seems to be asking.\n")
	sb.WriteString("- Provide general information, typical options, or processes that *may* apply in this kind of situation.\n")
	sb.WriteString("- Do NOT claim to know the exact law in the user's country or give final conclusions.\n")
	sb.WriteString("- Encourage the user to keep documents, screenshots, or written communication when relevant.\n")
	sb.WriteString("- If the question is vague or missing critical facts, say what extra information a lawyer would usually need.\n")
	sb.WriteString("- End with: '" + Disclaimer + "'")

	return SystemPrompt, sb.String()
}
