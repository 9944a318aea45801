package guard

import (
	"fmt"
	"strings"

	"legal-llm/internal/domain"
)

// Palabras clave por área. Rústico a propósito: contención en minúsculas,
// sin stemming ni ranking, igual que el detector de tensión narrativa.
var domainKeywords = map[domain.Legal][]string{
	domain.DomainEmployment: {
		"fired", "employer", "employee", "salary", "wages", "workplace",
		"resignation", "notice period", "overtime", "boss", "dismissal",
		"probation",
	},
	domain.DomainConsumer: {
		"refund", "defective", "warranty", "seller", "shopkeeper",
		"product", "purchase", "invoice", "consumer forum",
	},
	domain.DomainCyber: {
		"hacked", "hacking", "online harassment", "cyberbully",
		"phishing", "social media", "screenshot", "data leak",
		"identity theft",
	},
	domain.DomainCivil: {
		"tenant", "landlord", "inheritance", "property dispute",
		"breach of contract", "neighbour", "neighbor", "civil suit",
		"damages claim",
	},
}

// checkDomainMismatch detecta preguntas que parecen pertenecer a otra área
// distinta de la seleccionada. No aplica cuando el usuario eligió
// "General / Not Sure".
func checkDomainMismatch(selected domain.Legal, question string) (string, bool) {
	if selected == domain.DomainGeneral {
		return "", false
	}

	normalized := strings.ToLower(question)

	// Si la pregunta menciona el área seleccionada, no hay conflicto.
	if hitsKeywords(normalized, domainKeywords[selected]) {
		return "", false
	}

	for _, other := range domain.Domains() {
		if other == selected || other == domain.DomainGeneral {
			continue
		}
		if hitsKeywords(normalized, domainKeywords[other]) {
			msg := fmt.Sprintf(
				"Your question looks like it may relate to %s, but you selected %s. Please pick the matching domain, or clarify how your question relates to %s.",
				other, selected, selected,
			)
			return msg, true
		}
	}
	return "", false
}

func hitsKeywords(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
