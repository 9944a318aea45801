package faq

import (
	"fmt"
	"strings"

	"legal-llm/internal/domain"
)

// Entry es un par pregunta/respuesta inmutable registrado al inicio.
type Entry struct {
	Question string
	Answer   string
}

// Store agrupa las FAQs por área legal respetando el orden de registro.
type Store struct {
	entries map[domain.Legal][]Entry
}

// NewStore devuelve el store con las FAQs de ejemplo por área.
// "General / Not Sure" no tiene entradas a propósito.
func NewStore() *Store {
	return &Store{entries: map[domain.Legal][]Entry{
		domain.DomainConsumer: {
			{
				Question: "What can I do if a product I bought is defective and the seller refuses to replace it?",
				Answer:   "Generally, consumers can raise a complaint with the seller, escalate to the company, and, if unresolved, approach a consumer dispute redressal forum or similar authority. Keep all bills and written communication as proof.",
			},
			{
				Question: "Can a shop refuse to give me a bill?",
				Answer:   "In many jurisdictions, sellers are expected or required to provide an invoice or bill. A bill is useful as proof of purchase in case of disputes or warranty claims.",
			},
		},
		domain.DomainEmployment: {
			{
				Question: "Can my employer fire me without notice?",
				Answer:   "In many places, termination rules depend on the employment contract and local labour laws. Often there are notice-period requirements, but there can be exceptions such as misconduct or probation periods.",
			},
			{
				Question: "Am I entitled to overtime pay?",
				Answer:   "Eligibility for overtime pay depends on local labour laws and the type of employment. Some workers are entitled to extra pay for hours beyond the standard work week.",
			},
		},
		domain.DomainCyber: {
			{
				Question: "What should I do if someone is harassing me online?",
				Answer:   "You can collect evidence (screenshots, messages), block or report the account on the platform, and in serious cases consider filing a complaint with cybercrime authorities or the police.",
			},
			{
				Question: "Is it legal to share someone's private chat screenshots publicly?",
				Answer:   "Sharing private communications without consent may violate privacy laws, platform policies, or defamation laws, depending on what is shared and local regulations.",
			},
		},
		domain.DomainCivil: {
			{
				Question: "What is a civil case?",
				Answer:   "A civil case usually involves disputes between individuals or organizations about rights, money, property, or contracts rather than crimes.",
			},
			{
				Question: "How long do civil cases typically take?",
				Answer:   "Civil cases can take months or years depending on complexity, court workload, and procedural steps. Timelines vary widely by country and court.",
			},
		},
	}}
}

// Entries devuelve las FAQs registradas para un área, en orden de registro.
func (s *Store) Entries(d domain.Legal) []Entry {
	return s.entries[d]
}

// BuildContext arma el bloque de texto con las FAQs del área seleccionada.
// Áreas desconocidas o sin entradas degradan a texto vacío sin error.
func (s *Store) BuildContext(d domain.Legal) string {
	entries := s.entries[d]
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, 1+2*len(entries))
	lines = append(lines, fmt.Sprintf("Example FAQs and generic answers for %s:", d))
	for _, e := range entries {
		lines = append(lines, "- Q: "+e.Question)
		lines = append(lines, "  A: "+e.Answer)
	}
	return strings.Join(lines, "\n")
}
