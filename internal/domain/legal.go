package domain

import "strings"

// Legal es la etiqueta fija del área legal seleccionada por turno.
type Legal string

const (
	DomainConsumer   Legal = "Consumer Rights"
	DomainEmployment Legal = "Employment Law"
	DomainCyber      Legal = "Cyber Law"
	DomainCivil      Legal = "Civil Matters"
	DomainGeneral    Legal = "General / Not Sure"
)

// Domains lista las áreas en el orden en que se muestran al usuario.
func Domains() []Legal {
	return []Legal{
		DomainConsumer,
		DomainEmployment,
		DomainCyber,
		DomainCivil,
		DomainGeneral,
	}
}

// ParseDomain normaliza la entrada del usuario; entradas desconocidas o
// vacías degradan a DomainGeneral sin error.
func ParseDomain(raw string) Legal {
	trimmed := strings.TrimSpace(raw)
	for _, d := range Domains() {
		if strings.EqualFold(trimmed, string(d)) {
			return d
		}
	}
	return DomainGeneral
}

// IsKnown reporta si la etiqueta coincide exactamente con un área registrada.
func IsKnown(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, d := range Domains() {
		if strings.EqualFold(trimmed, string(d)) {
			return true
		}
	}
	return false
}

func (d Legal) String() string { return string(d) }
