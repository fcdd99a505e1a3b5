package language

import (
	"regexp"
	"strings"
)

// Locale identifies the response language for one utterance.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
)

// Detector classifies an utterance's language. It only needs to be right
// for response localization, not for understanding, so implementations may
// be heuristic.
type Detector interface {
	Detect(text string) Locale
}

// spanishRe matches the contact-management vocabulary a Spanish command
// would carry. Anything else falls back to English.
var spanishRe = regexp.MustCompile(`(?i)crear|nuevo|contacto|para|actualizar|cambiar|mostrar|todos|los|eliminar|borrar|nombre|correo|tel[eé]fono|n[uú]mero|agregar|modificar|buscar|encontrar|ver`)

// KeywordDetector is the default detector: a fixed Spanish keyword set,
// no external call, no failure mode.
type KeywordDetector struct{}

func NewKeywordDetector() KeywordDetector { return KeywordDetector{} }

func (KeywordDetector) Detect(text string) Locale {
	if spanishRe.MatchString(strings.TrimSpace(text)) {
		return Spanish
	}
	return English
}

var _ Detector = KeywordDetector{}
