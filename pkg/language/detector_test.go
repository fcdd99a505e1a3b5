package language

import "testing"

func TestDetectSpanish(t *testing.T) {
	d := NewKeywordDetector()
	cases := []string{
		"Crear un nuevo contacto para Juan García",
		"Mostrar todos mis contactos",
		"Actualizar el correo de Juan García a juan@example.com",
		"eliminar el contacto 3",
		"cambiar el teléfono de Ana",
	}
	for _, utterance := range cases {
		if got := d.Detect(utterance); got != Spanish {
			t.Fatalf("Detect(%q) = %q, want %q", utterance, got, Spanish)
		}
	}
}

func TestDetectEnglish(t *testing.T) {
	d := NewKeywordDetector()
	cases := []string{
		"Show all my contacts",
		"Delete the third entry",
		"Add Ana Ruiz with email ana@example.com",
		"",
	}
	for _, utterance := range cases {
		if got := d.Detect(utterance); got != English {
			t.Fatalf("Detect(%q) = %q, want %q", utterance, got, English)
		}
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	d := NewKeywordDetector()
	if got := d.Detect("MOSTRAR TODOS"); got != Spanish {
		t.Fatalf("uppercase Spanish not detected: %q", got)
	}
}
