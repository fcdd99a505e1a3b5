package redact

import (
	"strings"
	"testing"
)

func TestRedactDisabled(t *testing.T) {
	SetEnabled(false)
	in := "update Ana's email to ana@example.com and phone +34 612 345 678"
	if got := Text(in); got != in {
		t.Fatalf("expected no redaction, got %q", got)
	}
}

func TestRedactEnabled(t *testing.T) {
	SetEnabled(true)
	in := "update Ana's email to ana@example.com and phone +34 612 345 678"
	got := Text(in)
	if got == in {
		t.Fatalf("expected redaction")
	}
	if want := "[REDACTED_EMAIL]"; !strings.Contains(got, want) {
		t.Fatalf("expected %q in output", want)
	}
	if want := "[REDACTED_PHONE]"; !strings.Contains(got, want) {
		t.Fatalf("expected %q in output", want)
	}
}

func TestSnip(t *testing.T) {
	if got := Snip("short", 10); got != "short" {
		t.Fatalf("expected unchanged, got %q", got)
	}
	if got := Snip("a very long utterance", 6); got != "a very..." {
		t.Fatalf("unexpected snip: %q", got)
	}
}
