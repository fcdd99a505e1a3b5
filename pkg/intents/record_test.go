package intents

import "testing"

func TestDecodePlainObject(t *testing.T) {
	rec, err := Decode(`{"action":"list","confidence":0.9}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action != "list" || rec.Confidence == nil || *rec.Confidence != 0.9 {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestDecodeFenced(t *testing.T) {
	rec, err := Decode("```json\n{\"action\":\"list\",\"confidence\":0.9}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action != "list" {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestDecodeSurroundingProse(t *testing.T) {
	rec, err := Decode(`Here is the result: {"action":"list","confidence":0.9} hope that helps`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action != "list" {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestDecodeRejectsProseOnly(t *testing.T) {
	if _, err := Decode("I cannot help with that."); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCleanJSONEmpty(t *testing.T) {
	if got := CleanJSON("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
