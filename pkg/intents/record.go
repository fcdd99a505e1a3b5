package intents

import (
	"encoding/json"
	"strings"

	"github.com/mckayn10/ai-chat-app/pkg/errorsx"
)

// RawRecord is the structured record a completion returns, before
// validation. The shape mirrors the schema embedded in the system prompt.
type RawRecord struct {
	Action          string      `json:"action"`
	Contact         *RawContact `json:"contact,omitempty"`
	ContactID       *int64      `json:"contactId,omitempty"`
	Confidence      *float64    `json:"confidence"`
	ResponseMessage string      `json:"responseMessage,omitempty"`
}

type RawContact struct {
	FirstName       string      `json:"firstName,omitempty"`
	LastName        string      `json:"lastName,omitempty"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	TargetFirstName string      `json:"targetFirstName,omitempty"`
	TargetLastName  string      `json:"targetLastName,omitempty"`
	Updates         *RawUpdates `json:"updates,omitempty"`
}

type RawUpdates struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// Decode extracts one RawRecord from raw completion text. Models wrap JSON
// in code fences or surround it with prose; both are stripped first.
func Decode(text string) (RawRecord, error) {
	payload := CleanJSON(text)
	var rec RawRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return RawRecord{}, errorsx.Wrap(err, errorsx.ReasonCompletionParse)
	}
	return rec, nil
}

// CleanJSON strips markdown fences and leading/trailing prose around the
// first top-level JSON object.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
