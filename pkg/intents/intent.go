package intents

import "github.com/mckayn10/ai-chat-app/pkg/contacts"

// Action is one of the closed set of recognized command variants.
type Action string

const (
	ActionCreate         Action = "create"
	ActionCreateAskName  Action = "create_ask_name"
	ActionCreateWithName Action = "create_with_name"
	ActionList           Action = "list"
	ActionDelete         Action = "delete"
	ActionUpdate         Action = "update"
	ActionUpdateByName   Action = "update_by_name"
	ActionUnknown        Action = "unknown"
)

var knownActions = map[Action]bool{
	ActionCreate:         true,
	ActionCreateAskName:  true,
	ActionCreateWithName: true,
	ActionList:           true,
	ActionDelete:         true,
	ActionUpdate:         true,
	ActionUpdateByName:   true,
	ActionUnknown:        true,
}

// Known reports whether the tag belongs to the closed action set.
func Known(a Action) bool { return knownActions[a] }

// Intent is the validated, typed outcome of parsing one utterance.
// Immutable once produced.
type Intent struct {
	Action Action

	// Contact fields for the create family.
	Contact contacts.Input

	// Target of an update_by_name, plus its update set.
	TargetFirstName string
	TargetLastName  string
	Updates         contacts.Updates

	// Identifier target for delete and update. Zero means absent.
	ContactID int64

	Confidence      float64
	ResponseMessage string
}
