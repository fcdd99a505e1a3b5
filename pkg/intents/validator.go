package intents

import (
	"fmt"
	"strings"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
)

// ValidationError rejects a raw record that does not match the schema. The
// action tag is carried so the caller can compose a variant-specific
// corrective message.
type ValidationError struct {
	Action  Action
	Missing []string
	Msg     string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("intent %q missing required fields: %s", e.Action, strings.Join(e.Missing, ", "))
	}
	return e.Msg
}

// Validate coerces a raw record into a typed Intent. Unknown action tags,
// an absent or out-of-range confidence, and missing per-variant required
// fields all fail; optional fields (email, phone, notes) may be absent.
func Validate(rec RawRecord) (Intent, error) {
	action := Action(strings.TrimSpace(rec.Action))
	if !Known(action) {
		return Intent{}, &ValidationError{Action: action, Msg: fmt.Sprintf("unrecognized action %q", rec.Action)}
	}
	if rec.Confidence == nil {
		return Intent{}, &ValidationError{Action: action, Missing: []string{"confidence"}}
	}
	conf := *rec.Confidence
	if conf < 0 || conf > 1 {
		return Intent{}, &ValidationError{Action: action, Msg: fmt.Sprintf("confidence %v out of range [0,1]", conf)}
	}

	in := Intent{
		Action:          action,
		Confidence:      conf,
		ResponseMessage: strings.TrimSpace(rec.ResponseMessage),
	}
	if rec.ContactID != nil {
		in.ContactID = *rec.ContactID
	}
	if c := rec.Contact; c != nil {
		in.Contact = contacts.Input{
			FirstName: strings.TrimSpace(c.FirstName),
			LastName:  strings.TrimSpace(c.LastName),
			Email:     strings.TrimSpace(c.Email),
			Phone:     strings.TrimSpace(c.Phone),
			Notes:     strings.TrimSpace(c.Notes),
		}
		in.TargetFirstName = strings.TrimSpace(c.TargetFirstName)
		in.TargetLastName = strings.TrimSpace(c.TargetLastName)
		if u := c.Updates; u != nil {
			in.Updates = contacts.Updates{Email: u.Email, Phone: u.Phone, Notes: u.Notes}
		}
	}

	if missing := missingFields(in); len(missing) > 0 {
		return Intent{}, &ValidationError{Action: action, Missing: missing}
	}
	return in, nil
}

func missingFields(in Intent) []string {
	var missing []string
	switch in.Action {
	case ActionCreate:
		if in.Contact.FirstName == "" {
			missing = append(missing, "contact.firstName")
		}
		if in.Contact.LastName == "" {
			missing = append(missing, "contact.lastName")
		}
	case ActionCreateWithName:
		if in.Contact.FirstName == "" {
			missing = append(missing, "contact.firstName")
		}
	case ActionDelete:
		if in.ContactID == 0 {
			missing = append(missing, "contactId")
		}
	case ActionUpdate:
		if in.ContactID == 0 {
			missing = append(missing, "contactId")
		}
		if in.Contact == (contacts.Input{}) && in.Updates.Empty() {
			missing = append(missing, "updates")
		}
	case ActionUpdateByName:
		if in.TargetFirstName == "" {
			missing = append(missing, "contact.targetFirstName")
		}
		if in.Updates.Empty() {
			missing = append(missing, "contact.updates")
		}
	}
	return missing
}
