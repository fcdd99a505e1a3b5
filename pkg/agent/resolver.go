package agent

import (
	"context"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
)

// ResolutionKind classifies a name-based lookup.
type ResolutionKind int

const (
	NoMatch ResolutionKind = iota
	OneMatch
	ManyNeedDiscriminator
)

// Resolution is the outcome of disambiguating a contact named by the user.
type Resolution struct {
	Kind       ResolutionKind
	Contact    contacts.Contact
	Candidates []contacts.Contact
}

// resolveByName queries the store by first name (case-insensitive) and an
// optional last-name filter. More than one row with no last name supplied
// needs a discriminator and is never picked for the user. More than one row
// despite a last name is a store anomaly; the first row wins, preserved
// behavior.
func (a *Agent) resolveByName(ctx context.Context, userID int64, firstName, lastName string) (Resolution, error) {
	matches, err := a.store.FindByName(ctx, userID, firstName, lastName)
	if err != nil {
		return Resolution{}, err
	}
	switch {
	case len(matches) == 0:
		return Resolution{Kind: NoMatch}, nil
	case len(matches) > 1 && lastName == "":
		return Resolution{Kind: ManyNeedDiscriminator, Candidates: matches}, nil
	default:
		return Resolution{Kind: OneMatch, Contact: matches[0]}, nil
	}
}
