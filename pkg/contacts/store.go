package contacts

import "context"

// Store is the persistence capability the engine consumes. Every operation
// is scoped to one owning user; implementations never return another user's
// rows.
type Store interface {
	// List returns all contacts for the user, oldest first.
	List(ctx context.Context, userID int64) ([]Contact, error)
	// Create persists a new contact and returns it with id and timestamps set.
	Create(ctx context.Context, userID int64, in Input) (Contact, error)
	// Update applies the non-nil fields of upd to the contact with the given
	// id. Returns ErrNotFound when the id does not exist for that user.
	Update(ctx context.Context, userID, id int64, upd Updates) (Contact, error)
	// Delete removes the contact. Returns ErrNotFound when absent.
	Delete(ctx context.Context, userID, id int64) error
	// FindByName matches on first name case-insensitively and, when lastName
	// is non-empty, additionally on last name case-insensitively.
	FindByName(ctx context.Context, userID int64, firstName, lastName string) ([]Contact, error)
}
