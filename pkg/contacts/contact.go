package contacts

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Contact is one address-book entry, always owned by a single user.
type Contact struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"column:user_id;index"`
	FirstName string    `json:"firstName" gorm:"column:first_name"`
	LastName  string    `json:"lastName" gorm:"column:last_name"`
	Email     string    `json:"email,omitempty" gorm:"column:email"`
	Phone     string    `json:"phone,omitempty" gorm:"column:phone"`
	Notes     string    `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Contact) TableName() string { return "contacts" }

// FullName joins first and last name, tolerating a missing last name.
func (c Contact) FullName() string {
	if strings.TrimSpace(c.LastName) == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Input carries the caller-supplied fields for a create.
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Updates carries the mutable fields of an update. Nil means "leave as is";
// a pointer to the empty string clears the field.
type Updates struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Empty reports whether the update set changes nothing.
func (u Updates) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Phone == nil && u.Notes == nil
}

var ErrNotFound = errors.New("contact not found")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateInput enforces the required shape of a create: both names present
// and, when an email is supplied, a plausible format.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return errors.New("first name and last name are required")
	}
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		return errors.New("invalid email format")
	}
	return nil
}
