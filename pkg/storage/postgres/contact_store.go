package postgres

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
)

// ContactStore persists contacts in PostgreSQL through GORM.
type ContactStore struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewContactStore(db *gorm.DB, log *slog.Logger) *ContactStore {
	return &ContactStore{db: db, log: log}
}

func (s *ContactStore) List(ctx context.Context, userID int64) ([]contacts.Contact, error) {
	var out []contacts.Contact
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ContactStore) Create(ctx context.Context, userID int64, in contacts.Input) (contacts.Contact, error) {
	c := contacts.Contact{
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Notes:     in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return contacts.Contact{}, err
	}
	return c, nil
}

func (s *ContactStore) Update(ctx context.Context, userID, id int64, upd contacts.Updates) (contacts.Contact, error) {
	fields := map[string]any{}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if upd.Notes != nil {
		fields["notes"] = *upd.Notes
	}
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).
			Model(&contacts.Contact{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(fields)
		if res.Error != nil {
			return contacts.Contact{}, res.Error
		}
		if res.RowsAffected == 0 {
			return contacts.Contact{}, contacts.ErrNotFound
		}
	}
	var c contacts.Contact
	err := s.db.WithContext(ctx).
		First(&c, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contacts.Contact{}, contacts.ErrNotFound
		}
		return contacts.Contact{}, err
	}
	return c, nil
}

func (s *ContactStore) Delete(ctx context.Context, userID, id int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&contacts.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contacts.ErrNotFound
	}
	return nil
}

func (s *ContactStore) FindByName(ctx context.Context, userID int64, firstName, lastName string) ([]contacts.Contact, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(first_name) = LOWER(?)", firstName)
	if lastName != "" {
		q = q.Where("LOWER(last_name) = LOWER(?)", lastName)
	}
	var out []contacts.Contact
	if err := q.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ contacts.Store = (*ContactStore)(nil)
