package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/mckayn10/ai-chat-app/pkg/users"
)

// UserStore persists accounts in PostgreSQL through GORM.
type UserStore struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewUserStore(db *gorm.DB, log *slog.Logger) *UserStore {
	return &UserStore{db: db, log: log}
}

func (s *UserStore) Create(ctx context.Context, u users.User) (users.User, error) {
	u.Email = strings.ToLower(u.Email)
	var count int64
	if err := s.db.WithContext(ctx).Model(&users.User{}).
		Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return users.User{}, err
	}
	if count > 0 {
		return users.User{}, users.ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).
		First(&u, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

var _ users.Store = (*UserStore)(nil)
