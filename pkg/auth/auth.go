package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mckayn10/ai-chat-app/pkg/errorsx"
	"github.com/mckayn10/ai-chat-app/pkg/users"
)

// Service issues and verifies bearer tokens and checks passwords.
type Service struct {
	secret []byte
	ttl    time.Duration
	store  users.Store
}

func NewService(secret string, ttl time.Duration, store users.Store) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl, store: store}
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Register creates an account with a hashed password and returns it with a
// fresh token.
func (s *Service) Register(ctx context.Context, email, password, name string) (users.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return users.User{}, "", errors.New("email and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return users.User{}, "", err
	}
	u, err := s.store.Create(ctx, users.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	})
	if err != nil {
		return users.User{}, "", err
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return users.User{}, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, string, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, "", users.ErrBadCredentials
		}
		return users.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return users.User{}, "", users.ErrBadCredentials
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return users.User{}, "", err
	}
	return u, token, nil
}

// IssueToken signs a token carrying the user id and email.
func (s *Service) IssueToken(u users.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"exp":   time.Now().Add(s.ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken parses a bearer token and returns the account it names.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (users.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return users.User{}, errorsx.Wrap(errors.New("invalid or expired token"), errorsx.ReasonAuthToken)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return users.User{}, errorsx.New("malformed claims", errorsx.ReasonAuthToken)
	}
	idValue, ok := claims["id"].(float64)
	if !ok {
		return users.User{}, errorsx.New("missing id claim", errorsx.ReasonAuthToken)
	}
	u, err := s.store.FindByID(ctx, int64(idValue))
	if err != nil {
		return users.User{}, errorsx.Wrap(err, errorsx.ReasonAuthToken)
	}
	return u, nil
}
