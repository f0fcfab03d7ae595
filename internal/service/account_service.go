package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"soulsync/internal/domain"
	"soulsync/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned by tracker operations targeting an unknown username.
	ErrUserNotFound = errors.New("user not found")
)

// AccountService describes user lifecycle operations.
type AccountService interface {
	Register(ctx context.Context, username, password, email string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type accountService struct {
	store repository.Store
}

func NewAccountService(store repository.Store) AccountService {
	return &accountService{store: store}
}

// Register creates a new user record. Usernames are case-insensitive and
// stored lowercase; passwords are stored as bcrypt hashes.
func (s *accountService) Register(ctx context.Context, username, password, email string) (string, error) {
	username = normalizeUsername(username)
	password = strings.TrimSpace(password)
	email = strings.TrimSpace(email)

	if username == "" {
		return "", errors.New("username is required")
	}
	if password == "" {
		return "", errors.New("password is required")
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if _, exists := users[username]; exists {
		return "", ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	users[username] = domain.NewUserRecord(string(hash), email)
	if err := s.store.Save(ctx, users); err != nil {
		return "", err
	}
	return username, nil
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = normalizeUsername(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	record, ok := users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return username, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
