package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/domain"
)

// --- Fakes ---

// memStore is an in-memory Store shared by the service tests in this package.
type memStore struct {
	users map[string]*domain.UserRecord
	saves int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*domain.UserRecord{}}
}

func (m *memStore) Load(ctx context.Context) (map[string]*domain.UserRecord, error) {
	return m.users, nil
}

func (m *memStore) Save(ctx context.Context, users map[string]*domain.UserRecord) error {
	m.users = users
	m.saves++
	return nil
}

func (m *memStore) addUser(username string) *domain.UserRecord {
	record := domain.NewUserRecord("hash", "")
	m.users[username] = record
	return record
}

// --- Tests ---

func TestRegisterThenAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	ctx := context.Background()

	username, err := svc.Register(ctx, "Ana", "s3cret pass", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana", username)

	got, err := svc.Authenticate(ctx, "ANA", "s3cret pass")
	require.NoError(t, err)
	assert.Equal(t, "ana", got)

	_, err = svc.Authenticate(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana", "first password", "first@example.com")
	require.NoError(t, err)
	firstHash := store.users["ana"].PasswordHash

	_, err = svc.Register(ctx, "ANA", "second password", "second@example.com")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// The first record is untouched by the rejected attempt.
	assert.Equal(t, firstHash, store.users["ana"].PasswordHash)
	assert.Equal(t, "first@example.com", store.users["ana"].Email)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAccountService(newMemStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "password", "")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "ana", "   ", "")
	assert.Error(t, err)
}

func TestRegisterInitializesEmptySequences(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)

	_, err := svc.Register(context.Background(), "ana", "password", "")
	require.NoError(t, err)

	record := store.users["ana"]
	assert.NotNil(t, record.Goals)
	assert.NotNil(t, record.Moods)
	assert.NotNil(t, record.Journals)
	assert.Equal(t, 1, store.saves)
}

func TestAuthenticateEmptyStore(t *testing.T) {
	svc := NewAccountService(newMemStore())

	_, err := svc.Authenticate(context.Background(), "x", "y")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
