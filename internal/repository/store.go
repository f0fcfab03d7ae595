package repository

import (
	"context"

	"soulsync/internal/domain"
)

// Store persists the full mapping of username to UserRecord. It is the sole
// source of truth: every operation loads the whole mapping, mutates one
// record, and saves the whole mapping back. Last writer wins.
type Store interface {
	Load(ctx context.Context) (map[string]*domain.UserRecord, error)
	Save(ctx context.Context, users map[string]*domain.UserRecord) error
}
