package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"soulsync/internal/domain"
	"soulsync/internal/repository"
)

// Store reads and writes the user document as a single JSON file keyed by
// username. The document is rewritten wholesale on every save; there is no
// partial write and no protection against concurrent writers.
type Store struct {
	path   string
	logger *logrus.Logger
}

func New(path string, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{path: path, logger: logger}
}

var _ repository.Store = (*Store)(nil)

// Load reads the document. An absent file yields an empty mapping. A file
// that fails to parse also yields an empty mapping: the corruption is logged
// as a warning rather than failing the operation, and the next save will
// overwrite the broken document. Records missing any of goals/moods/journals
// get those sequences backfilled to empty.
func (s *Store) Load(ctx context.Context) (map[string]*domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*domain.UserRecord{}, nil
		}
		return nil, fmt.Errorf("read user document: %w", err)
	}

	users := map[string]*domain.UserRecord{}
	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.Warnf("user document %s is malformed, starting from an empty store: %v", s.path, err)
		return map[string]*domain.UserRecord{}, nil
	}

	for username, record := range users {
		if record == nil {
			users[username] = domain.NewUserRecord("", "")
			continue
		}
		record.Normalize()
	}
	return users, nil
}

// Save serializes the full mapping and overwrites the document.
func (s *Store) Save(ctx context.Context, users map[string]*domain.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal user document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write user document: %w", err)
	}
	return nil
}

// Document returns the raw bytes of the persisted document, e.g. for snapshot
// uploads. An absent file yields an empty JSON object.
func (s *Store) Document() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("read user document: %w", err)
	}
	return data, nil
}
