package reflection

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredential indicates that no API key is configured; it is checked
// before any network I/O so the user gets a distinct, actionable message.
var ErrMissingCredential = errors.New("reflection api key is not configured")

// ProviderError wraps any transport or provider-side failure of a reflection
// request, including timeouts.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("reflection provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider generates a short empathetic reflection on a journal entry.
type Provider interface {
	Reflect(ctx context.Context, entry string) (string, error)
}
