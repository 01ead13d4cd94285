package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrzp/dayforge/internal/model"
)

// AuthError indicates that authentication has failed or expired for a
// source. Callers can detect it to prompt for fresh credentials
// instead of retrying.
type AuthError struct {
	Kind    Kind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Kind, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Kind identifies the external request source.
type Kind string

const (
	KindMailbox Kind = "mailbox"
)

// Source is the contract for an external feed of request items.
// Implementations never mutate the profile; they only propose
// candidate requests that the caller merges and acknowledges.
type Source interface {
	// Type returns the source kind identifier.
	Type() Kind

	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable status message on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchRequests retrieves candidate requests from the source.
	// Candidates carry stable IDs so repeated fetches deduplicate.
	FetchRequests(ctx context.Context) ([]model.Request, error)

	// Acknowledge marks a fetched item as ingested at the source so
	// it stops appearing in later fetches.
	Acknowledge(ctx context.Context, sourceItemID string) error
}
