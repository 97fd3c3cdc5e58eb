// Package rules persists the path-scoped visibility grants. Each row is one
// (path, user_id) pair; a path with no rows is visible to everyone.
package rules

import (
	"context"

	"github.com/pouchain/docstore/internal/visibility"
)

type Repository interface {
	// ListAll returns every visibility rule.
	ListAll(ctx context.Context) ([]visibility.Rule, error)

	// ListForPath returns the user ids granted on exactly this path.
	ListForPath(ctx context.Context, path string) ([]string, error)

	// DeleteForPath removes all rules for the path.
	DeleteForPath(ctx context.Context, path string) error

	// Insert adds one grant. Duplicate (path, user) pairs are merged.
	Insert(ctx context.Context, path, userID string) error
}
