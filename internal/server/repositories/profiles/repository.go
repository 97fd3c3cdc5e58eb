// Package profiles persists the locally owned part of a user account: role
// and display name. The identity provider owns everything else.
package profiles

import (
	"context"

	"github.com/pouchain/docstore/internal/server/models"
)

type Repository interface {
	// Get returns the profile for a user id, common.ErrorNotFound if absent.
	Get(ctx context.Context, id string) (*models.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]*models.Profile, error)

	// Upsert inserts the profile or updates role and name if it exists.
	Upsert(ctx context.Context, profile *models.Profile) error

	// UpdateRole changes a single user's role.
	UpdateRole(ctx context.Context, id, role string) error

	// UpdateName changes a single user's first and last name.
	UpdateName(ctx context.Context, id, firstName, lastName string) error

	// Delete removes the profile. Deleting an absent profile is not an error.
	Delete(ctx context.Context, id string) error
}
