package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/pouchain/docstore/internal/common"
	"github.com/pouchain/docstore/internal/identity"
	"github.com/pouchain/docstore/internal/server/models"
	"github.com/pouchain/docstore/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// UserService manages user accounts: identity (email, credentials, mail
// flows) lives with the identity provider, role and display name in the
// local profiles table. Provider errors surface directly; user management
// never degrades silently.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    identity.Provider
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, provider identity.Provider) *UserService {
	return &UserService{db: db, repomanager: m, provider: provider}
}

// ListUsers merges the provider's account list with local profiles. Accounts
// without a profile default to the "user" role. Both sources are fetched
// concurrently; either failure fails the whole call.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var (
		users    []identity.User
		profiles []*models.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.provider.ListUsers(gctx)
		if err != nil {
			return fmt.Errorf("error listing users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = s.repomanager.Profiles(s.db).List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	records := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		rec := models.UserRecord{
			ID:        u.ID,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			Role:      models.RoleUser,
		}
		if p, ok := byID[u.ID]; ok {
			rec.Role = p.Role
			rec.FirstName = p.FirstName
			rec.LastName = p.LastName
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Email < records[j].Email })
	return records, nil
}

// CreateUser provisions a confirmed account at the provider and stores the
// local profile.
func (s *UserService) CreateUser(ctx context.Context, email, password, role, firstName, lastName string) (*models.UserRecord, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}

	user, err := s.provider.CreateUser(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.storeProfile(ctx, user, role, firstName, lastName)
}

// InviteUser sends a provider invite mail and stores the local profile so the
// role is in place before the first login.
func (s *UserService) InviteUser(ctx context.Context, email, role, redirectTo, firstName, lastName string) (*models.UserRecord, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}

	user, err := s.provider.InviteUser(ctx, email, redirectTo)
	if err != nil {
		return nil, fmt.Errorf("error inviting user: %w", err)
	}

	return s.storeProfile(ctx, user, role, firstName, lastName)
}

func (s *UserService) storeProfile(ctx context.Context, user *identity.User, role, firstName, lastName string) (*models.UserRecord, error) {
	profile := &models.Profile{
		ID:        user.ID,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.repomanager.Profiles(s.db).Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return &models.UserRecord{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

// ResetPassword triggers the provider's recovery mail.
func (s *UserService) ResetPassword(ctx context.Context, email, redirectTo string) error {
	if err := s.provider.SendRecovery(ctx, email, redirectTo); err != nil {
		return fmt.Errorf("error sending recovery: %w", err)
	}
	return nil
}

// UpdateRole changes a user's role in the local profile.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) error {
	if err := validateRole(role); err != nil {
		return err
	}
	return s.repomanager.Profiles(s.db).UpdateRole(ctx, id, role)
}

// UpdateProfile changes a user's display name.
func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName string) error {
	return s.repomanager.Profiles(s.db).UpdateName(ctx, id, firstName, lastName)
}

// DeleteUser removes the local profile first, then the provider account. If
// the provider delete fails the account survives with default permissions,
// which is the safer leftover.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repomanager.Profiles(s.db).Delete(ctx, id); err != nil {
		return err
	}
	if err := s.provider.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// GetRole returns the caller's role, defaulting to "user" when no profile
// exists.
func (s *UserService) GetRole(ctx context.Context, id string) (string, error) {
	profile, err := s.repomanager.Profiles(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.RoleUser, nil
		}
		return "", err
	}
	return profile.Role, nil
}

func validateRole(role string) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("%w: invalid role %q", common.ErrorBadRequest, role)
	}
	return nil
}
