package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pouchain/docstore/internal/dbx"
	"github.com/pouchain/docstore/internal/server/models"
	"github.com/pouchain/docstore/internal/server/repositories/repomanager"
	"github.com/pouchain/docstore/internal/visibility"
	"golang.org/x/sync/errgroup"
)

// AccessService manages the path-scoped visibility rules.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccessService(db *sql.DB, m repomanager.RepositoryManager) *AccessService {
	return &AccessService{db: db, repomanager: m}
}

// GetAccess returns the user ids granted on exactly this path. An empty
// result means the path is visible to everyone.
func (s *AccessService) GetAccess(ctx context.Context, path string) ([]string, error) {
	userIDs, err := s.repomanager.Rules(s.db).ListForPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error reading access rules: %w", err)
	}
	return userIDs, nil
}

// SetAccess replaces the grant list for a path: all existing rules are
// deleted and the given users inserted, in one transaction. An empty
// userIDs list reverts the path to visible-to-everyone.
func (s *AccessService) SetAccess(ctx context.Context, path string, userIDs []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Rules(tx)

		if err := repo.DeleteForPath(ctx, path); err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := repo.Insert(ctx, path, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error replacing access rules: %w", err)
	}
	return nil
}

// Summary returns every restricted path mapped to the display names of the
// users granted on it. Users without a profile appear by their id. Rules and
// profiles are fetched concurrently; either failure fails the request.
func (s *AccessService) Summary(ctx context.Context) (map[string][]string, error) {
	var (
		rules    []visibility.Rule
		profiles []*models.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rules, err = s.repomanager.Rules(s.db).ListAll(gctx)
		if err != nil {
			return fmt.Errorf("error reading access rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = s.repomanager.Profiles(s.db).List(gctx)
		if err != nil {
			return fmt.Errorf("error reading profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if n := p.DisplayName(); n != "" {
			names[p.ID] = n
		}
	}

	summary := make(map[string][]string)
	for _, rule := range rules {
		name, ok := names[rule.UserID]
		if !ok {
			name = rule.UserID
		}
		summary[rule.Path] = append(summary[rule.Path], name)
	}
	return summary, nil
}
