// Package services contains the application services behind the HTTP
// handlers: file listing and mutation, access rules, and user management.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pouchain/docstore/internal/common"
	"github.com/pouchain/docstore/internal/logging"
	"github.com/pouchain/docstore/internal/mutate"
	"github.com/pouchain/docstore/internal/objstore"
	"github.com/pouchain/docstore/internal/server/config"
	"github.com/pouchain/docstore/internal/server/repositories/repomanager"
	"github.com/pouchain/docstore/internal/tree"
	"github.com/pouchain/docstore/internal/visibility"
)

// FileService owns the process-wide listing cache and every operation that
// reads or mutates the object store. All mutations invalidate the cache so
// the next listing reflects the backend again.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       objstore.Store
	orch        *mutate.Orchestrator
	log         logging.Logger
	cacheTTL    time.Duration
	failClosed  bool

	mu        sync.Mutex
	cached    []objstore.Object
	fetchedAt time.Time
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store objstore.Store, cfg *config.Config, log logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		store:       store,
		orch:        mutate.New(store, log),
		log:         log,
		cacheTTL:    cfg.ListingCacheTTL,
		failClosed:  cfg.VisibilityFailClosed,
	}
}

// Listing returns the full flat object listing, served from cache while the
// TTL holds.
func (s *FileService) Listing(ctx context.Context) ([]objstore.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		return s.cached, nil
	}

	objects, err := objstore.ListAll(ctx, s.store, "")
	if err != nil {
		return nil, fmt.Errorf("error listing objects: %w", err)
	}

	s.cached = objects
	s.fetchedAt = time.Now()
	s.log.Debug(ctx, "listing refreshed", "objects", len(objects))
	return objects, nil
}

// Invalidate drops the cached listing. Called after every mutation.
func (s *FileService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// List returns the listing visible to userID, optionally narrowed to keys
// containing query (case-insensitive substring).
//
// When the rule store is unreachable the configured policy applies: fail-open
// serves the unfiltered listing and logs, fail-closed fails the request.
func (s *FileService) List(ctx context.Context, userID, query string) ([]objstore.Object, error) {
	objects, err := s.Listing(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.repomanager.Rules(s.db).ListAll(ctx)
	if err != nil {
		if s.failClosed {
			return nil, fmt.Errorf("rule store unavailable: %w", common.ErrorUpstreamUnavailable)
		}
		s.log.Warn(ctx, "rule store unavailable, serving unfiltered listing", "error", err)
		rules = nil
	}

	visible := visibility.FilterVisible(objects, rules, userID)

	if query == "" {
		return visible, nil
	}

	q := strings.ToLower(query)
	filtered := make([]objstore.Object, 0, len(visible))
	for _, obj := range visible {
		if strings.Contains(strings.ToLower(obj.Key), q) {
			filtered = append(filtered, obj)
		}
	}
	return filtered, nil
}

// Get fetches a single object body.
func (s *FileService) Get(ctx context.Context, key string) (*objstore.Body, error) {
	return s.store.Get(ctx, key)
}

// Upload stores an object and invalidates the listing cache.
func (s *FileService) Upload(ctx context.Context, key string, body *objstore.Body) error {
	if err := s.store.Put(ctx, key, body); err != nil {
		return fmt.Errorf("error uploading object: %w", err)
	}
	s.Invalidate()
	return nil
}

// Delete removes a single object and invalidates the listing cache.
func (s *FileService) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("error deleting object: %w", err)
	}
	s.Invalidate()
	return nil
}

// CreateFolder materializes an empty folder: a color marker picked from the
// palette by the folder's enumeration position, then the presence marker.
func (s *FileService) CreateFolder(ctx context.Context, name string) error {
	objects, err := s.Listing(ctx)
	if err != nil {
		return err
	}

	cards := tree.BuildCards(objects, nil)
	color := tree.PaletteColor(len(cards))

	if err := s.orch.CreateFolder(ctx, name, color); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// RenameFile moves a single object to a new key.
func (s *FileService) RenameFile(ctx context.Context, oldKey, newKey string) error {
	if err := s.orch.RenameFile(ctx, oldKey, newKey); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// RenameFolder moves every object under oldPrefix to newPrefix and returns
// the number of objects moved.
func (s *FileService) RenameFolder(ctx context.Context, oldPrefix, newPrefix string) (int, error) {
	count, err := s.orch.RenameFolder(ctx, oldPrefix, newPrefix)
	s.Invalidate()
	return count, err
}

// DeleteFolder deletes a folder's contents and markers, returning the number
// of objects actually deleted.
func (s *FileService) DeleteFolder(ctx context.Context, folder string) (int, error) {
	objects, err := s.Listing(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.orch.DeleteFolder(ctx, objects, folder)
	s.Invalidate()
	return count, err
}

// BulkDelete deletes a mixed selection of files and folders, continuing past
// individual failures, and returns the tally.
func (s *FileService) BulkDelete(ctx context.Context, selection []mutate.Selection) (int, error) {
	objects, err := s.Listing(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.orch.BulkDelete(ctx, objects, selection)
	s.Invalidate()
	return count, err
}

// Reorder moves the named top-level folder into targetRow, before the folder
// named by before (or to the row's end when before is empty), rewriting the
// row/order markers of every folder whose placement changed.
func (s *FileService) Reorder(ctx context.Context, name string, targetRow int, before string) error {
	objects, err := s.Listing(ctx)
	if err != nil {
		return err
	}

	cards := tree.BuildCards(objects, nil)
	placements, err := tree.PlanMove(cards, name, targetRow, before)
	if err != nil {
		return err
	}

	if err := s.orch.Reorder(ctx, placements); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
