package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pouchain/docstore/internal/common"
	"github.com/pouchain/docstore/internal/dbx"
	"github.com/pouchain/docstore/internal/identity"
	"github.com/pouchain/docstore/internal/server/models"
	"github.com/pouchain/docstore/internal/server/repositories/profiles"
	"github.com/pouchain/docstore/internal/server/repositories/repomanager"
	"github.com/pouchain/docstore/internal/server/repositories/rules"
	"github.com/pouchain/docstore/internal/visibility"
)

// fakeRepoManager hands out in-memory repositories regardless of the DBTX.
type fakeRepoManager struct {
	rules    rules.Repository
	profiles profiles.Repository
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Rules(db dbx.DBTX) rules.Repository                 { return m.rules }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository           { return m.profiles }

type fakeRuleRepo struct {
	all     []visibility.Rule
	listErr error

	deleted  []string
	inserted []visibility.Rule

	deleteErr error
	insertErr error
}

func (r *fakeRuleRepo) ListAll(ctx context.Context) ([]visibility.Rule, error) {
	return r.all, r.listErr
}

func (r *fakeRuleRepo) ListForPath(ctx context.Context, path string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []string
	for _, rule := range r.all {
		if rule.Path == path {
			out = append(out, rule.UserID)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) DeleteForPath(ctx context.Context, path string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, path)
	return nil
}

func (r *fakeRuleRepo) Insert(ctx context.Context, path, userID string) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, visibility.Rule{Path: path, UserID: userID})
	return nil
}

type fakeProfileRepo struct {
	byID map[string]*models.Profile

	upserted    []*models.Profile
	roleUpdates map[string]string
	nameUpdates map[string][2]string
	deletedIDs  []string

	err error
}

func newFakeProfileRepo(list ...*models.Profile) *fakeProfileRepo {
	byID := make(map[string]*models.Profile, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	return &fakeProfileRepo{
		byID:        byID,
		roleUpdates: make(map[string]string),
		nameUpdates: make(map[string][2]string),
	}
}

func (r *fakeProfileRepo) Get(ctx context.Context, id string) (*models.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) List(ctx context.Context) ([]*models.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, profile)
	r.byID[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	if r.err != nil {
		return r.err
	}
	r.roleUpdates[id] = role
	return nil
}

func (r *fakeProfileRepo) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	if r.err != nil {
		return r.err
	}
	r.nameUpdates[id] = [2]string{firstName, lastName}
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.deletedIDs = append(r.deletedIDs, id)
	delete(r.byID, id)
	return nil
}

type fakeProvider struct {
	users []identity.User

	created   []string
	invited   []string
	recovered []string
	deleted   []string

	err error
}

var _ identity.Provider = (*fakeProvider)(nil)

func (p *fakeProvider) ListUsers(ctx context.Context) ([]identity.User, error) {
	return p.users, p.err
}

func (p *fakeProvider) CreateUser(ctx context.Context, email, password string) (*identity.User, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, email)
	return &identity.User{ID: "new-" + email, Email: email}, nil
}

func (p *fakeProvider) InviteUser(ctx context.Context, email, redirectTo string) (*identity.User, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.invited = append(p.invited, email)
	return &identity.User{ID: "inv-" + email, Email: email}, nil
}

func (p *fakeProvider) SendRecovery(ctx context.Context, email, redirectTo string) error {
	if p.err != nil {
		return p.err
	}
	p.recovered = append(p.recovered, email)
	return nil
}

func (p *fakeProvider) DeleteUser(ctx context.Context, id string) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, id)
	return nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
