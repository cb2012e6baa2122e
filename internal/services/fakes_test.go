package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"shop_backoffice/internal/events"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

// Fakes embed the repository interface; calling a method a test did not
// stub panics on the nil embedded value, which fails the test loudly.

type fakeUserRepo struct {
	repositories.UserRepository
	mu      sync.Mutex
	byID    map[int64]*models.User
	byPhone map[string]*models.User
	created []*models.User
	updated []*models.User
	touched chan int64
	dupOn   string
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[int64]*models.User{}, byPhone: map[string]*models.User{}, touched: make(chan int64, 1)}
	for _, u := range users {
		r.byID[u.ID] = u
		if u.IsActive {
			r.byPhone[u.Phone] = u
		}
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindActiveByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byPhone[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.Phone == r.dupOn {
		return repositories.ErrDuplicateKey
	}
	u.ID = int64(len(r.byID) + 100)
	u.IsActive = true
	r.created = append(r.created, u)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, u)
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id int64) error {
	r.touched <- id
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newTxMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("want *ValidationError, got %T: %v", err, err)
	}
	if len(verr.Fields) == 0 {
		t.Fatal("validation error without fields")
	}
	return verr.Fields[0].Field
}
