package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/internal/repo"
	pkgdb "github.com/Skotchmaster/campus_complaints/pkg/db"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type memBlobs struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newMemBlobs() *memBlobs { return &memBlobs{files: map[string][]byte{}} }

func (b *memBlobs) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if b.saveErr != nil {
		return "", b.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ref := "1700000000000-" + name
	b.files[ref] = data
	return ref, nil
}

func (b *memBlobs) Delete(_ context.Context, ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.files, ref)
	return nil
}

func (b *memBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files)
}

// failingCreate wraps a store so complaint inserts fail.
type failingCreate struct {
	ComplaintStore
}

func (failingCreate) CreateComplaint(context.Context, *models.Complaint) error {
	return fmt.Errorf("create complaint: %w: %w", domain.ErrStoreUnavailable, errBoom)
}

type testEnv struct {
	repo       *repo.GormRepo
	creds      *credentials.Service
	auth       *AuthService
	complaints *ComplaintService
	pub        *recordingPublisher
	blobs      *memBlobs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := repo.New(db)
	require.NoError(t, r.Migrate())

	creds := credentials.New([]byte("test-jwt-secret"), 0)
	pub := &recordingPublisher{}
	blobs := newMemBlobs()

	return &testEnv{
		repo:  r,
		creds: creds,
		pub:   pub,
		blobs: blobs,
		auth:  &AuthService{Users: r, Creds: creds},
		complaints: &ComplaintService{
			Store:  r,
			Users:  r,
			Blobs:  blobs,
			Events: pub,
		},
	}
}

func (env *testEnv) registerStudent(t *testing.T, name, email string) *credentials.Claims {
	t.Helper()

	res, err := env.auth.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	claims, err := env.creds.VerifyToken(res.Token)
	require.NoError(t, err)
	return claims
}

func (env *testEnv) admin(t *testing.T) *credentials.Claims {
	t.Helper()

	_, _, err := env.auth.BootstrapAdmin(context.Background(), "Administrator", "admin@campus.com", "Admin@123456")
	require.NoError(t, err)
	res, err := env.auth.Login(context.Background(), "admin@campus.com", "Admin@123456", domain.RoleAdmin)
	require.NoError(t, err)
	claims, err := env.creds.VerifyToken(res.Token)
	require.NoError(t, err)
	return claims
}

var errBoom = errors.New("boom")
