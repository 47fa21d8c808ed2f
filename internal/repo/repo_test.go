package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	pkgdb "github.com/Skotchmaster/campus_complaints/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := New(db)
	require.NoError(t, r.Migrate())
	return r
}

func seedUser(t *testing.T, r *GormRepo, email string, role domain.Role) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, r.CreateUserIfEmailFree(context.Background(), u))
	return u
}

func seedComplaint(t *testing.T, r *GormRepo, owner *models.User, title string, status domain.Status, at time.Time) *models.Complaint {
	t.Helper()
	c := &models.Complaint{
		Title:        title,
		Description:  "desc",
		Location:     "Block A",
		Category:     domain.CategoryClassroom,
		Status:       status,
		Priority:     domain.PriorityMedium,
		OwnerID:      owner.ID,
		StudentName:  owner.Name,
		StudentEmail: owner.Email,
		CreatedAt:    at,
	}
	require.NoError(t, r.CreateComplaint(context.Background(), c))
	return c
}

func TestCreateUserIfEmailFree_Duplicate(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	first := seedUser(t, r, "a@campus.com", domain.RoleStudent)
	assert.NotEqual(t, uuid.Nil, first.ID)

	dup := &models.User{Name: "Other", Email: "a@campus.com", PasswordHash: "y", Role: domain.RoleStudent}
	err := r.CreateUserIfEmailFree(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	var n int64
	require.NoError(t, r.DB.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFindUserByEmailRole(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, r, "s@campus.com", domain.RoleStudent)

	u, err := r.FindUserByEmailRole(ctx, "s@campus.com", domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "s@campus.com", u.Email)

	_, err = r.FindUserByEmailRole(ctx, "s@campus.com", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	a, created, err := r.EnsureAdmin(ctx, &models.User{Name: "Admin", Email: "admin@campus.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleAdmin, a.Role)

	b, created, err := r.EnsureAdmin(ctx, &models.User{Name: "Admin 2", Email: "other@campus.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "admin@campus.com", b.Email)

	var n int64
	require.NoError(t, r.DB.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnsureAdmin_Concurrent(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := r.EnsureAdmin(ctx, &models.User{Name: "Admin", Email: "admin@campus.com", PasswordHash: "h"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, r.DB.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestListComplaints_NewestFirstAndOwnerScoped(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	alice := seedUser(t, r, "alice@campus.com", domain.RoleStudent)
	bob := seedUser(t, r, "bob@campus.com", domain.RoleStudent)
	base := time.Now().UTC().Add(-time.Hour)

	seedComplaint(t, r, alice, "old", domain.StatusPending, base)
	seedComplaint(t, r, bob, "bob's", domain.StatusPending, base.Add(time.Minute))
	seedComplaint(t, r, alice, "new", domain.StatusPending, base.Add(2*time.Minute))

	mine, err := r.ListComplaintsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "new", mine[0].Title)
	assert.Equal(t, "old", mine[1].Title)
	for _, c := range mine {
		assert.Equal(t, alice.ID, c.OwnerID)
	}

	all, err := r.ListComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].Title)
	assert.Equal(t, "bob's", all[1].Title)

	none, err := r.ListComplaintsByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateComplaint_Sparse(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "s@campus.com", domain.RoleStudent)
	c := seedComplaint(t, r, owner, "Leak", domain.StatusInProgress, time.Now().UTC().Add(-time.Hour))
	before, err := r.GetComplaint(ctx, c.ID)
	require.NoError(t, err)

	remarks := "plumber booked"
	got, err := r.UpdateComplaint(ctx, c.ID, ComplaintPatch{Remarks: &remarks})
	require.NoError(t, err)

	assert.Equal(t, "plumber booked", got.Remarks)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, before.Title, got.Title)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt) || got.UpdatedAt.Equal(before.UpdatedAt))

	empty := ""
	got, err = r.UpdateComplaint(ctx, c.ID, ComplaintPatch{Remarks: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", got.Remarks)
}

func TestUpdateComplaint_NotFound(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)

	s := domain.StatusCompleted
	_, err := r.UpdateComplaint(context.Background(), uuid.New(), ComplaintPatch{Status: &s})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteComplaint(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "s@campus.com", domain.RoleStudent)
	c := seedComplaint(t, r, owner, "Fan", domain.StatusPending, time.Now().UTC())

	deleted, err := r.DeleteComplaint(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	_, err = r.DeleteComplaint(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	counts, err := r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Status]int64{
		domain.StatusPending: 0, domain.StatusInProgress: 0, domain.StatusCompleted: 0,
	}, counts)

	owner := seedUser(t, r, "s@campus.com", domain.RoleStudent)
	now := time.Now().UTC()
	seedComplaint(t, r, owner, "a", domain.StatusPending, now)
	seedComplaint(t, r, owner, "b", domain.StatusPending, now)
	seedComplaint(t, r, owner, "c", domain.StatusCompleted, now)

	counts, err = r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[domain.StatusPending])
	assert.EqualValues(t, 0, counts[domain.StatusInProgress])
	assert.EqualValues(t, 1, counts[domain.StatusCompleted])
}

func TestStoreErrors_WhenDatabaseClosed(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	require.NoError(t, pkgdb.Close(r.DB))

	_, err := r.ListComplaints(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
