package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/internal/repo"
)

// UserStore is the identity store the services read and write through.
type UserStore interface {
	CreateUserIfEmailFree(ctx context.Context, u *models.User) error
	FindUserByEmailRole(ctx context.Context, email string, role domain.Role) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnsureAdmin(ctx context.Context, admin *models.User) (*models.User, bool, error)
}

type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	ListComplaintsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaint(ctx context.Context, id uuid.UUID, p repo.ComplaintPatch) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

// Searcher is the full-text index over complaints.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Complaint, error)
}

var (
	_ UserStore      = (*repo.GormRepo)(nil)
	_ ComplaintStore = (*repo.GormRepo)(nil)
)
