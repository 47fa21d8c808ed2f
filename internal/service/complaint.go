package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/internal/policy"
	"github.com/Skotchmaster/campus_complaints/internal/repo"
	"github.com/Skotchmaster/campus_complaints/internal/storage"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

const publishTimeout = 5 * time.Second

type ComplaintService struct {
	Store    ComplaintStore
	Users    UserStore
	Blobs    storage.BlobStore
	Events   events.Publisher
	Searcher Searcher

	MaxPhotoBytes int64
}

type SubmitInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Photo       *storage.Photo
}

// UpdateInput carries the admin-editable fields. A nil field is left as is.
// An empty status or priority counts as not supplied, an empty remarks string
// clears the remarks.
type UpdateInput struct {
	Status   *string
	Priority *string
	Remarks  *string
}

type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

type SearchResult struct {
	Total int64
	Items []models.Complaint
}

func (s *ComplaintService) Submit(ctx context.Context, claims *credentials.Claims, in SubmitInput) (*models.Complaint, error) {
	l := logging.FromContext(ctx).With("svc", "complaint.submit")

	if err := policy.Authorize(claims, policy.ActionSubmit, ""); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Location) == "" || in.Category == "" {
		return nil, domain.Invalid("Please provide all required fields")
	}
	category := domain.Category(in.Category)
	if !category.Valid() {
		return nil, domain.Invalid("Invalid category")
	}
	if err := storage.ValidatePhoto(in.Photo, s.MaxPhotoBytes); err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ctx, claims)
	if err != nil {
		return nil, err
	}

	var photoRef *string
	if in.Photo != nil {
		if s.Blobs == nil {
			return nil, errors.New("photo storage is not configured")
		}
		ref, err := s.Blobs.Save(ctx, in.Photo.Name, in.Photo.Body)
		if err != nil {
			l.Error("submit_failed", "status", 500, "reason", "cannot store photo", "error", err)
			return nil, fmt.Errorf("store photo: %w", err)
		}
		photoRef = &ref
	}

	c := &models.Complaint{
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Category:     category,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		Photo:        photoRef,
		Remarks:      "",
		OwnerID:      owner.ID,
		StudentName:  owner.Name,
		StudentEmail: owner.Email,
	}
	if err := s.Store.CreateComplaint(ctx, c); err != nil {
		l.Error("submit_failed", "status", 500, "reason", "cannot store complaint", "error", err)
		if photoRef != nil {
			if derr := s.Blobs.Delete(ctx, *photoRef); derr != nil {
				l.Error("photo_cleanup_failed", "photo", *photoRef, "error", derr)
			}
		}
		return nil, err
	}

	s.publish(ctx, events.ComplaintSubmitted, claims, c.ID, c)
	l.Info("submit_success", "complaint_id", c.ID.String(), "owner_id", owner.ID.String())
	return c, nil
}

func (s *ComplaintService) ListMine(ctx context.Context, claims *credentials.Claims) ([]models.Complaint, error) {
	if err := policy.Authorize(claims, policy.ActionListMine, ""); err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", claims.UserID, domain.ErrOwnerNotFound)
	}
	return s.Store.ListComplaintsByOwner(ctx, ownerID)
}

func (s *ComplaintService) ListAll(ctx context.Context, claims *credentials.Claims) ([]models.Complaint, error) {
	if err := policy.Authorize(claims, policy.ActionListAll, ""); err != nil {
		return nil, err
	}
	return s.Store.ListComplaints(ctx)
}

// Get returns one complaint to an admin or to the student who filed it.
func (s *ComplaintService) Get(ctx context.Context, claims *credentials.Claims, rawID string) (*models.Complaint, error) {
	// reject anonymous callers before revealing whether the id exists
	if err := policy.Authorize(claims, policy.ActionRead, subject(claims)); err != nil {
		return nil, err
	}
	id, err := parseComplaintID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.Store.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(claims, policy.ActionRead, c.OwnerID.String()); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) Update(ctx context.Context, claims *credentials.Claims, rawID string, in UpdateInput) (*models.Complaint, error) {
	l := logging.FromContext(ctx).With("svc", "complaint.update")

	if err := policy.Authorize(claims, policy.ActionUpdate, ""); err != nil {
		return nil, err
	}

	var patch repo.ComplaintPatch
	if in.Status != nil && *in.Status != "" {
		st := domain.Status(*in.Status)
		if !st.Valid() {
			return nil, domain.Invalid("Invalid status")
		}
		patch.Status = &st
	}
	if in.Priority != nil && *in.Priority != "" {
		pr := domain.Priority(*in.Priority)
		if !pr.Valid() {
			return nil, domain.Invalid("Invalid priority")
		}
		patch.Priority = &pr
	}
	patch.Remarks = in.Remarks

	id, err := parseComplaintID(rawID)
	if err != nil {
		return nil, err
	}

	c, err := s.Store.UpdateComplaint(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			l.Error("update_failed", "status", 500, "complaint_id", rawID, "error", err)
		}
		return nil, err
	}

	s.publish(ctx, events.ComplaintUpdated, claims, c.ID, c)
	l.Info("update_success", "complaint_id", c.ID.String(), "new_status", string(c.Status))
	return c, nil
}

func (s *ComplaintService) Delete(ctx context.Context, claims *credentials.Claims, rawID string) error {
	l := logging.FromContext(ctx).With("svc", "complaint.delete")

	if err := policy.Authorize(claims, policy.ActionDelete, ""); err != nil {
		return err
	}
	id, err := parseComplaintID(rawID)
	if err != nil {
		return err
	}

	c, err := s.Store.DeleteComplaint(ctx, id)
	if err != nil {
		return err
	}

	if c.Photo != nil && s.Blobs != nil {
		if err := s.Blobs.Delete(ctx, *c.Photo); err != nil {
			l.Warn("photo_cleanup_failed", "photo", *c.Photo, "error", err)
		}
	}

	s.publish(ctx, events.ComplaintDeleted, claims, id, nil)
	l.Info("delete_success", "complaint_id", id.String())
	return nil
}

// Stats derives the total from the three status counts, so it always
// equals their sum.
func (s *ComplaintService) Stats(ctx context.Context, claims *credentials.Claims) (*Stats, error) {
	if err := policy.Authorize(claims, policy.ActionStats, ""); err != nil {
		return nil, err
	}
	counts, err := s.Store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{
		Pending:    counts[domain.StatusPending],
		InProgress: counts[domain.StatusInProgress],
		Completed:  counts[domain.StatusCompleted],
	}
	st.Total = st.Pending + st.InProgress + st.Completed
	return st, nil
}

func (s *ComplaintService) Search(ctx context.Context, claims *credentials.Claims, query string, from, size int) (*SearchResult, error) {
	if err := policy.Authorize(claims, policy.ActionSearch, ""); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, domain.Invalid("Search query is required")
	}
	if s.Searcher == nil {
		return nil, errors.New("search is not configured")
	}
	total, items, err := s.Searcher.Search(ctx, query, from, size)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &SearchResult{Total: total, Items: items}, nil
}

func (s *ComplaintService) resolveOwner(ctx context.Context, claims *credentials.Claims) (*models.User, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", claims.UserID, domain.ErrOwnerNotFound)
	}
	u, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrOwnerNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *ComplaintService) publish(ctx context.Context, typ string, claims *credentials.Claims, id uuid.UUID, c *models.Complaint) {
	if s.Events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := events.Event{
		Type:        typ,
		ComplaintID: id.String(),
		ActorID:     claims.UserID,
		OccurredAt:  time.Now().UTC(),
		Complaint:   c,
	}
	if err := s.Events.Publish(pctx, ev); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", typ, "complaint_id", ev.ComplaintID, "error", err)
	}
}

func subject(c *credentials.Claims) string {
	if c == nil {
		return ""
	}
	return c.UserID
}

func parseComplaintID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("complaint %q: %w", raw, domain.ErrNotFound)
	}
	return id, nil
}
