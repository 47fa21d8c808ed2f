package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/models"
)

// ComplaintPatch holds the admin-mutable columns. Nil fields are left untouched.
type ComplaintPatch struct {
	Status   *domain.Status
	Priority *domain.Priority
	Remarks  *string
}

func (r *GormRepo) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return storeErr("create complaint", err)
	}
	return nil
}

func (r *GormRepo) GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	var c models.Complaint
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, storeErr("get complaint", err)
	}
	return &c, nil
}

func (r *GormRepo) ListComplaintsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complaint, error) {
	items := make([]models.Complaint, 0)
	if err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, storeErr("list complaints by owner", err)
	}
	return items, nil
}

func (r *GormRepo) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	items := make([]models.Complaint, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, storeErr("list complaints", err)
	}
	return items, nil
}

func (r *GormRepo) UpdateComplaint(ctx context.Context, id uuid.UUID, p ComplaintPatch) (*models.Complaint, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.Priority != nil {
		fields["priority"] = *p.Priority
	}
	if p.Remarks != nil {
		fields["remarks"] = *p.Remarks
	}

	res := r.DB.WithContext(ctx).Model(&models.Complaint{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, storeErr("update complaint", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update complaint: %w", domain.ErrNotFound)
	}

	return r.GetComplaint(ctx, id)
}

// DeleteComplaint removes the row and returns what was stored.
func (r *GormRepo) DeleteComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	c, err := r.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	res := r.DB.WithContext(ctx).Delete(&models.Complaint{}, "id = ?", id)
	if res.Error != nil {
		return nil, storeErr("delete complaint", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("delete complaint: %w", domain.ErrNotFound)
	}
	return c, nil
}

// CountByStatus counts every status in one grouped query. Statuses with no
// complaints are present with a zero count.
func (r *GormRepo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	var rows []struct {
		Status domain.Status
		N      int64
	}
	if err := r.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, storeErr("count complaints", err)
	}

	out := make(map[domain.Status]int64, len(domain.Statuses))
	for _, s := range domain.Statuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
