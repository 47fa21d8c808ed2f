package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	pkgdb "github.com/Skotchmaster/campus_complaints/pkg/db"
)

// CreateUserIfEmailFree inserts u unless any account, in any role, already
// uses the same email.
func (r *GormRepo) CreateUserIfEmailFree(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		if pkgdb.IsUniqueViolation(tx.Error) {
			return fmt.Errorf("create user: %w", domain.ErrDuplicateEmail)
		}
		return storeErr("create user", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("create user: %w", domain.ErrDuplicateEmail)
	}
	return nil
}

func (r *GormRepo) FindUserByEmailRole(ctx context.Context, email string, role domain.Role) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ? AND role = ?", email, role).First(&user).Error; err != nil {
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, storeErr("get user", err)
	}
	return &user, nil
}

// EnsureAdmin inserts admin only when no admin row exists. The partial unique
// index on role='admin' turns concurrent attempts into a no-op conflict, so
// at most one admin is ever created. The stored admin is returned either way.
func (r *GormRepo) EnsureAdmin(ctx context.Context, admin *models.User) (*models.User, bool, error) {
	admin.Role = domain.RoleAdmin
	tx := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(admin)
	if tx.Error != nil {
		return nil, false, storeErr("ensure admin", tx.Error)
	}
	if tx.RowsAffected == 1 {
		return admin, true, nil
	}

	var existing models.User
	if err := r.DB.WithContext(ctx).Where("role = ?", domain.RoleAdmin).First(&existing).Error; err != nil {
		return nil, false, storeErr("load admin", err)
	}
	return &existing, false, nil
}
