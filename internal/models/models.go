package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"                              json:"id"`
	Name         string      `gorm:"not null"                                          json:"name"`
	Email        string      `gorm:"not null;uniqueIndex:idx_users_email_role,priority:1" json:"email"`
	PasswordHash string      `gorm:"not null"                                          json:"-"`
	Role         domain.Role `gorm:"not null;uniqueIndex:idx_users_email_role,priority:2;uniqueIndex:idx_users_single_admin,where:role = 'admin'" json:"role"`
	StudentID    string      `json:"studentId,omitempty"`
	Department   string      `json:"department,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Complaint struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"      json:"id"`
	Title        string          `gorm:"not null"                  json:"title"`
	Description  string          `gorm:"not null"                  json:"description"`
	Location     string          `gorm:"not null"                  json:"location"`
	Category     domain.Category `gorm:"not null"                  json:"category"`
	Status       domain.Status   `gorm:"not null;index"            json:"status"`
	Priority     domain.Priority `gorm:"not null"                  json:"priority"`
	Photo        *string         `json:"photo"`
	Remarks      string          `gorm:"not null;default:''"       json:"remarks"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index"  json:"reportedBy"`
	StudentName  string          `gorm:"not null"                  json:"studentName"`
	StudentEmail string          `gorm:"not null"                  json:"studentEmail"`
	CreatedAt    time.Time       `gorm:"index"                     json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (c *Complaint) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func All() []any {
	return []any{&User{}, &Complaint{}}
}
