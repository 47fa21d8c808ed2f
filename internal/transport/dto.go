package transport

import (
	"github.com/Skotchmaster/campus_complaints/internal/models"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	StudentID       string `json:"studentId"`
	Department      string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubmitComplaintRequest struct {
	Title       string `json:"title"       form:"title"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location"    form:"location"`
	Category    string `json:"category"    form:"category"`
}

// UpdateComplaintRequest is a sparse update: absent and null fields are skipped.
type UpdateComplaintRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Remarks  *string `json:"remarks"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	StudentID  string `json:"studentId,omitempty"`
	Department string `json:"department,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		StudentID:  u.StudentID,
		Department: u.Department,
	}
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type MeResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

type ComplaintResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Complaint *models.Complaint `json:"complaint"`
}

type ComplaintsResponse struct {
	Success    bool               `json:"success"`
	Count      int                `json:"count"`
	Complaints []models.Complaint `json:"complaints"`
}

type SearchResponse struct {
	Success    bool               `json:"success"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	Complaints []models.Complaint `json:"complaints"`
}

type StatsBody struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   StatsBody `json:"stats"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Database string `json:"database"`
}
