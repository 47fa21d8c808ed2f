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
	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

const MinPasswordLength = 6

type AuthService struct {
	Users UserStore
	Creds *credentials.Service
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	StudentID       string
	Department      string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	switch {
	case strings.TrimSpace(in.Name) == "", strings.TrimSpace(in.Email) == "", in.Password == "", in.ConfirmPassword == "":
		return nil, domain.Invalid("Please provide all required fields")
	case len(in.Password) < MinPasswordLength:
		return nil, domain.Invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	case in.Password != in.ConfirmPassword:
		return nil, domain.Invalid("Passwords do not match")
	}

	pwHash, err := s.Creds.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         domain.RoleStudent,
		StudentID:    in.StudentID,
		Department:   in.Department,
	}
	if err := s.Users.CreateUserIfEmailFree(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			l.Warn("register_error", "status", 400, "reason", "email already registered")
		} else {
			l.Error("register_error", "status", 500, "reason", "cannot store user", "error", err)
		}
		return nil, err
	}

	res, err := s.issue(user)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	l.Info("register_success", "user_id", user.ID.String())
	return res, nil
}

// Login authenticates against the account holding email in the given role.
// Unknown email, wrong role and wrong password are all ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "role", string(role))

	if email == "" || password == "" {
		return nil, fmt.Errorf("missing email or password: %w", domain.ErrInvalidCredentials)
	}

	user, err := s.Users.FindUserByEmailRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !s.Creds.VerifyPassword(password, user.PasswordHash) {
		l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		return nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	res, err := s.issue(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	l.Info("login_success", "user_id", user.ID.String())
	return res, nil
}

// Me resolves the account behind verified claims.
func (s *AuthService) Me(ctx context.Context, claims *credentials.Claims) (*models.User, error) {
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", claims.UserID, domain.ErrOwnerNotFound)
	}
	u, err := s.Users.GetUserByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrOwnerNotFound)
	}
	return u, err
}

// BootstrapAdmin creates the admin account unless one already exists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	if email == "" || len(password) < MinPasswordLength {
		return nil, false, fmt.Errorf("admin email and a password of %d+ characters are required: %w", MinPasswordLength, domain.ErrValidation)
	}

	pwHash, err := s.Creds.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash admin password: %w", err)
	}

	admin, created, err := s.Users.EnsureAdmin(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}

	l := logging.FromContext(ctx).With("svc", "auth.bootstrap_admin")
	if created {
		l.Info("admin_created", "email", admin.Email)
	} else {
		l.Info("admin_exists", "email", admin.Email)
	}
	return admin, created, nil
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	tok, exp, err := s.Creds.IssueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: tok, ExpiresAt: exp, User: u}, nil
}
