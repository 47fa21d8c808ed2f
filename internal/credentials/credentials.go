package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/hash"
	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/pkg/tokens"
)

const DefaultTTL = 7 * 24 * time.Hour

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

type Service struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func New(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{Secret: secret, TTL: ttl, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) IssueToken(u *models.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.TTL)
	id := u.ID.String()

	tok, err := tokens.SignAccessClaims(tokens.AccessClaims{
		UserID: id,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tok, exp, nil
}

func (s *Service) VerifyToken(tok string) (*Claims, error) {
	if tok == "" {
		return nil, fmt.Errorf("empty token: %w", domain.ErrInvalidToken)
	}
	c, err := tokens.AccessClaimsFromToken(tok, s.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	role := domain.Role(c.Role)
	if c.UserID == "" || !role.Valid() {
		return nil, fmt.Errorf("token has no identity: %w", domain.ErrInvalidToken)
	}

	return &Claims{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

func (s *Service) HashPassword(plain string) (string, error) {
	return hash.HashPassword(plain)
}

func (s *Service) VerifyPassword(plain, hashed string) bool {
	return hash.CheckPassword(hashed, plain)
}
