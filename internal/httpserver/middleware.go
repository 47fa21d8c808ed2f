package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
)

const CtxClaims = "claims"

type AuthMiddleware struct {
	Creds *credentials.Service
}

func NewAuthMiddleware(creds *credentials.Service) *AuthMiddleware {
	return &AuthMiddleware{Creds: creds}
}

// RequireAuth verifies the bearer token and stores its claims on the context.
// Role checks are left to the services.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if tok == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
		}

		claims, err := m.Creds.VerifyToken(tok)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed").SetInternal(err)
		}

		c.Set(CtxClaims, claims)
		return next(c)
	}
}

func bearerToken(header string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func claimsFrom(c echo.Context) *credentials.Claims {
	claims, _ := c.Get(CtxClaims).(*credentials.Claims)
	return claims
}
