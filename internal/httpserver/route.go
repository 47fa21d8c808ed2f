package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_complaints/internal/transport"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	ComplaintHandler *ComplaintHTTP
	AuthMW           *AuthMiddleware

	// Ping reports whether the database answers.
	Ping func(ctx context.Context) error

	UploadDir     string
	SearchEnabled bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ping != nil && d.Ping(c.Request().Context()) != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		dbState := "connected"
		if d.Ping != nil && d.Ping(c.Request().Context()) != nil {
			dbState = "disconnected"
		}
		return c.JSON(http.StatusOK, transport.HealthResponse{Success: true, Status: "ok", Database: dbState})
	})

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/admin-login", d.AuthHandler.AdminLogin)
	auth.GET("/me", d.AuthHandler.Me, d.AuthMW.RequireAuth)

	complaints := api.Group("/complaints", d.AuthMW.RequireAuth)
	complaints.POST("", d.ComplaintHandler.Submit)
	complaints.GET("", d.ComplaintHandler.ListAll)
	complaints.GET("/my", d.ComplaintHandler.ListMine)
	complaints.GET("/stats/dashboard", d.ComplaintHandler.Stats)
	if d.SearchEnabled {
		complaints.GET("/search", d.ComplaintHandler.Search)
	}
	complaints.GET("/:id", d.ComplaintHandler.Get)
	complaints.PUT("/:id", d.ComplaintHandler.Update)
	complaints.DELETE("/:id", d.ComplaintHandler.Delete)
}
