package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/repo"
	"github.com/Skotchmaster/campus_complaints/internal/service"
	"github.com/Skotchmaster/campus_complaints/pkg/config"
	pkgdb "github.com/Skotchmaster/campus_complaints/pkg/db"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

const (
	demoName     = "Demo Student"
	demoEmail    = "demo@student.com"
	demoPassword = "password123"
)

type demoComplaint struct {
	in       service.SubmitInput
	status   string
	priority string
}

var demoComplaints = []demoComplaint{
	{
		in: service.SubmitInput{
			Title:       "Broken Projector",
			Description: "Projector in Room 101 is flickering.",
			Location:    "Room 101",
			Category:    string(domain.CategoryClassroom),
		},
		status:   string(domain.StatusPending),
		priority: string(domain.PriorityHigh),
	},
	{
		in: service.SubmitInput{
			Title:       "Leaking Faucet",
			Description: "Restroom faucet is dripping constantly.",
			Location:    "2nd Floor Restroom",
			Category:    string(domain.CategoryPlumbing),
		},
		status:   string(domain.StatusInProgress),
		priority: string(domain.PriorityMedium),
	},
	{
		in: service.SubmitInput{
			Title:       "Wifi Issue",
			Description: "No signal in the library corner.",
			Location:    "Library",
			Category:    string(domain.CategoryOther),
		},
		status:   string(domain.StatusCompleted),
		priority: string(domain.PriorityLow),
	},
}

func main() {
	clean := flag.Bool("clean", false, "delete every existing complaint before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyList(cfg.DatabaseURLs, "DATABASE_URLS")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-seed")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logging.IntoContext(ctx, logger)

	db, _, err := pkgdb.OpenFirst(ctx, cfg.DatabaseURLs)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = pkgdb.Close(db) }()

	store := repo.New(db)
	if err := store.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	creds := credentials.New(cfg.JWTSecret, cfg.TokenTTL)
	auth := &service.AuthService{Users: store, Creds: creds}
	complaints := &service.ComplaintService{Store: store, Users: store, Events: events.Nop{}}

	if _, _, err := auth.BootstrapAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	admin, err := claimsOf(creds)(auth.Login(ctx, cfg.AdminEmail, cfg.AdminPassword, domain.RoleAdmin))
	if err != nil {
		log.Fatalf("admin login: %v", err)
	}

	res, err := auth.Register(ctx, service.RegisterInput{
		Name:            demoName,
		Email:           demoEmail,
		Password:        demoPassword,
		ConfirmPassword: demoPassword,
		StudentID:       "D123",
		Department:      "General",
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		logger.Info("demo_student_exists", "email", demoEmail)
		res, err = auth.Login(ctx, demoEmail, demoPassword, domain.RoleStudent)
	}
	student, err := claimsOf(creds)(res, err)
	if err != nil {
		log.Fatalf("demo student: %v", err)
	}

	if *clean {
		existing, err := complaints.ListAll(ctx, admin)
		if err != nil {
			log.Fatalf("list complaints: %v", err)
		}
		for _, c := range existing {
			if err := complaints.Delete(ctx, admin, c.ID.String()); err != nil {
				log.Fatalf("delete complaint %s: %v", c.ID, err)
			}
		}
		logger.Info("complaints_cleared", "count", len(existing))
	}

	for _, d := range demoComplaints {
		c, err := complaints.Submit(ctx, student, d.in)
		if err != nil {
			log.Fatalf("submit %q: %v", d.in.Title, err)
		}
		status, priority := d.status, d.priority
		if _, err := complaints.Update(ctx, admin, c.ID.String(), service.UpdateInput{Status: &status, Priority: &priority}); err != nil {
			log.Fatalf("update %q: %v", d.in.Title, err)
		}
		logger.Info("complaint_seeded", "id", c.ID, "title", c.Title, "status", status)
	}

	logger.Info("seed_complete", "student", demoEmail, "complaints", len(demoComplaints))
}

// claimsOf turns a login or registration result into verified claims.
func claimsOf(creds *credentials.Service) func(*service.AuthResult, error) (*credentials.Claims, error) {
	return func(res *service.AuthResult, err error) (*credentials.Claims, error) {
		if err != nil {
			return nil, err
		}
		return creds.VerifyToken(res.Token)
	}
}
