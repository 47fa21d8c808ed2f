package events

import (
	"context"
	"time"

	"github.com/Skotchmaster/campus_complaints/internal/models"
)

const (
	ComplaintSubmitted = "complaint_submitted"
	ComplaintUpdated   = "complaint_updated"
	ComplaintDeleted   = "complaint_deleted"
)

type Event struct {
	Type        string            `json:"type"`
	ComplaintID string            `json:"complaintId"`
	ActorID     string            `json:"actorId"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Complaint   *models.Complaint `json:"complaint,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
