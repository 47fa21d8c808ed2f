package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type HandlerFunc func(ctx context.Context, ev Event) error

type Consumer struct {
	r messageReader
}

func NewKafkaConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{r: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})}
}

// Run fetches until ctx is cancelled. Undecodable messages and handler
// failures are logged and committed so one bad event cannot wedge the group.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	l := logging.FromContext(ctx).With("component", "events.consumer")

	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			l.Warn("event_decode_failed", "offset", msg.Offset, "partition", msg.Partition, "error", err)
		} else if err := handle(ctx, ev); err != nil {
			l.Error("event_handle_failed", "type", ev.Type, "complaint_id", ev.ComplaintID, "error", err)
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}
