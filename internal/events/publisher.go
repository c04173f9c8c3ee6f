// internal/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/models"
)

var tracer trace.Tracer = otel.Tracer("gigboard/events")

// Publisher announces job lifecycle events to downstream consumers.
type Publisher interface {
	PublishJobEvent(ctx context.Context, eventType, boardID string, job models.Job) error
	Close()
}

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type Config struct {
	URL            string
	SubjectPrefix  string
	ConnectTimeout time.Duration
}

type NATSPublisher struct {
	conn   Conn
	prefix string
	logger logger.Logger
	now    func() time.Time
}

func Connect(cfg Config, log logger.Logger) (*NATSPublisher, error) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	opts := []nats.Option{
		nats.Name("gigboard-worker-manager"),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectWait(time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return NewNATSPublisher(nc, cfg.SubjectPrefix, log), nil
}

func NewNATSPublisher(conn Conn, prefix string, log logger.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = "gigboard"
	}
	return &NATSPublisher{
		conn:   conn,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "events"}),
		now:    time.Now,
	}
}

// Subject returns the NATS subject for an event type, e.g.
// "gigboard.job.submitted".
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

func (p *NATSPublisher) PublishJobEvent(ctx context.Context, eventType, boardID string, job models.Job) error {
	_, span := tracer.Start(ctx, "PublishJobEvent")
	defer span.End()

	event := models.JobEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		BoardID:    boardID,
		Job:        job,
		OccurredAt: p.now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return errors.NewEventPublishFailedError(eventType, fmt.Errorf("marshal: %w", err))
	}

	subject := p.Subject(eventType)
	span.SetAttributes(
		attribute.String("nats.subject", subject),
		attribute.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job event", map[string]interface{}{
			"subject": subject,
			"jobId":   job.ID,
			"error":   err.Error(),
		})
		return errors.NewEventPublishFailedError(eventType, err)
	}

	p.logger.Debug("published job event", map[string]interface{}{
		"subject": subject,
		"eventId": event.EventID,
		"jobId":   job.ID,
	})
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// Discard drops every event. Used when no broker is configured.
type Discard struct{}

func (Discard) PublishJobEvent(context.Context, string, string, models.Job) error { return nil }
func (Discard) Close() {}
