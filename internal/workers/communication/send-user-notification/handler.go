// internal/workers/communication/send-user-notification/handler.go
package sendusernotification

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"time"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-user-notification"
)

// TopicPublisher pushes a message to the notification topic.
type TopicPublisher interface {
	PublishToTopic(ctx context.Context, subject, message string, attributes map[string]string) (string, error)
}

// EmailSender delivers a notification by email.
type EmailSender interface {
	SendText(ctx context.Context, to, subject, text, html string) (string, error)
}

type Handler struct {
	config  *Config
	push    TopicPublisher
	email   EmailSender
	logger  logger.Logger
	support *camunda.JobSupport
	now     func() time.Time
}

// NewHandler accepts nil push or email senders; the matching channel is then
// treated as disabled.
func NewHandler(config *Config, push TopicPublisher, email EmailSender, validator camunda.VariablesValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		push:    push,
		email:   email,
		logger:  l,
		support: camunda.NewJobSupport(TaskType, l, validator),
		now:     time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := h.support.Decode(job.Variables, &input); err != nil {
		h.support.Fail(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.support.Fail(ctx, client, job, err)
		return
	}

	h.support.Complete(ctx, client, job, output)
}

// execute delivers each notification on every enabled channel. The job only
// fails when nothing could be delivered, so a retry never duplicates a sent
// message.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.RecipientID == "" {
		return nil, errors.NewInvalidInputError("recipientId is required")
	}

	output := &Output{Deliveries: []models.NotificationDelivery{}}
	var lastErr error
	var lastChannel string

	for _, n := range input.Notifications {
		delivery := models.NotificationDelivery{
			ID:          uuid.New().String(),
			RecipientID: input.RecipientID,
			Channels:    []string{},
			Status:      StatusDisabled,
			Payload:     n,
			SentAt:      h.now().UTC().Format(time.RFC3339),
		}

		if h.pushEnabled() {
			if err := h.sendPush(ctx, delivery); err != nil {
				lastErr, lastChannel = err, ChannelPush
				delivery.Status = StatusFailed
				h.record(ChannelPush, false)
			} else {
				delivery.Channels = append(delivery.Channels, ChannelPush)
				h.record(ChannelPush, true)
			}
		}

		if h.emailEnabled() && input.RecipientEmail != "" {
			if err := h.sendEmail(ctx, input.RecipientEmail, n); err != nil {
				lastErr, lastChannel = err, ChannelEmail
				delivery.Status = StatusFailed
				h.record(ChannelEmail, false)
			} else {
				delivery.Channels = append(delivery.Channels, ChannelEmail)
				h.record(ChannelEmail, true)
			}
		}

		if len(delivery.Channels) > 0 {
			delivery.Status = StatusSent
			output.Sent++
		} else if delivery.Status == StatusFailed {
			output.Failed++
		}
		output.Deliveries = append(output.Deliveries, delivery)
	}

	if output.Sent == 0 && output.Failed > 0 {
		return nil, errors.NewNotificationSendFailedError(lastChannel, lastErr)
	}

	h.logger.Info("notifications delivered", map[string]interface{}{
		"recipientId": input.RecipientID,
		"sent":        output.Sent,
		"failed":      output.Failed,
	})
	return output, nil
}

func (h *Handler) pushEnabled() bool  { return h.config.PushEnabled && h.push != nil }
func (h *Handler) emailEnabled() bool { return h.config.EmailEnabled && h.email != nil }

func (h *Handler) sendPush(ctx context.Context, d models.NotificationDelivery) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	_, err = h.push.PublishToTopic(ctx, d.Payload.Title, string(body), map[string]string{
		"recipientId": d.RecipientID,
		"severity":    string(d.Payload.Severity),
	})
	if err != nil {
		h.logger.Error("push send failed", map[string]interface{}{
			"error":          err.Error(),
			"notificationId": d.ID,
		})
	}
	return err
}

func (h *Handler) sendEmail(ctx context.Context, to string, n models.Notification) error {
	htmlBody := fmt.Sprintf("<h2>%s</h2><p>%s</p>", html.EscapeString(n.Title), html.EscapeString(n.Description))
	_, err := h.email.SendText(ctx, to, n.Title, n.Description, htmlBody)
	if err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"error": err.Error(),
			"email": to,
		})
	}
	return err
}

func (h *Handler) record(channel string, ok bool) {
	status := StatusSent
	if !ok {
		status = StatusFailed
	}
	metrics.NotificationsDelivered.WithLabelValues(channel, status).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
