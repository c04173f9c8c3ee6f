package sendusernotification

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclient "gigboard/internal/common/aws"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/creator"
	"gigboard/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func okSNS(published *[]*sns.PublishInput) *MockSNSService {
	return &MockSNSService{
		PublishFunc: func(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			*published = append(*published, in)
			return &sns.PublishOutput{MessageId: awsv2.String("sns-msg")}, nil
		},
	}
}

func okSES(sent *[]*ses.SendEmailInput) *MockSESService {
	return &MockSESService{
		SendEmailFunc: func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			*sent = append(*sent, in)
			return &ses.SendEmailOutput{MessageId: awsv2.String("ses-msg")}, nil
		},
	}
}

func failingSNS() *MockSNSService {
	return &MockSNSService{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, stderrors.New("sns throttled")
		},
	}
}

func newHandler(t *testing.T, config *Config, snsSvc awsclient.SNSService, sesSvc awsclient.SESService) *Handler {
	t.Helper()
	var push TopicPublisher
	if snsSvc != nil {
		push = awsclient.NewSNSClientWith(snsSvc, "arn:aws:sns:us-east-1:000000000000:gigboard-notifications")
	}
	var email EmailSender
	if sesSvc != nil {
		email = awsclient.NewSESClientWith(sesSvc, "noreply@gigboard.io")
	}
	h := NewHandler(config, push, email, nil, logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PushAndEmail(t *testing.T) {
	var published []*sns.PublishInput
	var sent []*ses.SendEmailInput
	h := newHandler(t, &Config{PushEnabled: true, EmailEnabled: true, Timeout: time.Second}, okSNS(&published), okSES(&sent))

	out, err := h.Execute(context.Background(), &Input{
		RecipientID:    "creator-7",
		RecipientEmail: "creator7@example.com",
		Notifications:  []models.Notification{creator.NotifyJobSubmitted},
	})
	require.NoError(t, err)

	require.Len(t, out.Deliveries, 1)
	d := out.Deliveries[0]
	assert.Equal(t, StatusSent, d.Status)
	assert.Equal(t, []string{ChannelPush, ChannelEmail}, d.Channels)
	assert.Equal(t, "2024-05-01T09:30:00Z", d.SentAt)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 0, out.Failed)

	require.Len(t, published, 1)
	assert.Equal(t, "Job Submitted", awsv2.ToString(published[0].Subject))
	assert.Equal(t, "default", awsv2.ToString(published[0].MessageAttributes["severity"].StringValue))
	var payload models.NotificationDelivery
	require.NoError(t, json.Unmarshal([]byte(awsv2.ToString(published[0].Message)), &payload))
	assert.Equal(t, creator.NotifyJobSubmitted, payload.Payload)

	require.Len(t, sent, 1)
	assert.Equal(t, []string{"creator7@example.com"}, sent[0].Destination.ToAddresses)
	assert.Contains(t, awsv2.ToString(sent[0].Message.Body.Html.Data), "<h2>Job Submitted</h2>")
}

func TestHandler_Execute_Channels(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		email        string
		wantStatus   string
		wantChannels []string
	}{
		{
			name:         "email skipped without address",
			config:       &Config{PushEnabled: true, EmailEnabled: true},
			wantStatus:   StatusSent,
			wantChannels: []string{ChannelPush},
		},
		{
			name:         "email only",
			config:       &Config{EmailEnabled: true},
			email:        "a@b.io",
			wantStatus:   StatusSent,
			wantChannels: []string{ChannelEmail},
		},
		{
			name:         "everything disabled",
			config:       &Config{},
			email:        "a@b.io",
			wantStatus:   StatusDisabled,
			wantChannels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published []*sns.PublishInput
			var sent []*ses.SendEmailInput
			h := newHandler(t, tt.config, okSNS(&published), okSES(&sent))

			out, err := h.Execute(context.Background(), &Input{
				RecipientID:    "r1",
				RecipientEmail: tt.email,
				Notifications:  []models.Notification{creator.NotifyDraftSaved},
			})
			require.NoError(t, err)
			require.Len(t, out.Deliveries, 1)
			assert.Equal(t, tt.wantStatus, out.Deliveries[0].Status)
			assert.Equal(t, tt.wantChannels, out.Deliveries[0].Channels)
		})
	}
}

func TestHandler_Execute_PartialFailureStillCompletes(t *testing.T) {
	var sent []*ses.SendEmailInput
	h := newHandler(t, &Config{PushEnabled: true, EmailEnabled: true}, failingSNS(), okSES(&sent))

	out, err := h.Execute(context.Background(), &Input{
		RecipientID:    "r1",
		RecipientEmail: "r1@example.com",
		Notifications:  []models.Notification{creator.NotifyJobUpdated},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, out.Deliveries[0].Status)
	assert.Equal(t, []string{ChannelEmail}, out.Deliveries[0].Channels)
}

func TestHandler_Execute_AllFailed(t *testing.T) {
	h := newHandler(t, &Config{PushEnabled: true}, failingSNS(), nil)

	_, err := h.Execute(context.Background(), &Input{
		RecipientID:   "r1",
		Notifications: []models.Notification{creator.NotifyValidationFailed},
	})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "push")
}

func TestHandler_Execute_NoNotifications(t *testing.T) {
	h := newHandler(t, LoadConfig(), failingSNS(), nil)

	out, err := h.Execute(context.Background(), &Input{RecipientID: "r1"})
	require.NoError(t, err)
	assert.Empty(t, out.Deliveries)
	assert.NotNil(t, out.Deliveries)
}

func TestHandler_Execute_MissingRecipient(t *testing.T) {
	h := newHandler(t, LoadConfig(), nil, nil)

	_, err := h.Execute(context.Background(), &Input{})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}
