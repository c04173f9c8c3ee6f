package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func TestSESClient_SendText(t *testing.T) {
	var got *ses.SendEmailInput
	client := NewSESClientWith(&mockSES{
		SendEmailFunc: func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = in
			return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
		},
	}, "noreply@gigboard.io")

	id, err := client.SendText(context.Background(), "creator@example.com", "Job Saved", "text", "<p>html</p>")
	require.NoError(t, err)
	assert.Equal(t, "ses-1", id)
	assert.Equal(t, "noreply@gigboard.io", aws.ToString(got.Source))
	assert.Equal(t, []string{"creator@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, "Job Saved", aws.ToString(got.Message.Subject.Data))
}

func TestSNSClient_PublishToTopic(t *testing.T) {
	var got *sns.PublishInput
	client := NewSNSClientWith(&mockSNS{
		PublishFunc: func(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			got = in
			return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
		},
	}, "arn:aws:sns:us-east-1:123:gigboard")

	id, err := client.PublishToTopic(context.Background(), "Job Submitted", `{"a":1}`, map[string]string{"severity": "default"})
	require.NoError(t, err)
	assert.Equal(t, "sns-1", id)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:gigboard", aws.ToString(got.TopicArn))
	assert.Equal(t, "default", aws.ToString(got.MessageAttributes["severity"].StringValue))
}

func TestSNSClient_PublishError(t *testing.T) {
	client := NewSNSClientWith(&mockSNS{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		},
	}, "arn")

	_, err := client.PublishToTopic(context.Background(), "", "m", nil)
	assert.EqualError(t, err, "throttled")
}
