package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{
			name:        "validation is a business error",
			err:         NewJobFormValidationFailedError([]string{"heading", "ustarPoints"}),
			wantCode:    "JOB_FORM_INVALID",
			wantRetries: 0,
		},
		{
			name:        "store outage retries",
			err:         NewFlowStateUnavailableError("gigboard:board:1", stderrors.New("dial tcp")),
			wantCode:    "FLOW_STATE_UNAVAILABLE",
			wantRetries: 3,
		},
		{
			name:        "timeouts retry twice",
			err:         NewTimeoutError("redis", stderrors.New("deadline exceeded")),
			wantCode:    "TIMEOUT_ERROR",
			wantRetries: 2,
		},
		{
			name:        "unmapped code falls back",
			err:         NewBusinessRuleError("nope", ""),
			wantCode:    "BUSINESS_RULE_VIOLATION",
			wantRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_NonRetryableOverride(t *testing.T) {
	e := NewCatalogQueryFailedError("postgres", stderrors.New("x"))
	e.Retryable = false
	assert.Equal(t, 0, ConvertToBPMNError(e).Retries)
}

func TestValidationErrorCarriesFields(t *testing.T) {
	bpmn := ConvertToBPMNError(NewJobFormValidationFailedError([]string{"task"}))
	vars := bpmn.ToErrorVariables()

	assert.Equal(t, []string{"task"}, vars["fields"])
	assert.Equal(t, "JOB_FORM_INVALID", vars["errorCode"])
	assert.Equal(t, false, vars["retryable"])
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("save draft: %w", NewJobNotFoundError(12))
	assert.Equal(t, ErrCodeJobNotFound, Normalize(wrapped).Code)

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, plain.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CREATOR", GetErrorCategory(ErrCodeJobFormValidationFailed))
	assert.Equal(t, "CREATOR", GetErrorCategory(ErrCodeConfirmationNotPending))
	assert.Equal(t, "BROWSE", GetErrorCategory(ErrCodeDisclaimerNotPending))
	assert.Equal(t, "STATE", GetErrorCategory(ErrCodeFlowStateUnavailable))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogQueryFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "EVENTS", GetErrorCategory(ErrCodeEventPublishFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidView))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternalError))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeGigNotFound))
}

func TestRemainingRetries(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: retries}}
	}
	assert.Equal(t, int32(2), remainingRetries(job(3), 3))
	assert.Equal(t, int32(0), remainingRetries(job(1), 3))
	assert.Equal(t, int32(3), remainingRetries(job(10), 3))
}
