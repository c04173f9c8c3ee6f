// internal/workers/creator/validate-job-form/handler.go
package validatejobform

import (
	"context"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/creator"
	"gigboard/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-job-form"
)

type Handler struct {
	config  *Config
	logger  logger.Logger
	support *camunda.JobSupport
}

func NewHandler(config *Config, validator camunda.VariablesValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		logger:  l,
		support: camunda.NewJobSupport(TaskType, l, validator),
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

// execute never fails: an invalid form is a normal outcome routed by the
// process on the valid flag.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	formErrors, ok := creator.ValidateForm(input.Form)

	output := &Output{
		Valid:         ok,
		FormErrors:    formErrors,
		InvalidFields: []string{},
		Notifications: []models.Notification{},
	}
	if ok {
		return output, nil
	}

	for _, f := range formErrors.Failed() {
		output.InvalidFields = append(output.InvalidFields, string(f))
		metrics.BoardValidationFailures.WithLabelValues(string(f)).Inc()
	}
	output.Notifications = append(output.Notifications, creator.NotifyValidationFailed)

	h.logger.Debug("job form rejected", map[string]interface{}{
		"fields": output.InvalidFields,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
