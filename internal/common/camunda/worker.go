// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// VariablesValidator checks raw job variables before they are decoded.
type VariablesValidator interface {
	ValidateVariables(taskType, variables string) error
}

// Recorder receives per-task job counts and durations for the otel meter.
type Recorder interface {
	RecordJobProcessed(ctx context.Context, taskType string)
	RecordJobDuration(ctx context.Context, duration time.Duration, taskType string)
}

// JobSupport carries the decode, complete and fail steps every handler
// shares.
type JobSupport struct {
	taskType   string
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	validator  VariablesValidator
}

func NewJobSupport(taskType string, log logger.Logger, validator VariablesValidator) *JobSupport {
	return &JobSupport{
		taskType:   taskType,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
		validator:  validator,
	}
}

// Decode validates the job variables against the registry schema, when one
// is configured, and unmarshals them into dest.
func (s *JobSupport) Decode(variables string, dest interface{}) error {
	if s.validator != nil {
		if err := s.validator.ValidateVariables(s.taskType, variables); err != nil {
			return err
		}
	}
	if err := json.Unmarshal([]byte(variables), dest); err != nil {
		return errors.NewInvalidInputError("parse input: " + err.Error())
	}
	return nil
}

func (s *JobSupport) Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		s.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		s.Fail(ctx, client, job, errors.NewInvalidInputError("encode output: "+err.Error()))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		s.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(s.taskType).Inc()
	s.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}

func (s *JobSupport) Fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	bpmnErr, outcome := s.errHandler.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(s.taskType, bpmnErr.Code).Inc()
	s.logger.Warn("job not completed", map[string]interface{}{
		"jobKey":  job.Key,
		"outcome": string(outcome),
	})
}

// Instrument wraps a job handler with the active-job gauge, the duration
// histogram and the otel recorder.
func Instrument(taskType string, handler worker.JobHandler, rec Recorder) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer func() {
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			elapsed := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			if rec != nil {
				rec.RecordJobProcessed(context.Background(), taskType)
				rec.RecordJobDuration(context.Background(), elapsed, taskType)
			}
		}()
		handler(client, job)
	}
}
