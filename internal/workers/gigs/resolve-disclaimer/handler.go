// internal/workers/gigs/resolve-disclaimer/handler.go
package resolvedisclaimer

import (
	"context"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "resolve-disclaimer"
)

type Handler struct {
	config   *Config
	sessions *session.Sessions
	logger   logger.Logger
	support  *camunda.JobSupport
}

func NewHandler(config *Config, sessions *session.Sessions, validator camunda.VariablesValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		logger:   l,
		support:  camunda.NewJobSupport(TaskType, l, validator),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, errors.NewInvalidInputError("sessionId is required")
	}

	s, err := h.sessions.Open(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	output := &Output{Accepted: input.Accepted}
	outcome := OutcomeDismissed
	if input.Accepted {
		if _, err := s.Flow.AcceptDisclaimer(); err != nil {
			return nil, session.FlowError(input.SessionID, err)
		}
		// OnViewGig fired exactly once during AcceptDisclaimer.
		viewed := s.Viewed[len(s.Viewed)-1]
		output.ViewGig = &viewed
		outcome = OutcomeAccepted
	} else {
		s.Flow.DismissDisclaimer()
	}

	if err := h.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	output.GateState = s.Flow.GateState()
	metrics.DisclaimerOutcomes.WithLabelValues(outcome).Inc()

	h.logger.Info("disclaimer resolved", map[string]interface{}{
		"sessionId": input.SessionID,
		"outcome":   outcome,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
