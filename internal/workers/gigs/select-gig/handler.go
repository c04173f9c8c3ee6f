// internal/workers/gigs/select-gig/handler.go
package selectgig

import (
	"context"

	"gigboard/internal/browse"
	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "select-gig"
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

// execute opens the disclaimer for the gig. Selecting again while the
// disclaimer is open replaces the earlier selection.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" || input.GigID == "" {
		return nil, errors.NewInvalidInputError("sessionId and gigId are required")
	}

	s, err := h.sessions.Open(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	gig, ok := s.Flow.FindGig(input.GigID)
	if !ok {
		return nil, errors.NewGigNotFoundError(input.GigID)
	}

	s.Flow.SelectForView(gig)
	if err := h.sessions.Save(ctx, s); err != nil {
		return nil, err
	}

	h.logger.Info("disclaimer opened", map[string]interface{}{
		"sessionId": input.SessionID,
		"gigId":     gig.ID,
	})

	return &Output{
		Gig:        gig,
		GateState:  s.Flow.GateState(),
		Disclaimer: browse.DisclaimerText,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
