// internal/workers/gigs/browse-navigation/handler.go
package browsenavigation

import (
	"context"
	"fmt"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "browse-navigation"
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

// execute relays a header interaction from the gig browser. The flow keeps
// no state for it, so the session is not saved.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, errors.NewInvalidInputError("sessionId is required")
	}

	s, err := h.sessions.Open(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	switch input.Action {
	case ActionClickNotification:
		s.Flow.ClickNotification()
	case ActionNavigate:
		if err := s.Flow.Navigate(input.View); err != nil {
			return nil, session.FlowError(input.SessionID, err)
		}
	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", input.Action))
	}

	out := &Output{NotificationClicked: s.Clicks > 0}
	if n := len(s.Views); n > 0 {
		out.Navigation = s.Views[n-1]
	}

	h.logger.Debug("header interaction", map[string]interface{}{
		"sessionId":  input.SessionID,
		"action":     input.Action,
		"navigation": out.Navigation,
	})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
