// internal/workers/gigs/search-gigs/handler.go
package searchgigs

import (
	"context"

	"gigboard/internal/browse"
	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-gigs"
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

	if input.NotificationCount != nil {
		unread := *input.NotificationCount
		s.Flow.SetCounter(browse.CountFunc(func() int { return unread }))
	}
	s.Flow.SetSearchTerm(input.SearchTerm)
	if err := h.sessions.Save(ctx, s); err != nil {
		return nil, err
	}

	cards := s.Flow.Cards()
	results := make([]Result, 0, len(cards))
	for _, c := range cards {
		results = append(results, Result{
			Gig:             c.Gig,
			Title:           c.Title,
			Description:     c.Description,
			TitleHTML:       browse.MarkHTML(c.Title),
			DescriptionHTML: browse.MarkHTML(c.Description),
		})
	}
	metrics.GigSearches.Observe(float64(len(results)))

	h.logger.Debug("gig search", map[string]interface{}{
		"sessionId": input.SessionID,
		"term":      input.SearchTerm,
		"matches":   len(results),
	})

	return &Output{
		SearchTerm:        s.Flow.SearchTerm(),
		Total:             len(results),
		Results:           results,
		GateState:         s.Flow.GateState(),
		NotificationCount: s.Flow.NotificationCount(),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
