// internal/workers/creator/update-job/handler.go
package updatejob

import (
	"context"
	stderrors "errors"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/creator"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-job"
)

type Handler struct {
	config  *Config
	boards  *session.Boards
	logger  logger.Logger
	support *camunda.JobSupport
}

func NewHandler(config *Config, boards *session.Boards, validator camunda.VariablesValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		boards:  boards,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.BoardID == "" {
		return nil, errors.NewInvalidInputError("boardId is required")
	}
	if !input.Job.Status.Valid() {
		return nil, errors.NewInvalidInputError("job.status must be draft or submitted")
	}

	board, err := h.boards.Open(ctx, input.BoardID)
	if err != nil {
		return nil, err
	}

	if err := board.Flow.Update(input.Job); err != nil {
		if stderrors.Is(err, creator.ErrJobNotFound) {
			return nil, errors.NewJobNotFoundError(input.Job.ID)
		}
		return nil, session.FlowError(input.BoardID, err)
	}
	if err := h.boards.Save(ctx, board); err != nil {
		return nil, err
	}

	h.logger.Info("job updated", map[string]interface{}{
		"boardId": input.BoardID,
		"jobId":   input.Job.ID,
	})

	return &Output{
		Job:           input.Job,
		Notifications: board.Notifications(),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
