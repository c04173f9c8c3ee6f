// internal/workers/creator/submit-job/handler.go
package submitjob

import (
	"context"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-job"
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

	board, err := h.boards.Open(ctx, input.BoardID)
	if err != nil {
		return nil, err
	}

	board.Flow.SetForm(input.Form)
	flowErr := board.Flow.Submit()

	if err := h.boards.Save(ctx, board); err != nil {
		return nil, err
	}
	if flowErr != nil {
		return nil, session.FlowError(input.BoardID, flowErr)
	}

	h.logger.Info("submission awaiting confirmation", map[string]interface{}{
		"boardId": input.BoardID,
	})

	return &Output{
		ConfirmPending: board.Flow.ConfirmPending(),
		Form:           board.Flow.Form(),
		Notifications:  board.Notifications(),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
