// internal/workers/creator/navigate-board/handler.go
package navigateboard

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
	TaskType = "navigate-board"
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

// execute moves the creator between the add and posted job pages.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.BoardID == "" {
		return nil, errors.NewInvalidInputError("boardId is required")
	}

	board, err := h.boards.Open(ctx, input.BoardID)
	if err != nil {
		return nil, err
	}

	if err := board.Flow.Navigate(input.View); err != nil {
		return nil, session.FlowError(input.BoardID, err)
	}
	if err := h.boards.Save(ctx, board); err != nil {
		return nil, err
	}

	h.logger.Debug("board navigated", map[string]interface{}{
		"boardId": input.BoardID,
		"view":    input.View,
	})

	return &Output{
		ActivePage: board.Flow.ActivePage(),
		Navigation: board.Navigation(),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
