// internal/workers/creator/save-job-draft/handler.go
package savejobdraft

import (
	"context"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/events"
	"gigboard/internal/models"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-job-draft"
)

type Handler struct {
	config    *Config
	boards    *session.Boards
	publisher events.Publisher
	logger    logger.Logger
	support   *camunda.JobSupport
}

func NewHandler(config *Config, boards *session.Boards, publisher events.Publisher, validator camunda.VariablesValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		boards:    boards,
		publisher: publisher,
		logger:    l,
		support:   camunda.NewJobSupport(TaskType, l, validator),
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

	input.JobKey = job.Key

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

	var output Output
	replayed, err := board.Replay(input.JobKey, &output)
	if err != nil {
		return nil, err
	}
	if replayed {
		h.logger.Info("job already applied, replaying output", map[string]interface{}{
			"boardId": input.BoardID,
			"jobKey":  input.JobKey,
			"jobId":   output.Job.ID,
		})
	} else {
		board.Flow.SetForm(input.Form)
		saved, flowErr := board.Flow.SaveDraft()
		if flowErr != nil {
			// The form and its error map are kept on failure too.
			if err := h.boards.Save(ctx, board); err != nil {
				return nil, err
			}
			return nil, session.FlowError(input.BoardID, flowErr)
		}

		output = Output{
			Job:           saved,
			JobCount:      len(board.Flow.Jobs()),
			Notifications: board.Notifications(),
			Navigation:    board.Navigation(),
		}
		if err := board.Record(input.JobKey, output); err != nil {
			return nil, err
		}
		if err := h.boards.Save(ctx, board); err != nil {
			return nil, err
		}

		metrics.BoardJobsCreated.WithLabelValues(string(models.JobStatusDraft)).Inc()
		h.logger.Info("draft saved", map[string]interface{}{
			"boardId": input.BoardID,
			"jobId":   saved.ID,
		})
	}

	output.EventPublished = true
	if err := h.publisher.PublishJobEvent(ctx, models.EventJobSaved, input.BoardID, output.Job); err != nil {
		output.EventPublished = false
		h.logger.Warn("job saved but event not published", map[string]interface{}{
			"boardId": input.BoardID,
			"jobId":   output.Job.ID,
			"error":   err.Error(),
		})
	}

	return &output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
