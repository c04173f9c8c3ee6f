// internal/workers/creator/submit-existing-job/handler.go
package submitexistingjob

import (
	"context"
	stderrors "errors"

	"gigboard/internal/common/camunda"
	"gigboard/internal/common/errors"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/metrics"
	"gigboard/internal/creator"
	"gigboard/internal/events"
	"gigboard/internal/models"
	"gigboard/internal/session"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-existing-job"
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
		if err := board.Flow.SubmitExisting(input.Job); err != nil {
			if stderrors.Is(err, creator.ErrJobNotFound) {
				return nil, errors.NewJobNotFoundError(input.Job.ID)
			}
			return nil, session.FlowError(input.BoardID, err)
		}

		submitted := input.Job
		submitted.Status = models.JobStatusSubmitted
		output = Output{
			Job:           submitted,
			Notifications: board.Notifications(),
			Navigation:    board.Navigation(),
		}
		if err := board.Record(input.JobKey, output); err != nil {
			return nil, err
		}
		if err := h.boards.Save(ctx, board); err != nil {
			return nil, err
		}

		metrics.BoardJobsCreated.WithLabelValues(string(models.JobStatusSubmitted)).Inc()
		h.logger.Info("existing job submitted", map[string]interface{}{
			"boardId": input.BoardID,
			"jobId":   submitted.ID,
		})
	}

	output.EventPublished = true
	if err := h.publisher.PublishJobEvent(ctx, models.EventJobSubmitted, input.BoardID, output.Job); err != nil {
		output.EventPublished = false
		h.logger.Warn("job submitted but event not published", map[string]interface{}{
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
