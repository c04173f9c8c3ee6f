// cmd/worker-manager/workers.go
package main

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	awsclient "gigboard/internal/common/aws"
	"gigboard/internal/common/camunda"
	"gigboard/internal/common/config"
	"gigboard/internal/common/logger"
	"gigboard/internal/events"
	"gigboard/internal/session"

	sun "gigboard/internal/workers/communication/send-user-notification"
	cjs "gigboard/internal/workers/creator/confirm-job-submission"
	nb "gigboard/internal/workers/creator/navigate-board"
	sjd "gigboard/internal/workers/creator/save-job-draft"
	sej "gigboard/internal/workers/creator/submit-existing-job"
	sj "gigboard/internal/workers/creator/submit-job"
	uj "gigboard/internal/workers/creator/update-job"
	vjf "gigboard/internal/workers/creator/validate-job-form"
	bn "gigboard/internal/workers/gigs/browse-navigation"
	rd "gigboard/internal/workers/gigs/resolve-disclaimer"
	sg "gigboard/internal/workers/gigs/search-gigs"
	sel "gigboard/internal/workers/gigs/select-gig"
)

type dependencies struct {
	cfg       *config.Config
	log       logger.Logger
	zapLog    *zap.Logger
	validator camunda.VariablesValidator
	boards    *session.Boards
	sessions  *session.Sessions
	publisher events.Publisher
	push      *awsclient.SNSClient
	email     *awsclient.SESClient
	recorder  camunda.Recorder
}

func (d *dependencies) timeout(taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(d.cfg, taskType).Timeout)
}

func registerWorkers(zeebe *camunda.Client, d *dependencies) []worker.JobWorker {
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if w := startWorker(zeebe, taskType, config.GetWorkerConfig(d.cfg, taskType), camunda.Instrument(taskType, handler, d.recorder), d.zapLog); w != nil {
			workers = append(workers, w)
		}
	}

	// --- Creator Workers (7) ---
	start(vjf.TaskType, vjf.NewHandler(&vjf.Config{Timeout: d.timeout(vjf.TaskType)}, d.validator, d.log).Handle)
	start(sjd.TaskType, sjd.NewHandler(&sjd.Config{Timeout: d.timeout(sjd.TaskType)}, d.boards, d.publisher, d.validator, d.log).Handle)
	start(sj.TaskType, sj.NewHandler(&sj.Config{Timeout: d.timeout(sj.TaskType)}, d.boards, d.validator, d.log).Handle)
	start(cjs.TaskType, cjs.NewHandler(&cjs.Config{Timeout: d.timeout(cjs.TaskType)}, d.boards, d.publisher, d.validator, d.log).Handle)
	start(uj.TaskType, uj.NewHandler(&uj.Config{Timeout: d.timeout(uj.TaskType)}, d.boards, d.validator, d.log).Handle)
	start(sej.TaskType, sej.NewHandler(&sej.Config{Timeout: d.timeout(sej.TaskType)}, d.boards, d.publisher, d.validator, d.log).Handle)
	start(nb.TaskType, nb.NewHandler(&nb.Config{Timeout: d.timeout(nb.TaskType)}, d.boards, d.validator, d.log).Handle)

	// --- Gig Browse Workers (4) ---
	start(sg.TaskType, sg.NewHandler(&sg.Config{Timeout: d.timeout(sg.TaskType)}, d.sessions, d.validator, d.log).Handle)
	start(sel.TaskType, sel.NewHandler(&sel.Config{Timeout: d.timeout(sel.TaskType)}, d.sessions, d.validator, d.log).Handle)
	start(rd.TaskType, rd.NewHandler(&rd.Config{Timeout: d.timeout(rd.TaskType)}, d.sessions, d.validator, d.log).Handle)
	start(bn.TaskType, bn.NewHandler(&bn.Config{Timeout: d.timeout(bn.TaskType)}, d.sessions, d.validator, d.log).Handle)

	// --- Communication Workers (1) ---
	var push sun.TopicPublisher
	if d.push != nil {
		push = d.push
	}
	var email sun.EmailSender
	if d.email != nil {
		email = d.email
	}
	start(sun.TaskType, sun.NewHandler(&sun.Config{
		PushEnabled:  d.cfg.Notifications.SNS.Enabled,
		EmailEnabled: d.cfg.Notifications.Email.Enabled,
		Timeout:      d.timeout(sun.TaskType),
	}, push, email, d.validator, d.log).Handle)

	return workers
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	w := client.GetClient().NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return w
}
