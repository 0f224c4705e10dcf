package leadsync

import (
	"context"

	"leadsync_backend/platform/config"
	"leadsync_backend/platform/logger"
	"leadsync_backend/platform/redisconn"

	"github.com/hibiken/asynq"
)

// Worker consumes sync jobs from the queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	svc    *Service
	log    *logger.Logger
}

// NewWorker creates the queue consumer for sync jobs.
func NewWorker(cfg config.QueueConfig, svc *Service, log *logger.Logger) (*Worker, error) {
	opt, err := redisconn.AsynqOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetQueueConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		svc:    svc,
		log:    log,
	}

	mux.HandleFunc(TaskLeadSync, w.handleLeadSync)

	return w, nil
}

func (w *Worker) handleLeadSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadSyncPayload(task)
	if err != nil {
		return err
	}

	jobID, _ := asynq.GetTaskID(ctx)
	w.log.Info("processing sync job", "job_id", jobID, "count", payload.Count)

	result, err := w.svc.Run(ctx, payload.Count)
	if err != nil {
		w.log.Error("sync job failed", "job_id", jobID, "error", err)
		return err
	}

	w.log.SyncResult(jobID, payload.Count, result.Imported, result.Skipped)
	return nil
}

// Run starts the queue consumer and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
