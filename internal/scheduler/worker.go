package scheduler

import (
	"context"
	"fmt"

	"renoquote_backend/platform/config"
	"renoquote_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// AnalysisRunner processes one photo-analysis job to completion.
// Implemented by the analysis service; the worker stays free of the
// analysis domain.
type AnalysisRunner interface {
	RunJob(ctx context.Context, jobID uuid.UUID) error
}

// Worker consumes background tasks from the asynq queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	runner AnalysisRunner
	log    *logger.Logger
}

// NewWorker creates the asynq worker and registers its task handlers.
func NewWorker(cfg config.SchedulerConfig, runner AnalysisRunner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
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
		runner: runner,
		log:    log,
	}

	mux.HandleFunc(TaskAnalysisRun, w.handleAnalysisRun)

	return w, nil
}

func (w *Worker) handleAnalysisRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAnalysisRunPayload(task)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}
	return w.runner.RunJob(ctx, jobID)
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
