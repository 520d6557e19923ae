package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/pkg/logger"
)

// Worker consumes invite notification tasks from the async queue.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor func(context.Context, *InviteTask) error
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewWorker creates a new worker instance. Returns nil when Redis is disabled.
func NewWorker(cfg *config.RedisConfig) *Worker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warn().Err(err).Str("type", task.Type()).Msg("error processing notification task")
			}),
		},
	)

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// SetProcessor sets the function used to process invite notification tasks.
func (w *Worker) SetProcessor(processor func(context.Context, *InviteTask) error) {
	w.processor = processor
}

// Start begins processing tasks.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeInviteNotify, w.handleInviteTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("starting notification worker")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("notification worker stopped: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("shutting down notification worker")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
}

func (w *Worker) handleInviteTask(ctx context.Context, t *asynq.Task) error {
	var task InviteTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Warn().Err(err).Msg("failed to unmarshal notification task")
		return err
	}

	if w.processor == nil {
		logger.Warn().Msg("notification worker has no processor set")
		return nil
	}

	return w.processor(ctx, &task)
}

var (
	globalWorker *Worker
	workerOnce   sync.Once
)

// InitWorker initializes the global worker.
func InitWorker(cfg *config.RedisConfig) *Worker {
	workerOnce.Do(func() {
		globalWorker = NewWorker(cfg)
	})
	return globalWorker
}
