package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/pkg/logger"
)

const (
	TaskTypeInviteNotify = "invite:notify"
)

// InviteTask is the payload for an invite notification job.
type InviteTask struct {
	InviteID      uint   `json:"invite_id"`
	InviteCode    string `json:"invite_code"`
	WorkspaceName string `json:"workspace_name"`
	InviterName   string `json:"inviter_name"`
	InviteeEmail  string `json:"invitee_email"`
	InviteeName   string `json:"invitee_name"`
	Role          string `json:"role"`
}

// TaskQueue defines the interface for invite notification processing.
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *InviteTask) error
	// IsAsync returns true if the queue processes tasks asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue initializes the global task queue based on config. Redis gets
// an asynq-backed queue; otherwise tasks run in-process.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Warn().Err(err).Msg("redis unavailable, falling back to sync notification queue")
				globalTaskQueue = NewSyncQueue()
			} else {
				logger.Infof("async notification queue initialized with Redis at %s", cfg.Redis.Addr)
				globalTaskQueue = queue
			}
		} else {
			logger.Infof("sync notification queue initialized (Redis disabled)")
			globalTaskQueue = NewSyncQueue()
		}
	})
	return globalTaskQueue
}

// GetTaskQueue returns the global task queue instance.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue implements TaskQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue.
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue adds an invite notification task to the async queue.
func (q *AsyncQueue) Enqueue(task *InviteTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeInviteNotify, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("notification task enqueued: id=%s, queue=%s", info.ID, info.Queue)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue with in-process processing (no Redis).
type SyncQueue struct {
	processor func(context.Context, *InviteTask) error
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function used to process tasks in-process.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *InviteTask) error) {
	q.processor = processor
}

// Enqueue processes the task in a goroutine so request handling is not
// blocked on SMTP round-trips.
func (q *SyncQueue) Enqueue(task *InviteTask) error {
	if q.processor == nil {
		logger.Warn().Msg("sync queue has no processor set, task dropped")
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Warn().Err(err).Uint("invite_id", task.InviteID).Msg("notification processing failed")
		}
	}()

	return nil
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}
