// ABOUTME: Thumbnail worker runs background page-metadata lookups for items without images
// ABOUTME: Provides a managed worker pool so refreshes never wait on article pages

package workers

import (
	"context"
	"sync"
	"time"

	"newsdesk-api/core/interfaces"
)

// ThumbnailJob asks the pool to find images for a set of article links
type ThumbnailJob struct {
	Links []string

	// Done receives link -> image URL for every link that yielded an image
	Done func(images map[string]string)
}

// ThumbnailWorker manages background thumbnail discovery
type ThumbnailWorker struct {
	metadata   interfaces.MetadataService
	logger     interfaces.Logger
	jobQueue   chan *ThumbnailJob
	maxWorkers int
	submitWait time.Duration
	jobTimeout time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// WorkerConfig holds configuration for the thumbnail worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// SubmitWait bounds how long Enqueue blocks on a full queue
	SubmitWait time.Duration

	// JobTimeout bounds a single job's lookups
	JobTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  64,
		SubmitWait: 2 * time.Second,
		JobTimeout: time.Minute,
	}
}

// NewThumbnailWorker creates a new thumbnail worker
func NewThumbnailWorker(metadata interfaces.MetadataService, logger interfaces.Logger, config WorkerConfig) *ThumbnailWorker {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitWait <= 0 {
		config.SubmitWait = defaults.SubmitWait
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = defaults.JobTimeout
	}

	return &ThumbnailWorker{
		metadata:   metadata,
		logger:     logger,
		jobQueue:   make(chan *ThumbnailJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		submitWait: config.SubmitWait,
		jobTimeout: config.JobTimeout,
	}
}

// Start starts the worker pool
func (tw *ThumbnailWorker) Start() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.running {
		return nil
	}

	tw.ctx, tw.cancel = context.WithCancel(context.Background())
	for i := 0; i < tw.maxWorkers; i++ {
		tw.wg.Add(1)
		go tw.run(tw.ctx)
	}

	tw.running = true
	return nil
}

// Stop cancels in-flight lookups and waits for the workers to exit.
// Jobs still queued are dropped.
func (tw *ThumbnailWorker) Stop() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.running {
		return nil
	}

	tw.running = false
	tw.cancel()
	tw.wg.Wait()
	return nil
}

// Enqueue submits a lookup for links. done runs on a worker goroutine.
func (tw *ThumbnailWorker) Enqueue(ctx context.Context, links []string, done func(images map[string]string)) error {
	if len(links) == 0 {
		return nil
	}

	tw.mu.Lock()
	running, pool := tw.running, tw.ctx
	tw.mu.Unlock()
	if !running {
		return ErrWorkerNotRunning
	}

	// The queue is never closed, so the send is safe without the lock
	timer := time.NewTimer(tw.submitWait)
	defer timer.Stop()

	job := &ThumbnailJob{Links: links, Done: done}
	select {
	case tw.jobQueue <- job:
		return nil
	case <-timer.C:
		return ErrQueueFull
	case <-pool.Done():
		return ErrWorkerNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main loop for each worker
func (tw *ThumbnailWorker) run(ctx context.Context) {
	defer tw.wg.Done()

	for ctx.Err() == nil {
		select {
		case job := <-tw.jobQueue:
			tw.processJob(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

// processJob looks up every link and reports the images found.
// Jobs outlive the request that queued them, so they run on the pool context.
func (tw *ThumbnailWorker) processJob(pool context.Context, job *ThumbnailJob) {
	ctx, cancel := context.WithTimeout(pool, tw.jobTimeout)
	defer cancel()

	results := tw.metadata.ExtractMetadataBatch(ctx, job.Links)

	images := make(map[string]string, len(results))
	for link, meta := range results {
		if meta != nil && meta.Thumbnail != "" {
			images[link] = meta.Thumbnail
		}
	}

	if tw.logger != nil {
		tw.logger.Debug("Thumbnail lookup finished", map[string]interface{}{
			"links":  len(job.Links),
			"images": len(images),
		})
	}

	if job.Done != nil {
		job.Done(images)
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
