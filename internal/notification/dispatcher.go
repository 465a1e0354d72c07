package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type emailJob struct {
	email   Email
	attempt int
}

type worker struct {
	id         int
	workerPool chan chan emailJob
	jobChannel chan emailJob
	logger     *slog.Logger
}

func newWorker(id int, workerPool chan chan emailJob, logger *slog.Logger) *worker {
	return &worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan emailJob),
		logger:     logger,
	}
}

func (w *worker) start(ctx context.Context, wg *sync.WaitGroup, processFunc func(emailJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				w.logger.Debug("worker delivering email", "worker_id", w.id, "to", job.email.To)
				processFunc(job)
			case <-ctx.Done():
				w.logger.Debug("worker shutting down", "worker_id", w.id)
				return
			}
		}
	}()
}

type DispatcherConfig struct {
	MaxWorkers   int
	QueueSize    int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Dispatcher delivers emails off the request path through a bounded
// queue and a fixed worker pool. Delivery failures are retried with
// exponential backoff up to MaxAttempts, then logged and dropped.
type Dispatcher struct {
	sender       SenderAPI
	logger       *slog.Logger
	maxAttempts  int
	retryBackoff time.Duration

	jobQueue   chan emailJob
	workerPool chan chan emailJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewDispatcher(config DispatcherConfig, sender SenderAPI, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	retryBackoff := config.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = 2 * time.Second
	}

	d := &Dispatcher{
		sender:       sender,
		logger:       logger,
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan emailJob, queueSize),
		workerPool: make(chan chan emailJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	d.startWorkerPool()

	return d
}

func (d *Dispatcher) startWorkerPool() {
	d.once.Do(func() {
		for i := 0; i < d.maxWorkers; i++ {
			w := newWorker(i, d.workerPool, d.logger)
			w.start(d.ctx, &d.wg, d.deliver)
		}

		d.wg.Add(1)
		go d.dispatch()

		d.logger.Info("notification worker pool started",
			"max_workers", d.maxWorkers,
			"queue_size", cap(d.jobQueue))
	})
}

func (d *Dispatcher) dispatch() {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.jobQueue:
			select {
			case jobChannel := <-d.workerPool:
				select {
				case jobChannel <- job:
				case <-d.ctx.Done():
					d.logger.Info("notification dispatcher shutting down")
					return
				}
			case <-d.ctx.Done():
				d.logger.Info("notification dispatcher shutting down")
				return
			}
		case <-d.ctx.Done():
			d.logger.Info("notification dispatcher shutting down")
			return
		}
	}
}

// Enqueue queues an email for delivery. A full queue rejects rather than
// blocking the caller.
func (d *Dispatcher) Enqueue(email Email) error {
	select {
	case d.jobQueue <- emailJob{email: email, attempt: 1}:
		d.logger.Debug("email queued", "to", email.To, "subject", email.Subject,
			"queue_length", len(d.jobQueue))
		return nil
	default:
		d.logger.Warn("notification queue full, dropping email",
			"to", email.To, "subject", email.Subject,
			"queue_capacity", cap(d.jobQueue))
		return fmt.Errorf("notification queue full")
	}
}

func (d *Dispatcher) deliver(job emailJob) {
	err := d.sender.Send(job.email)
	if err == nil {
		d.logger.Info("email delivered", "to", job.email.To, "subject", job.email.Subject,
			"attempt", job.attempt)
		return
	}

	if job.attempt >= d.maxAttempts {
		d.logger.Error("email delivery failed permanently, dropping",
			"to", job.email.To, "subject", job.email.Subject,
			"attempts", job.attempt, "error", err)
		return
	}

	backoff := d.retryBackoff * time.Duration(1<<(job.attempt-1))
	d.logger.Warn("email delivery failed, retrying",
		"to", job.email.To, "subject", job.email.Subject,
		"attempt", job.attempt, "backoff", backoff, "error", err)

	job.attempt++
	go func() {
		select {
		case <-time.After(backoff):
		case <-d.ctx.Done():
			return
		}
		select {
		case d.jobQueue <- job:
		default:
			d.logger.Error("notification queue full on retry, dropping email",
				"to", job.email.To, "subject", job.email.Subject)
		}
	}()
}

// Shutdown stops accepting work and waits for in-flight deliveries.
func (d *Dispatcher) Shutdown() {
	d.logger.Info("shutting down notification dispatcher")
	d.cancel()
	d.wg.Wait()
	d.logger.Info("notification dispatcher shutdown complete")
}
