package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher decouples notification delivery from the submission path. Tasks
// go onto a bounded queue; a single worker drains it. Enqueue never blocks;
// when the queue is full the task is dropped and logged, because losing a
// welcome email is acceptable and stalling a submission is not.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	mu     sync.Mutex
	tasks  chan string
	closed bool

	wg sync.WaitGroup
}

// NewDispatcher starts the worker goroutine. queueSize bounds the number of
// pending notifications; values below 1 get a single slot.
func NewDispatcher(sender Sender, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		sender: sender,
		logger: logger,
		tasks:  make(chan string, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue queues a notification for the given address. Returns false when the
// queue is full or the dispatcher is closed; the caller proceeds either way.
// The closed check and the send happen under the lock so a submission racing
// shutdown degrades to a dropped notification, never a panic.
func (d *Dispatcher) Enqueue(email string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping task", "email", email)
		return false
	}

	select {
	case d.tasks <- email:
		return true
	default:
		d.logger.Warn("notification queue full, dropping task", "email", email)
		return false
	}
}

// Close stops accepting tasks and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.tasks)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for email := range d.tasks {
		d.deliver(email)
	}
}

func (d *Dispatcher) deliver(email string) {
	if !d.sender.Configured() {
		d.logger.Debug("smtp not configured, skipping notification", "email", email)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
	defer cancel()

	receipt, err := d.sender.Send(ctx, email)
	if err != nil {
		d.logger.Error("failed to send notification", "email", email, "error", err)
		return
	}
	d.logger.Info("notification sent", "email", email, "message_id", receipt.MessageID)
}
