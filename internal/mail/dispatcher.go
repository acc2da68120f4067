package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

const queueKey = "email:queue"

// Queue is the durable FIFO list the dispatcher drains. Implemented by
// cache.Store; tests plug in miniredis through the same type.
type Queue interface {
	PushQueue(ctx context.Context, key string, payload []byte) error
	PopQueue(ctx context.Context, key string) ([]byte, error)
}

// Sender delivers one message to the provider.
type Sender interface {
	Send(ctx context.Context, msg *Message) ([]byte, error)
}

// Dispatcher accepts messages without blocking and drains the queue one
// message per interval, so the process as a whole never exceeds the
// provider's rate limit. Correct only with a single dispatcher instance
// process-wide; a second process draining the same queue would interleave
// sends arbitrarily.
type Dispatcher struct {
	queue       Queue
	sender      Sender
	senderEmail string
	interval    time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewDispatcher(queue Queue, sender Sender, senderEmail string, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		queue:       queue,
		sender:      sender,
		senderEmail: senderEmail,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Enqueue appends the message to the tail of the queue and returns
// immediately. Delivery failures are invisible to the caller; the only
// visibility is the dispatch loop's logging.
func (d *Dispatcher) Enqueue(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}
	logutil.GetLogger(ctx).Info("enqueue email",
		zap.String("subject", msg.Subject),
		zap.Strings("to", msg.To),
	)
	return d.queue.PushQueue(ctx, queueKey, payload)
}

// Start launches the single dispatch worker. The first tick fires
// immediately, later ticks at the configured interval.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go d.run()
	})
}

// Stop halts the dispatch loop and waits for an in-flight tick to finish.
// A message popped but not yet sent at shutdown is lost; acceptable for
// notification mail.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.dispatchOne(context.Background())
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.dispatchOne(context.Background())
		}
	}
}

// dispatchOne pops at most one message and attempts delivery. Every failure
// path logs and drops the message; the loop itself never dies and a bad
// message never blocks the ones behind it.
func (d *Dispatcher) dispatchOne(ctx context.Context) {
	payload, err := d.queue.PopQueue(ctx, queueKey)
	if err != nil {
		if !appErr.IsNotFound(err) {
			logutil.GetLogger(ctx).Error("pop email queue failed", zap.Error(err))
		}
		return
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		logutil.GetLogger(ctx).Error("decode queued email failed", zap.Error(err))
		return
	}
	msg.From = d.senderEmail

	logutil.GetLogger(ctx).Info("dispatching email",
		zap.String("subject", msg.Subject),
		zap.Strings("to", msg.To),
	)
	resp, err := d.sender.Send(ctx, &msg)
	if err != nil {
		logutil.GetLogger(ctx).Error("email send failed",
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return
	}
	logutil.GetLogger(ctx).Info("email sent",
		zap.String("subject", msg.Subject),
		zap.ByteString("response", resp),
	)
}
