package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/cache"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	fail map[string]bool
}

func (s *recordingSender) Send(_ context.Context, msg *Message) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[msg.Subject] {
		return nil, errors.New("provider rejected")
	}
	s.sent = append(s.sent, *msg)
	return []byte(`{"id":"x"}`), nil
}

func (s *recordingSender) snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func newTestQueue(t *testing.T) *cache.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatcherFIFOOrder(t *testing.T) {
	queue := newTestQueue(t)
	sender := &recordingSender{}
	d := NewDispatcher(queue, sender, "noreply@netly.app", 10*time.Millisecond)

	ctx := context.Background()
	for _, subject := range []string{"m1", "m2", "m3"} {
		require.NoError(t, d.Enqueue(ctx, &Message{To: []string{"u@example.com"}, Subject: subject}))
	}
	d.Start()
	defer d.Stop()

	waitFor(t, func() bool { return len(sender.snapshot()) == 3 })
	sent := sender.snapshot()
	require.Equal(t, "m1", sent[0].Subject)
	require.Equal(t, "m2", sent[1].Subject)
	require.Equal(t, "m3", sent[2].Subject)
}

func TestDispatcherStampsSenderAddress(t *testing.T) {
	queue := newTestQueue(t)
	sender := &recordingSender{}
	d := NewDispatcher(queue, sender, "noreply@netly.app", 10*time.Millisecond)

	require.NoError(t, d.Enqueue(context.Background(), &Message{To: []string{"u@example.com"}, Subject: "hello"}))
	d.Start()
	defer d.Stop()

	waitFor(t, func() bool { return len(sender.snapshot()) == 1 })
	require.Equal(t, "noreply@netly.app", sender.snapshot()[0].From)
}

func TestDispatcherDropsFailedSendAndContinues(t *testing.T) {
	queue := newTestQueue(t)
	sender := &recordingSender{fail: map[string]bool{"bad": true}}
	d := NewDispatcher(queue, sender, "noreply@netly.app", 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, d.Enqueue(ctx, &Message{To: []string{"u@example.com"}, Subject: "bad"}))
	require.NoError(t, d.Enqueue(ctx, &Message{To: []string{"u@example.com"}, Subject: "good"}))
	d.Start()
	defer d.Stop()

	waitFor(t, func() bool { return len(sender.snapshot()) == 1 })
	require.Equal(t, "good", sender.snapshot()[0].Subject)

	// The failed message is gone, not requeued.
	n, err := queue.QueueLen(ctx, queueKey)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDispatcherPacesOneSendPerInterval(t *testing.T) {
	queue := newTestQueue(t)
	sender := &recordingSender{}
	interval := 500 * time.Millisecond
	d := NewDispatcher(queue, sender, "noreply@netly.app", interval)

	ctx := context.Background()
	for _, subject := range []string{"m1", "m2", "m3"} {
		require.NoError(t, d.Enqueue(ctx, &Message{To: []string{"u@example.com"}, Subject: subject}))
	}
	start := time.Now()
	d.Start()
	defer d.Stop()

	// The first message goes out on the immediate tick; the rest must wait
	// for their interval even though the queue is non-empty.
	waitFor(t, func() bool { return len(sender.snapshot()) == 1 })
	time.Sleep(interval / 2)
	require.Len(t, sender.snapshot(), 1)

	waitFor(t, func() bool { return len(sender.snapshot()) == 3 })
	require.GreaterOrEqual(t, time.Since(start), 2*interval-50*time.Millisecond)
}

func TestDispatcherEnqueueDoesNotBlockWhenStopped(t *testing.T) {
	queue := newTestQueue(t)
	sender := &recordingSender{}
	d := NewDispatcher(queue, sender, "noreply@netly.app", time.Hour)
	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			require.NoError(t, d.Enqueue(ctx, &Message{To: []string{"u@example.com"}, Subject: "queued"}))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked")
	}
	n, err := queue.QueueLen(ctx, queueKey)
	require.NoError(t, err)
	require.EqualValues(t, 10, n)
}
