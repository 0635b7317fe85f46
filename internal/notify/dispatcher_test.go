package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waitlist/internal/models"
)

type fakeSender struct {
	mu         sync.Mutex
	sent       []string
	configured bool
	err        error
	block      chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, to string) (*Receipt, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, to)
	return &Receipt{MessageID: "<test@local>", Accepted: []string{to}}, nil
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_DeliversQueuedTasks(t *testing.T) {
	sender := &fakeSender{configured: true}
	d := NewDispatcher(sender, 8, testLogger())

	assert.True(t, d.Enqueue("a@example.com"))
	assert.True(t, d.Enqueue("b@example.com"))
	d.Close()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sentTo())
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	sender := &fakeSender{configured: true, block: make(chan struct{})}
	d := NewDispatcher(sender, 1, testLogger())

	// First task occupies the worker, second fills the queue slot.
	require.True(t, d.Enqueue("a@example.com"))
	deadline := time.After(time.Second)
	filled := false
	for !filled {
		select {
		case <-deadline:
			t.Fatal("queue never filled")
		default:
		}
		filled = !d.Enqueue("overflow@example.com")
	}

	close(sender.block)
	d.Close()
	assert.NotContains(t, sender.sentTo(), "overflow@example.com")
}

func TestDispatcher_SkipsWhenUnconfigured(t *testing.T) {
	sender := &fakeSender{configured: false}
	d := NewDispatcher(sender, 8, testLogger())

	assert.True(t, d.Enqueue("a@example.com"))
	d.Close()

	assert.Empty(t, sender.sentTo())
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{configured: true, err: errors.New("connection refused")}
	d := NewDispatcher(sender, 8, testLogger())

	assert.True(t, d.Enqueue("a@example.com"))
	d.Close()

	assert.Empty(t, sender.sentTo())
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&fakeSender{configured: true}, 1, testLogger())
	d.Close()
	d.Close()
}

func TestDispatcher_EnqueueAfterCloseIsDropped(t *testing.T) {
	sender := &fakeSender{configured: true}
	d := NewDispatcher(sender, 8, testLogger())
	d.Close()

	require.NotPanics(t, func() {
		assert.False(t, d.Enqueue("late@example.com"))
	})
	assert.Empty(t, sender.sentTo())
}

func TestMailer_Configured(t *testing.T) {
	unconfigured := NewMailer(models.NotifyConfig{}, "")
	assert.False(t, unconfigured.Configured())

	_, err := unconfigured.Send(context.Background(), "a@example.com")
	assert.Error(t, err)

	configured := NewMailer(models.NotifyConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPUser: "user",
		SMTPPass: "pass",
		From:     "noreply@example.com",
	}, "https://example.com")
	assert.True(t, configured.Configured())
}
