package notifier

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubNotifier struct {
	mu       sync.Mutex
	calls    int
	messages []string
	err      error
}

func (s *stubNotifier) NotifyCheckIn(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.messages, s.err
}

func (s *stubNotifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestScheduler_RunsOnStart(t *testing.T) {
	notifier := &stubNotifier{messages: []string{"hello"}}
	logger := zerolog.New(io.Discard)
	scheduler := NewScheduler(&Config{CheckInterval: time.Hour, MessagesPerSecond: 1000}, notifier, &logger)

	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool {
		return notifier.callCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_Ticks(t *testing.T) {
	notifier := &stubNotifier{}
	logger := zerolog.New(io.Discard)
	scheduler := NewScheduler(&Config{CheckInterval: 20 * time.Millisecond, MessagesPerSecond: 1000}, notifier, &logger)

	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool {
		return notifier.callCount() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	notifier := &stubNotifier{}
	logger := zerolog.New(io.Discard)
	scheduler := NewScheduler(&Config{CheckInterval: time.Hour, MessagesPerSecond: 1000}, notifier, &logger)

	scheduler.Start()
	scheduler.Start()
	scheduler.Stop()
	scheduler.Stop()

	assert.Equal(t, 1, notifier.callCount())
}

func TestScheduler_CheckNow(t *testing.T) {
	notifier := &stubNotifier{messages: []string{"a", "b"}}
	logger := zerolog.New(io.Discard)
	scheduler := NewScheduler(nil, notifier, &logger)

	scheduler.CheckNow()
	assert.Equal(t, 1, notifier.callCount())
}

func TestScheduler_SurvivesNotifierError(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("store down")}
	logger := zerolog.New(io.Discard)
	scheduler := NewScheduler(nil, notifier, &logger)

	scheduler.CheckNow()
	scheduler.CheckNow()
	assert.Equal(t, 2, notifier.callCount())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 15*time.Minute, config.CheckInterval)
	assert.Equal(t, 20.0, config.MessagesPerSecond)
}
