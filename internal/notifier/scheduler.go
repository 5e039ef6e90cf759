package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// CheckInNotifier produces check-in messages for upcoming stays.
type CheckInNotifier interface {
	NotifyCheckIn(ctx context.Context) ([]string, error)
}

// Config holds configuration for the check-in notification scheduler.
type Config struct {
	// CheckInterval is how often to look for upcoming check-ins.
	// Default: 15 minutes.
	CheckInterval time.Duration

	// MessagesPerSecond paces message emission. Default: 20.
	MessagesPerSecond float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CheckInterval:     15 * time.Minute,
		MessagesPerSecond: 20,
	}
}

// Scheduler periodically drives check-in notification generation. It only
// emits the messages; delivering them to guests is an external
// collaborator's concern.
type Scheduler struct {
	config   *Config
	notifier CheckInNotifier
	limiter  *rate.Limiter
	logger   *zerolog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewScheduler creates a scheduler around the notifier.
func NewScheduler(config *Config, notifier CheckInNotifier, logger *zerolog.Logger) *Scheduler {
	if config == nil {
		config = DefaultConfig()
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 15 * time.Minute
	}
	if config.MessagesPerSecond == 0 {
		config.MessagesPerSecond = 20
	}

	return &Scheduler{
		config:   config,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(config.MessagesPerSecond), 1),
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the notification check loop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()

	s.logger.Info().
		Dur("check_interval", s.config.CheckInterval).
		Msg("Check-in notification scheduler started")
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()

	s.logger.Info().Msg("Check-in notification scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	// Run immediately on start
	s.checkAndNotify()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.checkAndNotify()
		}
	}
}

func (s *Scheduler) checkAndNotify() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	messages, err := s.notifier.NotifyCheckIn(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Check-in notification run failed")
		return
	}

	for _, message := range messages {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		s.logger.Info().Str("message", message).Msg("Check-in notification")
	}
}

// CheckNow triggers an immediate check (useful for testing).
func (s *Scheduler) CheckNow() {
	s.checkAndNotify()
}
