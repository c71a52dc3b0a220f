package ordercleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dependency"
)

// Config holds configuration for the order cleanup worker.
type Config struct {
	WorkerInterval   time.Duration `mapstructure:"worker_interval"`
	PendingThreshold time.Duration `mapstructure:"pending_threshold"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval:   15 * time.Minute,
		PendingThreshold: 48 * time.Hour,
	}
}

// Worker cancels orders stuck in PENDING past the threshold, returning their
// reserved stock to the shelf.
type Worker struct {
	repo dependency.Repository
	c    *Config
	ctx  context.Context
	stop context.CancelFunc
}

// New creates a new order cleanup worker.
func New(c *Config, repo dependency.Repository) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.PendingThreshold == 0 {
		c.PendingThreshold = 48 * time.Hour
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = 15 * time.Minute
	}
	return &Worker{
		repo: repo,
		c:    c,
	}
}

// Start starts the worker.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("order cleanup worker already started")
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("order cleanup worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}
