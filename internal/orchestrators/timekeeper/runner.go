package timekeeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
)

const (
	// DefaultFrameInterval is the real time between frames
	DefaultFrameInterval = 50 * time.Millisecond

	shutdownSaveTimeout = 5 * time.Second
)

// RunnerConfig holds the dependencies for the frame runner
type RunnerConfig struct {
	Service   Service
	WallClock clock.Clock

	// FrameInterval defaults to DefaultFrameInterval
	FrameInterval time.Duration

	// SaveInterval enables periodic saves when positive
	SaveInterval time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RunnerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.WallClock == nil {
		vb.RequiredField("WallClock")
	}
	if c.FrameInterval < 0 {
		vb.Fieldf("FrameInterval", "must not be negative, got %s", c.FrameInterval)
	}
	if c.SaveInterval < 0 {
		vb.Fieldf("SaveInterval", "must not be negative, got %s", c.SaveInterval)
	}
	return vb.Build()
}

// Runner pumps frames into the timekeeper on a fixed interval
type Runner struct {
	svc           Service
	wall          clock.Clock
	frameInterval time.Duration
	saveInterval  time.Duration
}

// NewRunner creates a frame runner
func NewRunner(cfg *RunnerConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid runner config")
	}

	interval := cfg.FrameInterval
	if interval == 0 {
		interval = DefaultFrameInterval
	}

	return &Runner{
		svc:           cfg.Service,
		wall:          cfg.WallClock,
		frameInterval: interval,
		saveInterval:  cfg.SaveInterval,
	}, nil
}

// Run drives frames until ctx is cancelled, then saves state once with a
// fresh context. Frame errors are logged and do not stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.svc.Frame(ctx, r.wall.Now()); err != nil {
		slog.WarnContext(ctx, "first frame failed", "error", err)
	}

	frames := time.NewTicker(r.frameInterval)
	defer frames.Stop()

	var saves <-chan time.Time
	if r.saveInterval > 0 {
		saveTicker := time.NewTicker(r.saveInterval)
		defer saveTicker.Stop()
		saves = saveTicker.C
	}

	slog.InfoContext(ctx, "frame runner started",
		"frame_interval", r.frameInterval,
		"save_interval", r.saveInterval)

	for {
		select {
		case <-ctx.Done():
			return r.shutdown()
		case <-frames.C:
			if err := r.svc.Frame(ctx, r.wall.Now()); err != nil {
				slog.WarnContext(ctx, "frame failed", "error", err)
			}
		case <-saves:
			if _, err := r.svc.SaveState(ctx, &SaveStateInput{}); err != nil {
				slog.ErrorContext(ctx, "periodic save failed", "error", err)
			}
		}
	}
}

func (r *Runner) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
	defer cancel()

	if _, err := r.svc.SaveState(ctx, &SaveStateInput{}); err != nil {
		return errors.Wrap(err, "failed to save state on shutdown")
	}

	slog.Info("frame runner stopped, state saved")
	return nil
}
