package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-bouncer/pkg/config"
	"github.com/opd-ai/go-bouncer/pkg/physics"
	"github.com/opd-ai/go-bouncer/pkg/validation"
)

// DefaultFrameInterval is one frame at 60 FPS
const DefaultFrameInterval = time.Second / 60

// Run steps the simulation on a ticker until ctx is cancelled. onFrame, if
// set, receives every frame from the loop goroutine.
func (s *Simulation) Run(ctx context.Context, viewport Viewport, interval time.Duration, onFrame func(physics.Frame)) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if s.Status() == StatusIdle {
		s.Start(viewport)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-ticker.C:
			frame := s.Step(viewport)
			if onFrame != nil {
				onFrame(frame)
			}
		}
	}
}

// FollowConfig reloads the simulation whenever watcher reports a change,
// until ctx is cancelled or the watcher closes. Environment overrides are
// reapplied and illegal values fall back to defaults.
func (s *Simulation) FollowConfig(ctx context.Context, watcher *config.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error(s.ctx, "config watcher error", err)
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			cfg, err := LoadSanitized(path, func(err error) {
				s.logger.Warn(s.ctx, "config value rejected", "error", err.Error())
			})
			if err != nil {
				s.logger.Error(s.ctx, "config reload failed", err, "path", path)
				continue
			}
			s.RequestReload(cfg)
		}
	}
}

// LoadSanitized loads path, applies BOUNCER_* overrides and replaces illegal
// values with defaults, passing each rejection to reject.
func LoadSanitized(path string, reject func(error)) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil && reject != nil {
		reject(err)
	}
	cfg, errs := validation.Sanitize(cfg)
	if reject != nil {
		for _, err := range errs {
			reject(err)
		}
	}
	return cfg, nil
}
