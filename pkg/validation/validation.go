// Package validation checks bouncer settings against the legal ranges of the
// command line.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-bouncer/pkg/config"
)

// Legal ranges
const (
	MinRadius    = 10
	MaxRadius    = 100
	MinDimension = 200
	MaxDimension = 1200
)

// Sentinel errors, wrapped with the offending value
var (
	ErrInvalidRadius    = errors.New("invalid radius")
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidGravity   = errors.New("invalid gravity flag")
	ErrDiscTooLarge     = errors.New("disc does not fit the viewport")
	ErrInvalidPhysics   = errors.New("invalid physics setting")
	ErrInvalidBackend   = errors.New("invalid renderer backend")
	ErrInvalidVolume    = errors.New("invalid volume")
)

// ValidateRadius checks radius is within [MinRadius, MaxRadius]
func ValidateRadius(radius int) error {
	if radius < MinRadius || radius > MaxRadius {
		return fmt.Errorf("%w: %d (choose a radius between %d and %d)", ErrInvalidRadius, radius, MinRadius, MaxRadius)
	}
	return nil
}

// ValidateDimension checks a window side is even and within [MinDimension, MaxDimension]
func ValidateDimension(name string, value int) error {
	if value < MinDimension || value > MaxDimension || value%2 != 0 {
		return fmt.Errorf("%w: %s %d (choose an even-valued %s between %d and %d)",
			ErrInvalidDimension, name, value, name, MinDimension, MaxDimension)
	}
	return nil
}

// ValidateGravityFlag checks the numeric command-line gravity flag is 0 or 1
func ValidateGravityFlag(flag int) error {
	if flag != 0 && flag != 1 {
		return fmt.Errorf("%w: %d (use 0 or 1 for gravity off or on)", ErrInvalidGravity, flag)
	}
	return nil
}

// ValidateFit checks the disc's diameter is smaller than the shorter side
func ValidateFit(radius, width, height int) error {
	if 2*radius >= min(width, height) {
		return fmt.Errorf("%w: diameter %d, viewport %dx%d", ErrDiscTooLarge, 2*radius, width, height)
	}
	return nil
}

func validatePhysics(p config.PhysicsConfig) []error {
	var errs []error
	field := func(name string, v float64, ok bool) {
		if math.IsNaN(v) || math.IsInf(v, 0) || !ok {
			errs = append(errs, fmt.Errorf("%w: %s %v", ErrInvalidPhysics, name, v))
		}
	}
	field("timeScale", p.TimeScale, p.TimeScale > 0)
	field("damping", p.Damping, p.Damping >= 0 && p.Damping <= 1)
	field("ceilingRestitution", p.CeilingRestitution, p.CeilingRestitution >= 0 && p.CeilingRestitution <= 1)
	field("gravityAccel", p.GravityAccel, p.GravityAccel >= 0)
	field("viewportGain", p.ViewportGain, p.ViewportGain >= 0)
	field("baselineNudge", p.BaselineNudge, p.BaselineNudge >= 0)
	return errs
}

func validateBackend(backend string) error {
	switch backend {
	case config.BackendEngo, config.BackendTerminal:
		return nil
	}
	return fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidBackend, backend, config.BackendEngo, config.BackendTerminal)
}

func validateVolume(volume float64) error {
	if math.IsNaN(volume) || volume < 0 || volume > 1 {
		return fmt.Errorf("%w: %v (must be within 0 and 1)", ErrInvalidVolume, volume)
	}
	return nil
}

// ValidateConfig reports every problem in cfg, joined into one error
func ValidateConfig(cfg *config.Config) error {
	_, errs := check(cfg)
	return errors.Join(errs...)
}

// Sanitize returns a copy of cfg in which every illegal value has been
// replaced by its default, along with one error per replacement. The input
// is not modified.
func Sanitize(cfg *config.Config) (*config.Config, []error) {
	return check(cfg)
}

func check(cfg *config.Config) (*config.Config, []error) {
	defaults := config.DefaultConfig()
	out := cfg.Clone()
	var errs []error

	if err := ValidateRadius(out.Radius); err != nil {
		errs = append(errs, err)
		out.Radius = defaults.Radius
	}
	if err := ValidateDimension("width", out.Width); err != nil {
		errs = append(errs, err)
		out.Width = defaults.Width
	}
	if err := ValidateDimension("height", out.Height); err != nil {
		errs = append(errs, err)
		out.Height = defaults.Height
	}
	if err := ValidateFit(out.Radius, out.Width, out.Height); err != nil {
		errs = append(errs, err)
		out.Radius = defaults.Radius
	}

	if physErrs := validatePhysics(out.Physics); len(physErrs) > 0 {
		errs = append(errs, physErrs...)
		out.Physics = defaults.Physics
	}
	if err := validateBackend(out.Render.Backend); err != nil {
		errs = append(errs, err)
		out.Render.Backend = defaults.Render.Backend
	}
	if err := validateVolume(out.Audio.Volume); err != nil {
		errs = append(errs, err)
		out.Audio.Volume = defaults.Audio.Volume
	}

	return out, errs
}
