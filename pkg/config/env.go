package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognised by ApplyEnv
const (
	EnvRadius    = "BOUNCER_RADIUS"
	EnvWidth     = "BOUNCER_WIDTH"
	EnvHeight    = "BOUNCER_HEIGHT"
	EnvGravity   = "BOUNCER_GRAVITY"
	EnvTimeScale = "BOUNCER_TIME_SCALE"
	EnvDamping   = "BOUNCER_DAMPING"
	EnvRenderer  = "BOUNCER_RENDERER"
	EnvAudio     = "BOUNCER_AUDIO"
)

// ApplyEnv overrides fields of config from BOUNCER_* environment variables.
// Unparseable values are skipped and reported together in the returned error.
func ApplyEnv(config *Config) error {
	var errs []error

	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	setInt(EnvRadius, &config.Radius)
	setInt(EnvWidth, &config.Width)
	setInt(EnvHeight, &config.Height)
	setBool(EnvGravity, &config.Gravity)
	setFloat(EnvTimeScale, &config.Physics.TimeScale)
	setFloat(EnvDamping, &config.Physics.Damping)
	setBool(EnvAudio, &config.Audio.Enabled)
	if v, ok := lookup(EnvRenderer); ok {
		config.Render.Backend = strings.ToLower(v)
	}

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
