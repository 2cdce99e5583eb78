// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Renderer backends
const (
	BackendEngo     = "engo"
	BackendTerminal = "terminal"
)

// Config contains everything needed to build and display one bouncing disc
type Config struct {
	Radius  int           `json:"radius" yaml:"radius"`
	Width   int           `json:"width" yaml:"width"`
	Height  int           `json:"height" yaml:"height"`
	Gravity bool          `json:"gravity" yaml:"gravity"`
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Audio   AudioConfig   `json:"audio" yaml:"audio"`
}

// PhysicsConfig contains the tunables of the disc's motion
type PhysicsConfig struct {
	TimeScale          float64 `json:"timeScale" yaml:"timeScale"`
	Damping            float64 `json:"damping" yaml:"damping"`
	CeilingRestitution float64 `json:"ceilingRestitution" yaml:"ceilingRestitution"`
	GravityAccel       float64 `json:"gravityAccel" yaml:"gravityAccel"`
	ViewportGain       float64 `json:"viewportGain" yaml:"viewportGain"`
	BaselineNudge      float64 `json:"baselineNudge" yaml:"baselineNudge"`
}

// RenderConfig contains display settings
type RenderConfig struct {
	Backend    string `json:"backend" yaml:"backend"`
	Title      string `json:"title" yaml:"title"`
	Color      string `json:"color" yaml:"color"`
	Background string `json:"background" yaml:"background"`
	VSync      bool   `json:"vsync" yaml:"vsync"`
}

// AudioConfig contains bounce sound settings
type AudioConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Volume  float64 `json:"volume" yaml:"volume"`
}

// DefaultConfig returns the 40px disc in a 300x300 window with gravity on
func DefaultConfig() *Config {
	return &Config{
		Radius:  40,
		Width:   300,
		Height:  300,
		Gravity: true,
		Physics: PhysicsConfig{
			TimeScale:          physics.DefaultTimeScale,
			Damping:            physics.DefaultDamping,
			CeilingRestitution: physics.CeilingRestitution,
			GravityAccel:       physics.DefaultGravityAccel,
			ViewportGain:       physics.DefaultViewportGain,
			BaselineNudge:      physics.DefaultBaselineNudge,
		},
		Render: RenderConfig{
			Backend:    BackendEngo,
			Title:      "Windowed Bouncy Ball",
			Color:      "white",
			Background: "black",
			VSync:      true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// Clone returns an independent copy
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// BodyParams maps the physics section onto body tunables
func (c *Config) BodyParams() physics.Params {
	params := physics.DefaultParams()
	params.TimeScale = c.Physics.TimeScale
	params.Restitution = physics.Restitution{
		Walls:   c.Physics.Damping,
		Floor:   c.Physics.Damping,
		Ceiling: c.Physics.CeilingRestitution,
	}
	params.GravityAccel = c.Physics.GravityAccel
	params.ViewportGain = c.Physics.ViewportGain
	params.BaselineNudge = c.Physics.BaselineNudge
	return params
}

// isYAML reports whether path should be parsed as YAML
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a JSON or YAML file
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrDefault loads path when it exists and returns defaults otherwise.
// The boolean reports whether the file was found.
func LoadOrDefault(path string) (*Config, bool, error) {
	if path == "" {
		return DefaultConfig(), false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), false, nil
	}
	config, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return config, true, nil
}
