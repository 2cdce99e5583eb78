// cmd/bouncer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-bouncer/pkg/audio"
	"github.com/opd-ai/go-bouncer/pkg/config"
	"github.com/opd-ai/go-bouncer/pkg/engine"
	"github.com/opd-ai/go-bouncer/pkg/event"
	"github.com/opd-ai/go-bouncer/pkg/logging"
	"github.com/opd-ai/go-bouncer/pkg/physics"
	"github.com/opd-ai/go-bouncer/pkg/render"
	engorender "github.com/opd-ai/go-bouncer/pkg/render/engo"
	"github.com/opd-ai/go-bouncer/pkg/validation"
)

const usage = `Usage: bouncer [flags] [radius [width height [gravity]]]

  radius   disc radius, 10 to 100
  width    window width, even, 200 to 1200
  height   window height, even, 200 to 1200
  gravity  0 (off) or 1 (on)

Flags:
`

// options are the parsed command line
type options struct {
	configPath string
	renderer   string
	audio      bool
	watch      bool

	radius  int
	width   int
	height  int
	gravity int

	set        map[string]bool
	positional []string
}

func parseArgs(args []string, output io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("bouncer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML configuration file")
	fs.StringVar(&opts.renderer, "renderer", "", "Renderer: 'engo' or 'terminal' (overrides config)")
	fs.BoolVar(&opts.audio, "audio", false, "Play a tone on every bounce")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	fs.IntVar(&opts.radius, "radius", 0, "Disc radius (overrides config)")
	fs.IntVar(&opts.width, "width", 0, "Window width (overrides config)")
	fs.IntVar(&opts.height, "height", 0, "Window height (overrides config)")
	fs.IntVar(&opts.gravity, "gravity", 0, "Gravity, 0 or 1 (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.positional = fs.Args()
	if len(opts.positional) > 4 {
		return nil, fmt.Errorf("too many arguments: %d (at most 4)", len(opts.positional))
	}
	return opts, nil
}

// atoi mirrors the classic C behaviour: anything unparseable is 0, which no
// range accepts.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// resolveConfig layers defaults, the config file, BOUNCER_* variables,
// flags and positional arguments, then replaces illegal values with
// defaults. Each rejection is printed to out.
func resolveConfig(opts *options, out io.Writer) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		fmt.Fprintln(out, err)
	}

	gravity, gravitySet := 0, false
	if opts.set["radius"] {
		cfg.Radius = opts.radius
	}
	if opts.set["width"] {
		cfg.Width = opts.width
	}
	if opts.set["height"] {
		cfg.Height = opts.height
	}
	if opts.set["gravity"] {
		gravity, gravitySet = opts.gravity, true
	}
	if opts.renderer != "" {
		cfg.Render.Backend = opts.renderer
	}
	if opts.audio {
		cfg.Audio.Enabled = true
	}

	args := opts.positional
	if len(args) >= 1 {
		cfg.Radius = atoi(args[0])
	}
	if len(args) >= 3 {
		cfg.Width = atoi(args[1])
		cfg.Height = atoi(args[2])
	}
	if len(args) >= 4 {
		gravity, gravitySet = atoi(args[3]), true
	}
	if gravitySet {
		if err := validation.ValidateGravityFlag(gravity); err != nil {
			fmt.Fprintln(out, err)
		} else {
			cfg.Gravity = gravity == 1
		}
	}

	cfg, errs := validation.Sanitize(cfg)
	for _, err := range errs {
		fmt.Fprintln(out, err)
	}
	return cfg, nil
}

func printSettings(out io.Writer, cfg *config.Config) {
	gravity := 0
	if cfg.Gravity {
		gravity = 1
	}
	fmt.Fprintf(out, "Radius: %d\n", cfg.Radius)
	fmt.Fprintf(out, "Window dimensions: %d x %d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(out, "Gravity: %d\n", gravity)
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewLogger()

	cfg, err := resolveConfig(opts, os.Stdout)
	if err != nil {
		logger.Error(context.Background(), "Failed to load configuration", err, "path", opts.configPath)
		os.Exit(1)
	}
	printSettings(os.Stdout, cfg)

	bus := event.NewEventBus()
	sim := engine.NewSimulation(cfg, physics.NewSystemClock(), bus, logger)
	ctx, stop := signal.NotifyContext(sim.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio, nil, logger)
		if err := player.Initialize(); err != nil {
			// Non-fatal, the disc bounces silently
			logger.Warn(ctx, "Audio initialization failed", "error", err.Error())
		}
		player.Attach(bus)
		defer player.Close()
	}

	if opts.watch && opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath)
		if err != nil {
			logger.Error(ctx, "Failed to watch configuration", err, "path", opts.configPath)
		} else {
			defer watcher.Close()
			go sim.FollowConfig(ctx, watcher)
		}
	}

	switch cfg.Render.Backend {
	case config.BackendTerminal:
		if err := runTerminal(ctx, sim); err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			os.Exit(1)
		}
	default:
		engorender.Run(sim)
	}
}

func runTerminal(ctx context.Context, sim *engine.Simulation) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	err = render.NewTerminalApp(screen, sim).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
