package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-bouncer/pkg/config"
	"github.com/opd-ai/go-bouncer/pkg/event"
	"github.com/opd-ai/go-bouncer/pkg/logging"
	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Per-wall tone budget
const (
	tonesPerWindow = 8
	toneWindow     = time.Second
)

// Player turns bounce events into tones on the system speaker.
type Player struct {
	volume  float64
	rate    beep.SampleRate
	limiter *Limiter
	logger  *logging.Logger

	mu          sync.Mutex
	initialized bool
	output      func(beep.Streamer)
	sub         *event.Subscription
	played      uint64
}

// NewPlayer creates a player. Nothing is heard until Initialize succeeds.
func NewPlayer(cfg config.AudioConfig, clock physics.Clock, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Player{
		volume:  cfg.Volume,
		rate:    DefaultSampleRate,
		limiter: NewLimiter(tonesPerWindow, toneWindow, clock),
		logger:  logger,
		output:  func(s beep.Streamer) { speaker.Play(s) },
	}
}

// Initialize opens the speaker. On failure the player stays silent and the
// error is returned for the caller to log; the simulation runs either way.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return logging.WrapError(err, "speaker init")
	}
	p.initialized = true
	return nil
}

// Attach subscribes the player to bounce events on bus.
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sub != nil {
		p.sub.Cancel()
	}
	p.sub = bus.Subscribe(event.BodyBounced, p.HandleBounce)
}

// HandleBounce plays the tone for a BounceEvent. Other events are ignored.
func (p *Player) HandleBounce(e event.Event) {
	bounce, ok := e.(*event.BounceEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	ready := p.initialized
	p.mu.Unlock()
	if !ready || Loudness(bounce.Speed) == 0 {
		return
	}
	if !p.limiter.Allow(bounce.Wall.String()) {
		return
	}

	tone, err := BounceTone(bounce.Wall, bounce.Speed, p.volume, p.rate)
	if err != nil {
		p.logger.Error(context.Background(), "bounce tone", err, "wall", bounce.Wall.String())
		return
	}
	if tone == nil {
		return
	}

	p.mu.Lock()
	p.played++
	output := p.output
	p.mu.Unlock()
	output(tone)
}

// Played returns how many tones have been sent to the speaker.
func (p *Player) Played() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close unsubscribes and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sub != nil {
		p.sub.Cancel()
		p.sub = nil
	}
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}
