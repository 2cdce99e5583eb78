// Package audio plays a short tone each time the disc hits a wall.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Tone shape
const (
	DefaultSampleRate = beep.SampleRate(44100)
	ToneDuration      = 60 * time.Millisecond
	ToneAttack        = 3 * time.Millisecond

	// ReferenceSpeed is the impact speed that plays at full volume.
	ReferenceSpeed = 60.0
	// MinAudibleSpeed silences the chatter of a disc settling on the floor.
	MinAudibleSpeed = 1.0
)

// Frequency returns the pitch for a wall: low floor, high ceiling, sides
// in between.
func Frequency(w physics.Wall) float64 {
	switch w {
	case physics.WallFloor:
		return 196.0
	case physics.WallCeiling:
		return 392.0
	default:
		return 293.66
	}
}

// Loudness maps impact speed onto [0, 1].
func Loudness(speed float64) float64 {
	if speed < MinAudibleSpeed || math.IsNaN(speed) {
		return 0
	}
	return math.Min(speed/ReferenceSpeed, 1)
}

// decay shapes a stream with a linear attack and an exponential tail
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newDecay(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) *decay {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (d *decay) gain() float64 {
	if d.attack > 0 && d.position < d.attack {
		return float64(d.position) / float64(d.attack)
	}
	// -60dB by the end of the tone
	tail := float64(d.position-d.attack) / float64(max(d.total-d.attack, 1))
	return math.Pow(10, -3*tail)
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if remaining := d.total - d.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := d.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// BounceTone builds the tone for a hit on w at the given impact speed. It
// returns nil when the hit is too soft to hear.
func BounceTone(w physics.Wall, speed, volume float64, rate beep.SampleRate) (beep.Streamer, error) {
	loudness := Loudness(speed) * volume
	if loudness <= 0 {
		return nil, nil
	}

	freq := Frequency(w)
	fundamental, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	overtone, err := generators.SineTone(rate, 2*freq)
	if err != nil {
		return nil, err
	}

	n := rate.N(ToneDuration)
	mixed := beep.Mix(
		newVolume(beep.Take(n, fundamental), 0.8),
		newVolume(beep.Take(n, overtone), 0.2),
	)
	return newVolume(newDecay(mixed, ToneDuration, ToneAttack, rate), loudness), nil
}
