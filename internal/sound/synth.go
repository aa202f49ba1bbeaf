package sound

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Synth синтезирует звуки на лету и сводит их в один микшер.
type Synth struct {
	mixer  *beep.Mixer
	volume float64
}

// NewSynth инициализирует динамик. volume — в единицах effects.Volume (основание 2).
func NewSynth(volume float64) (*Synth, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("sound: speaker init: %w", err)
	}
	s := &Synth{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

// Play добавляет звук в микшер.
func (s *Synth) Play(cue Cue) {
	v, err := Voice(cue, sampleRate)
	if err != nil {
		slog.Warn("unknown sound cue", "cue", cue)
		return
	}
	speaker.Lock()
	s.mixer.Add(&effects.Volume{Streamer: v, Base: 2, Volume: s.volume})
	speaker.Unlock()
}

// Close глушит всё, что ещё играет.
func (s *Synth) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Voice строит конечный поток для звука.
func Voice(cue Cue, rate beep.SampleRate) (beep.Streamer, error) {
	switch cue {
	case CueError:
		return tone(rate, 110, 150*time.Millisecond, square)
	case CueBump:
		return tone(rate, 220, 80*time.Millisecond, square)
	case CueThud:
		low, err := tone(rate, 55, 220*time.Millisecond, sine)
		if err != nil {
			return nil, err
		}
		return beep.Mix(low, shaped(noise(rate, 60*time.Millisecond), rate, 60*time.Millisecond)), nil
	case CueSpell:
		a, err := tone(rate, 660, 160*time.Millisecond, sine)
		if err != nil {
			return nil, err
		}
		b, err := tone(rate, 990, 240*time.Millisecond, sine)
		if err != nil {
			return nil, err
		}
		return beep.Seq(a, b), nil
	}
	return nil, fmt.Errorf("sound: unknown cue %q", cue)
}

type wave int

const (
	sine wave = iota
	square
)

func tone(rate beep.SampleRate, freq float64, d time.Duration, w wave) (beep.Streamer, error) {
	var (
		src beep.Streamer
		err error
	)
	switch w {
	case square:
		src, err = generators.SquareTone(rate, freq)
	default:
		src, err = generators.SineTone(rate, freq)
	}
	if err != nil {
		return nil, fmt.Errorf("sound: %v Hz tone: %w", freq, err)
	}
	return shaped(beep.Take(rate.N(d), src), rate, d), nil
}

func noise(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Take(rate.N(d), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rand.Float64()*2 - 1
			samples[i][0], samples[i][1] = v, v
		}
		return len(samples), true
	}))
}

// envelope — короткая атака и линейное затухание, чтобы не щёлкало.
type envelope struct {
	streamer beep.Streamer
	attack   int
	total    int
	pos      int
}

func shaped(s beep.Streamer, rate beep.SampleRate, d time.Duration) beep.Streamer {
	return &envelope{streamer: s, attack: rate.N(5 * time.Millisecond), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else if e.total > e.attack {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.total-e.attack))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
