// internal/anim/anim.go
package anim

import (
	"errors"
	"fmt"

	"go-hex-summoner/internal/event"
	"go-hex-summoner/pkg/utils"
)

// ErrMalformed оборачивает все ошибки валидации. Кривая анимация может
// оставить счётчик блокировок ненулевым и навсегда остановить ходы.
var ErrMalformed = errors.New("malformed animation")

var (
	ErrKeyframeCount  = fmt.Errorf("%w: keyframe count must equal tween count + 1", ErrMalformed)
	ErrFirstKeyframe  = fmt.Errorf("%w: first keyframe must be at time 0", ErrMalformed)
	ErrTweenDuration  = fmt.Errorf("%w: tween duration must be non-negative", ErrMalformed)
	ErrKeyframeTiming = fmt.Errorf("%w: keyframe timestamp does not match tween durations", ErrMalformed)
	ErrLoopDuration   = fmt.Errorf("%w: looping animation needs a positive duration", ErrMalformed)
)

// State — состояние анимации
type State int

const (
	NotStarted State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// KeyFrame — мгновенное событие. События доставляются через шину в порядке объявления.
type KeyFrame struct {
	Timestamp int
	Events    []event.Event
}

// Tween — непрерывная интерполяция между двумя соседними ключевыми кадрами.
type Tween struct {
	Duration int
	Ease     Easing
	Track    Track
}

func (t Tween) apply(local int) {
	p := 1.0
	if t.Duration > 0 {
		p = utils.Clamp01(float64(local) / float64(t.Duration))
	}
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	if t.Track != nil {
		t.Track.Apply(ease(p))
	}
}

// Animation проигрывает ключевые кадры и твины. Время — целые миллисекунды.
type Animation struct {
	keyframes []KeyFrame
	tweens    []Tween
	loops     bool
	bus       event.Bus

	duration int
	elapsed  int
	next     int // индекс следующего не сработавшего кадра
	state    State
}

// New проверяет структуру и создаёт анимацию в состоянии NotStarted.
func New(keyframes []KeyFrame, tweens []Tween, loops bool, bus event.Bus) (*Animation, error) {
	if len(keyframes) != len(tweens)+1 {
		return nil, fmt.Errorf("%d keyframes, %d tweens: %w", len(keyframes), len(tweens), ErrKeyframeCount)
	}
	if keyframes[0].Timestamp != 0 {
		return nil, fmt.Errorf("got %d: %w", keyframes[0].Timestamp, ErrFirstKeyframe)
	}
	total := 0
	for i, tw := range tweens {
		if tw.Duration < 0 {
			return nil, fmt.Errorf("tween %d has duration %d: %w", i, tw.Duration, ErrTweenDuration)
		}
		total += tw.Duration
		if keyframes[i+1].Timestamp != total {
			return nil, fmt.Errorf("keyframe %d at %d, expected %d: %w", i+1, keyframes[i+1].Timestamp, total, ErrKeyframeTiming)
		}
	}
	if loops && total <= 0 {
		return nil, ErrLoopDuration
	}
	return &Animation{
		keyframes: keyframes,
		tweens:    tweens,
		loops:     loops,
		bus:       bus,
		duration:  total,
	}, nil
}

// State returns the current state.
func (a *Animation) State() State { return a.state }

// Duration returns the total length of one pass.
func (a *Animation) Duration() int { return a.duration }

// Elapsed returns time since start, modulo duration for looping animations.
func (a *Animation) Elapsed() int { return a.elapsed }

// Loops reports whether the animation restarts instead of finishing.
func (a *Animation) Loops() bool { return a.loops }

// Start выполняет кадр 0 и переводит анимацию в Running. Повторный вызов ничего не делает.
func (a *Animation) Start() {
	if a.state != NotStarted {
		return
	}
	a.state = Running
	a.elapsed = 0
	a.fire(0)
	a.Update(0)
}

// Update продвигает время на delta, выполняя все наступившие кадры по порядку.
// Перед каждым кадром предшествующий твин доводится до прогресса 1.
// Возвращает время до конца текущего прохода.
func (a *Animation) Update(delta int) int {
	if a.state != Running {
		return 0
	}
	if delta > 0 {
		a.elapsed += delta
	}
	for {
		for a.next < len(a.keyframes) && a.keyframes[a.next].Timestamp <= a.elapsed {
			a.tweens[a.next-1].apply(a.tweens[a.next-1].Duration)
			a.fire(a.next)
			if a.state != Running {
				return 0 // отменена обработчиком события
			}
		}
		if a.next < len(a.keyframes) {
			break
		}
		if !a.loops {
			a.state = Finished
			a.elapsed = a.duration
			return 0
		}
		a.elapsed -= a.duration
		a.fire(0)
		if a.state != Running {
			return 0
		}
	}
	i := a.next - 1
	a.tweens[i].apply(a.elapsed - a.keyframes[i].Timestamp)
	return a.duration - a.elapsed
}

// Cancel останавливает анимацию. Несработавшие EndBlocking всё равно
// отправляются, чтобы счётчик блокировок вернулся к исходному значению.
func (a *Animation) Cancel() {
	if a.state != Running {
		a.state = Finished
		return
	}
	a.state = Finished
	for _, kf := range a.keyframes[a.next:] {
		for _, ev := range kf.Events {
			if ev.Type == event.EndBlocking {
				a.dispatch(ev)
			}
		}
	}
	a.next = len(a.keyframes)
}

func (a *Animation) fire(i int) {
	a.next = i + 1
	for _, ev := range a.keyframes[i].Events {
		a.dispatch(ev)
	}
}

func (a *Animation) dispatch(ev event.Event) {
	if a.bus != nil {
		a.bus.Dispatch(ev)
	}
}
