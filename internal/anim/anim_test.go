package anim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/event"
)

type recorder struct {
	events []event.EventType
}

func (r *recorder) Dispatch(ev event.Event) {
	r.events = append(r.events, ev.Type)
}

func kf(ts int, types ...event.EventType) anim.KeyFrame {
	k := anim.KeyFrame{Timestamp: ts}
	for _, t := range types {
		k.Events = append(k.Events, event.Event{Type: t})
	}
	return k
}

type AnimationTestSuite struct {
	suite.Suite
	bus *recorder
}

func (s *AnimationTestSuite) SetupTest() {
	s.bus = &recorder{}
}

func (s *AnimationTestSuite) TestValidation() {
	tw := func(d int) anim.Tween { return anim.Tween{Duration: d} }

	s.Run("keyframe count mismatch", func() {
		_, err := anim.New([]anim.KeyFrame{kf(0), kf(10)}, []anim.Tween{tw(5), tw(5)}, false, s.bus)
		s.ErrorIs(err, anim.ErrKeyframeCount)
		s.ErrorIs(err, anim.ErrMalformed)
	})
	s.Run("no keyframes", func() {
		_, err := anim.New(nil, nil, false, s.bus)
		s.ErrorIs(err, anim.ErrKeyframeCount)
	})
	s.Run("first keyframe not at zero", func() {
		_, err := anim.New([]anim.KeyFrame{kf(1), kf(11)}, []anim.Tween{tw(10)}, false, s.bus)
		s.ErrorIs(err, anim.ErrFirstKeyframe)
	})
	s.Run("timestamps do not match durations", func() {
		_, err := anim.New([]anim.KeyFrame{kf(0), kf(10), kf(15)}, []anim.Tween{tw(10), tw(10)}, false, s.bus)
		s.ErrorIs(err, anim.ErrKeyframeTiming)
		s.ErrorIs(err, anim.ErrMalformed)
	})
	s.Run("negative duration", func() {
		_, err := anim.New([]anim.KeyFrame{kf(0), kf(-1)}, []anim.Tween{tw(-1)}, false, s.bus)
		s.ErrorIs(err, anim.ErrTweenDuration)
	})
	s.Run("looping with zero duration", func() {
		_, err := anim.New([]anim.KeyFrame{kf(0), kf(0)}, []anim.Tween{tw(0)}, true, s.bus)
		s.ErrorIs(err, anim.ErrLoopDuration)
	})
	s.Run("well formed", func() {
		a, err := anim.New([]anim.KeyFrame{kf(0), kf(10), kf(30)}, []anim.Tween{tw(10), tw(20)}, false, s.bus)
		s.Require().NoError(err)
		s.Equal(30, a.Duration())
		s.Equal(anim.NotStarted, a.State())
	})
}

func (s *AnimationTestSuite) TestKeyframesFireInOrder() {
	var progress []float64
	track := anim.TrackFunc(func(v float64) { progress = append(progress, v) })

	a, err := anim.New(
		[]anim.KeyFrame{kf(0, event.BeginBlocking), kf(100, event.MoveStep), kf(200, event.EndBlocking)},
		[]anim.Tween{{Duration: 100, Track: track}, {Duration: 100, Track: track}},
		false, s.bus)
	s.Require().NoError(err)

	a.Start()
	s.Equal(anim.Running, a.State())
	s.Equal([]event.EventType{event.BeginBlocking}, s.bus.events)

	s.Equal(150, a.Update(50))
	s.InDelta(0.5, progress[len(progress)-1], 1e-9)

	// одним большим шагом проходим оба кадра
	s.Equal(0, a.Update(500))
	s.Equal(anim.Finished, a.State())
	s.Equal([]event.EventType{event.BeginBlocking, event.MoveStep, event.EndBlocking}, s.bus.events)
	s.InDelta(1.0, progress[len(progress)-1], 1e-9)

	a.Update(100)
	s.Len(s.bus.events, 3, "finished animation must not fire again")
}

func (s *AnimationTestSuite) TestTweenCompletedBeforeKeyframe() {
	var last float64
	a, err := anim.New(
		[]anim.KeyFrame{kf(0), kf(100, event.SnapToCell)},
		[]anim.Tween{{Duration: 100, Ease: anim.CosineInOut, Track: anim.TrackFunc(func(v float64) { last = v })}},
		false, s.bus)
	s.Require().NoError(err)
	a.Start()
	a.Update(130)
	s.InDelta(1.0, last, 1e-9)
}

func (s *AnimationTestSuite) TestLoopingNeverFinishes() {
	a, err := anim.New(
		[]anim.KeyFrame{kf(0, event.StartIdle), kf(100)},
		[]anim.Tween{{Duration: 100, Ease: anim.Sine}},
		true, s.bus)
	s.Require().NoError(err)
	a.Start()
	for i := 0; i < 10; i++ {
		a.Update(75)
	}
	s.Equal(anim.Running, a.State())
	s.Equal(50, a.Elapsed())
	// старт + 7 перезапусков за 750 мс
	s.Len(s.bus.events, 8)
}

func (s *AnimationTestSuite) TestCancelReleasesBlocking() {
	a, err := anim.New(
		[]anim.KeyFrame{kf(0, event.BeginBlocking), kf(50), kf(100, event.EndBlocking, event.AnimationEnded)},
		[]anim.Tween{{Duration: 50}, {Duration: 50}},
		false, s.bus)
	s.Require().NoError(err)
	a.Start()
	a.Update(60)
	a.Cancel()
	s.Equal(anim.Finished, a.State())
	s.Equal([]event.EventType{event.BeginBlocking, event.EndBlocking}, s.bus.events)
}

func (s *AnimationTestSuite) TestZeroDurationAnimation() {
	a, err := anim.New([]anim.KeyFrame{kf(0, event.Destroy)}, nil, false, s.bus)
	s.Require().NoError(err)
	a.Start()
	s.Equal(anim.Finished, a.State())
	s.Equal([]event.EventType{event.Destroy}, s.bus.events)
}

func TestAnimationTestSuite(t *testing.T) {
	suite.Run(t, new(AnimationTestSuite))
}

func TestEasings(t *testing.T) {
	for name, ease := range map[string]anim.Easing{
		"linear": anim.Linear, "cosine": anim.CosineInOut,
	} {
		assert.InDelta(t, 0.0, ease(0), 1e-9, name)
		assert.InDelta(t, 1.0, ease(1), 1e-9, name)
	}
	assert.InDelta(t, 0.0, anim.Sine(1), 1e-9)
	require.InDelta(t, 0.0, anim.Damped(4)(1), 1e-9)
}
