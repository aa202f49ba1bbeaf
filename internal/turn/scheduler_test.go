package turn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
)

type SchedulerTestSuite struct {
	suite.Suite
	ctx     context.Context
	sched   *Scheduler
	log     []string
	enemies []types.EntityID
	ready   bool
	onEnemy func(id types.EntityID)
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.log = nil
	s.enemies = []types.EntityID{7, 9}
	s.ready = true
	s.onEnemy = nil
	s.sched = New(
		func(context.Context) bool {
			if s.ready {
				s.log = append(s.log, "player")
			}
			return s.ready
		},
		func(_ context.Context, id types.EntityID) {
			s.log = append(s.log, map[types.EntityID]string{7: "e7", 9: "e9"}[id])
			if s.onEnemy != nil {
				s.onEnemy(id)
			}
		},
		func() []types.EntityID { return s.enemies },
		nil,
	)
}

func (s *SchedulerTestSuite) advance(n int) {
	for i := 0; i < n; i++ {
		s.Require().NoError(s.sched.Advance(s.ctx))
	}
}

func (s *SchedulerTestSuite) TestPhasesAlternate() {
	s.Equal(PhasePlayer, s.sched.Phase())
	s.advance(1)
	s.Equal(PhaseEnemies, s.sched.Phase())
	s.Equal(2, s.sched.Remaining())
	s.advance(3) // два врага и возврат хода
	s.Equal(PhasePlayer, s.sched.Phase())
	s.Equal(1, s.sched.Round())
	s.advance(1)
	s.Equal([]string{"player", "e7", "e9", "player"}, s.log)
}

func (s *SchedulerTestSuite) TestBlockedFramesDoNothing() {
	s.sched.BeginBlocking()
	s.advance(5)
	s.Empty(s.log)
	s.True(s.sched.Blocked())

	s.sched.EndBlocking()
	s.advance(1)
	s.Equal([]string{"player"}, s.log)
}

func (s *SchedulerTestSuite) TestOneEnemyPerFrame() {
	// первый враг запускает блокирующую анимацию
	s.onEnemy = func(id types.EntityID) {
		if id == 7 {
			s.sched.BeginBlocking()
		}
	}
	s.advance(1)
	s.advance(1)
	s.Equal([]string{"player", "e7"}, s.log)
	s.advance(2)
	s.Equal([]string{"player", "e7"}, s.log)
	s.sched.EndBlocking()
	s.advance(1)
	s.Equal([]string{"player", "e7", "e9"}, s.log)
}

func (s *SchedulerTestSuite) TestPlayerNotReadyKeepsPhase() {
	s.ready = false
	s.advance(3)
	s.Equal(PhasePlayer, s.sched.Phase())
}

func (s *SchedulerTestSuite) TestManualMode() {
	s.sched.SetManual(true)
	s.advance(3)
	s.Empty(s.log)

	s.sched.Trigger()
	s.advance(1)
	s.Equal([]string{"player"}, s.log)

	s.advance(3) // враги ходят без триггера
	s.advance(2)
	s.Equal([]string{"player", "e7", "e9"}, s.log)
}

func (s *SchedulerTestSuite) TestNoEnemies() {
	s.enemies = nil
	s.advance(3)
	s.Equal([]string{"player", "player"}, s.log)
}

func (s *SchedulerTestSuite) TestUnderflowPanics() {
	s.Panics(func() { s.sched.EndBlocking() })
}

func (s *SchedulerTestSuite) TestCounterFollowsBus() {
	d := event.NewDispatcher()
	s.sched.Subscribe(d)
	d.Dispatch(event.Event{Type: event.BeginBlocking})
	d.Dispatch(event.Event{Type: event.BeginBlocking})
	s.Equal(2, s.sched.Pending())
	d.Dispatch(event.Event{Type: event.EndBlocking})
	d.Dispatch(event.Event{Type: event.EndBlocking})
	s.Equal(0, s.sched.Pending())
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}
