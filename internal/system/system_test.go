package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/motion"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/sound"
	soundmock "go-hex-summoner/internal/sound/mock"
	"go-hex-summoner/internal/turn"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/internal/utils"
	"go-hex-summoner/pkg/hexmap"
)

// Комната по умолчанию: 11x7, чётность 1. Игрок в (4, 3).
var playerCell = hexmap.Hex{Row: 4, Col: 3}

type SystemTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    config.Config
	world  *World
	sched  *turn.Scheduler
	anims  *AnimationSystem
	combat *CombatSystem
	spawn  *SpawnSystem
	ai     *AISystem
	player *PlayerSystem
	sound  *SoundSystem

	killed  []event.KilledData
	spawned int
}

func (s *SystemTestSuite) setup(p sound.Player) {
	s.ctx = context.Background()
	s.cfg = config.Default()
	s.killed = nil
	s.spawned = 0

	ecs := entity.NewECS()
	d := event.NewDispatcher()
	r := room.New(hexmap.NewLayout(s.cfg.Room.Rows, s.cfg.Room.Cols, s.cfg.Room.Parity), ecs)
	s.world = &World{
		ECS:    ecs,
		Room:   r,
		Bus:    d,
		Motion: motion.NewFactory(ecs, r, d),
		RNG:    utils.NewPRNGService(1),
		Config: &s.cfg,
	}
	s.anims = NewAnimationSystem(ecs, d)
	s.world.Anims = s.anims
	NewMovementSystem(s.world)
	s.combat = NewCombatSystem(s.world)
	s.spawn = NewSpawnSystem(s.world)
	s.ai = NewAISystem(s.world)
	s.player = NewPlayerSystem(s.world)
	s.sound = NewSoundSystem(d, p)

	s.sched = turn.New(s.player.Act, s.ai.Act, s.ai.Roster, d)
	s.sched.Subscribe(d)

	d.Subscribe(event.EntityKilled, event.ListenerFunc(func(e event.Event) {
		s.killed = append(s.killed, e.Data.(event.KilledData))
	}))
	d.Subscribe(event.EntitySpawned, event.ListenerFunc(func(event.Event) { s.spawned++ }))
}

func (s *SystemTestSuite) SetupTest() {
	s.setup(sound.Nop{})
}

// drain крутит кадры, пока не закончатся блокирующие анимации.
func (s *SystemTestSuite) drain() {
	for i := 0; i < 100 && s.sched.Blocked(); i++ {
		s.anims.Update(100)
	}
	s.Require().Zero(s.sched.Pending(), "blocking animations never finished")
}

func (s *SystemTestSuite) spawnPlayer() types.EntityID {
	id, err := s.spawn.SpawnPlayer(playerCell)
	s.Require().NoError(err)
	return id
}

func (s *SystemTestSuite) spawnSummoner(h hexmap.Hex) types.EntityID {
	id, err := s.spawn.SpawnSummoner(h)
	s.Require().NoError(err)
	s.drain()
	return id
}

func (s *SystemTestSuite) TestMoveCompletes() {
	id := s.spawnPlayer()
	dest := playerCell.Neighbor(hexmap.SE)
	a, err := s.world.Motion.Move(id, dest, s.cfg.Timing.MoveMS)
	s.Require().NoError(err)
	s.anims.Play(id, a)
	s.Equal(1, s.sched.Pending())

	s.anims.Update(1000)

	s.Equal(dest, s.world.ECS.Cells[id].Hex)
	s.Equal(id, s.world.Room.Occupant(dest))
	s.True(s.world.Room.IsEmpty(playerCell))
	s.False(s.anims.Active(id))
	s.Zero(s.sched.Pending())
	s.Equal(1, s.world.ECS.Players[id].Steps)
}

func (s *SystemTestSuite) TestPlayerBumpKillsEnemy() {
	id := s.spawnPlayer()
	target := playerCell.Neighbor(hexmap.S)
	enemy := s.spawnSummoner(target)
	s.True(s.anims.Active(enemy), "summoner idles after fading in")

	a, err := s.world.Motion.Bump(id, target, s.cfg.Timing.BumpMS)
	s.Require().NoError(err)
	s.anims.Play(id, a)
	s.anims.Update(s.cfg.Timing.BumpMS / 2)

	s.False(s.world.Room.Contains(enemy))
	s.True(s.world.Room.IsEmpty(target))
	s.True(s.world.ECS.Exists(enemy), "corpse fades out first")
	s.Require().Len(s.killed, 1)
	s.Equal(event.KilledData{Entity: enemy, Killer: id}, s.killed[0])

	s.drain()
	s.False(s.world.ECS.Exists(enemy))
	x, y := playerCell.ToPixel()
	pos := s.world.ECS.Positions[id]
	s.Equal(x, pos.X)
	s.Equal(y, pos.Y)
	s.Equal(playerCell, s.world.ECS.Cells[id].Hex)
	s.Equal(1, s.world.ECS.Players[id].Kills)
	s.Equal(1, s.sound.Played(sound.CueThud))
	s.Zero(s.sound.Played(sound.CueBump))
}

func (s *SystemTestSuite) TestWallBumpOnlySounds() {
	id := s.spawnPlayer()
	target := playerCell.Neighbor(hexmap.N)
	wall, err := s.spawn.SpawnWall(target)
	s.Require().NoError(err)

	a, err := s.world.Motion.Bump(id, target, s.cfg.Timing.BumpMS)
	s.Require().NoError(err)
	s.anims.Play(id, a)
	s.drain()

	s.True(s.world.Room.Contains(wall))
	s.Empty(s.killed)
	s.Equal(1, s.sound.Played(sound.CueBump))
}

func (s *SystemTestSuite) TestEnemyBumpDoesNotKillPlayer() {
	id := s.spawnPlayer()
	enemy := s.spawnSummoner(playerCell.Neighbor(hexmap.S))

	a, err := s.world.Motion.Bump(enemy, playerCell, s.cfg.Timing.BumpMS)
	s.Require().NoError(err)
	s.anims.Play(enemy, a)
	s.drain()

	s.True(s.world.Room.Contains(id))
	s.Empty(s.killed)
}

func (s *SystemTestSuite) TestKillCascade() {
	s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	var children []types.EntityID
	for _, h := range []hexmap.Hex{{Row: 8, Col: 5}, {Row: 9, Col: 2}, {Row: 2, Col: 1}} {
		c, err := s.spawn.SpawnSummons(summoner, h)
		s.Require().NoError(err)
		children = append(children, c)
	}
	s.drain()
	s.Equal(3, s.spawned)
	s.Equal(children, s.world.ECS.Summoners[summoner].Children)

	// один ребёнок погибает раньше
	s.Equal(1, s.combat.Kill(children[0], types.None))
	s.Equal(children[1:], s.world.ECS.Summoners[summoner].Children)

	s.Equal(3, s.combat.Kill(summoner, types.None))
	s.Zero(s.combat.Kill(summoner, types.None), "already dead")

	seen := make(map[types.EntityID]int)
	for _, k := range s.killed {
		seen[k.Entity]++
	}
	s.Len(seen, 4)
	for id, n := range seen {
		s.Equal(1, n, "entity %d killed twice", id)
	}

	s.drain()
	for _, c := range append(children, summoner) {
		s.False(s.world.ECS.Exists(c))
	}
}

func (s *SystemTestSuite) TestCascadeVictimsNotCreditedToKiller() {
	player := s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	for _, h := range []hexmap.Hex{{Row: 8, Col: 5}, {Row: 9, Col: 2}} {
		_, err := s.spawn.SpawnSummons(summoner, h)
		s.Require().NoError(err)
	}
	s.drain()

	s.Equal(3, s.combat.Kill(summoner, player))
	s.Require().Len(s.killed, 3)
	credited := 0
	for _, k := range s.killed {
		if k.Killer == player {
			credited++
		}
	}
	s.Equal(1, credited)
	s.Equal(credited, s.world.ECS.Players[player].Kills)
	s.drain()
}

func (s *SystemTestSuite) TestKillInterruptsBlockingAnimation() {
	s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	child, err := s.spawn.SpawnSummons(summoner, hexmap.Hex{Row: 8, Col: 5})
	s.Require().NoError(err)
	s.Equal(1, s.sched.Pending(), "summons fading in")

	s.combat.Kill(child, types.None)
	s.Equal(1, s.sched.Pending(), "fade-in released, fade-out holds")
	s.drain()
	s.False(s.world.ECS.Exists(child))
}

func (s *SystemTestSuite) TestSummonerBoxesInExposedPlayer() {
	s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	sm := s.world.ECS.Summoners[summoner]
	sm.Mana = 10
	s.Equal(6, s.ai.Exposed(s.mustPlayer()))

	s.ai.Act(s.ctx, summoner)
	s.Equal(component.AIBoxingIn, s.world.ECS.Enemies[summoner].State)
	s.Equal(1, sm.Mana)
	s.drain()

	s.Len(sm.Children, s.cfg.Summoner.Limit)
	for _, c := range sm.Children {
		s.True(playerCell.IsAdjacent(s.world.ECS.Cells[c].Hex))
	}
	s.Equal(6-s.cfg.Summoner.Limit, s.ai.Exposed(s.mustPlayer()))
}

func (s *SystemTestSuite) mustPlayer() types.EntityID {
	id, ok := s.world.PlayerID()
	s.Require().True(ok)
	return id
}

func (s *SystemTestSuite) TestSummonerSummonsThenWanders() {
	s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	sm := s.world.ECS.Summoners[summoner]
	sm.Mana = 1

	s.ai.Act(s.ctx, summoner)
	s.Equal(component.AISummoning, s.world.ECS.Enemies[summoner].State)
	s.Zero(sm.Mana)
	s.drain()
	s.Len(sm.Children, 1)

	s.ai.Act(s.ctx, summoner)
	state := s.world.ECS.Enemies[summoner].State
	s.Contains([]component.AIState{component.AIMoving, component.AIBumping}, state)
	s.Equal(1, sm.Mana)
	s.drain()
}

func (s *SystemTestSuite) TestSummonsWait() {
	s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	child, err := s.spawn.SpawnSummons(summoner, hexmap.Hex{Row: 8, Col: 5})
	s.Require().NoError(err)
	s.drain()

	s.Equal([]types.EntityID{summoner, child}, s.ai.Roster())
	s.ai.Act(s.ctx, child)
	s.Equal(component.AIWaiting, s.world.ECS.Enemies[child].State)
	s.Zero(s.sched.Pending())
}

func (s *SystemTestSuite) TestPlayerWalksToTarget() {
	id := s.spawnPlayer()
	target := hexmap.Hex{Row: 8, Col: 5}
	s.player.SetTarget(target)
	s.True(s.player.Act(s.ctx))
	s.True(s.sched.Blocked())
	s.drain()
	s.Equal(target, s.world.ECS.Cells[id].Hex)
	s.Equal(playerCell.Distance(target), s.world.ECS.Players[id].Steps)
}

func (s *SystemTestSuite) TestPlayerShakesOnUnreachableTarget() {
	id := s.spawnPlayer()
	target := hexmap.Hex{Row: 8, Col: 3}
	s.spawnSummoner(target)

	s.player.SetTarget(target)
	s.True(s.player.Act(s.ctx))
	s.Equal(1, s.sched.Pending())
	s.drain()
	s.Equal(playerCell, s.world.ECS.Cells[id].Hex)
	s.Equal(1, s.sound.Played(sound.CueError))
	s.Zero(s.world.ECS.Glyphs[id].OffsetX)
}

func (s *SystemTestSuite) TestPlayerWithoutRoomDoesNothing() {
	s.False(s.player.Act(s.ctx))
}

func (s *SystemTestSuite) TestEveryVariantDrains() {
	id := s.spawnPlayer()
	summoner := s.spawnSummoner(hexmap.Hex{Row: 8, Col: 3})
	f := s.world.Motion
	t := s.cfg.Timing

	builds := []func() (types.EntityID, *anim.Animation, error){
		func() (types.EntityID, *anim.Animation, error) {
			a, err := f.Move(id, s.world.ECS.Cells[id].Hex.Neighbor(hexmap.SE), t.MoveMS)
			return id, a, err
		},
		func() (types.EntityID, *anim.Animation, error) {
			from := s.world.ECS.Cells[id].Hex
			path, err := hexmap.FindPath(s.world.Room.Layout, s.world.Room.IsEmpty, from, playerCell, nil)
			if err != nil {
				return id, nil, err
			}
			a, err := f.Path(id, path, t.PathStepMS)
			return id, a, err
		},
		func() (types.EntityID, *anim.Animation, error) {
			a, err := f.Bump(id, playerCell.Neighbor(hexmap.NW), t.BumpMS)
			return id, a, err
		},
		func() (types.EntityID, *anim.Animation, error) {
			a, err := f.Cast(summoner, event.SpellSummon, t.CastMS)
			return summoner, a, err
		},
		func() (types.EntityID, *anim.Animation, error) {
			a, err := f.Shake(id, t.ShakeMS)
			return id, a, err
		},
		func() (types.EntityID, *anim.Animation, error) {
			a, err := f.FadeIn(summoner, t.FadeInMS)
			return summoner, a, err
		},
	}
	for i, build := range builds {
		who, a, err := build()
		s.Require().NoError(err, "variant %d", i)
		s.anims.Play(who, a)
		s.Equal(1, s.sched.Pending(), "variant %d", i)
		s.drain()
	}

	s.Require().NoError(s.world.Room.Remove(id))
	a, err := f.FadeOut(id, t.FadeOutMS)
	s.Require().NoError(err)
	s.anims.Play(id, a)
	s.drain()
	s.False(s.world.ECS.Exists(id))
}

func (s *SystemTestSuite) TestOverlayHidesUnderStandingEntity() {
	overlay := NewOverlaySystem(s.world)
	for _, h := range s.world.Room.Cells() {
		s.Require().NoError(s.world.Room.Text.Set(h.Row, h.Col, room.Overlay{Rune: '"', Alpha: 1}))
	}
	s.spawnPlayer()
	overlay.Update()

	s.world.Room.Text.Each(func(h hexmap.Hex, o room.Overlay) {
		if h == playerCell {
			s.Zero(o.Alpha)
		} else {
			s.Equal(1.0, o.Alpha, "%v", h)
		}
	})
}

func (s *SystemTestSuite) TestSceneUsesAbsoluteCoordinates() {
	id := s.spawnPlayer()
	s.world.Room.SetOrigin(100, 40)
	s.world.ECS.Glyphs[id].OffsetY = -3
	scene := NewSceneSystem(s.world).Build(800, 600, nil, "status")

	s.Require().Len(scene.Entities, 1)
	x, y := playerCell.ToPixel()
	g := scene.Entities[0]
	s.Equal(100+x+room.GlyphOffsetX, g.X)
	s.Equal(40+y+room.GlyphOffsetY-3, g.Y)
	s.Equal(config.PlayerGlyph, g.Rune)
	s.Equal(s.world.Room.Size(), len(scene.Hexes))
	s.Equal(100.0, scene.Room.X)
}

func TestSystemTestSuite(t *testing.T) {
	suite.Run(t, new(SystemTestSuite))
}

func TestSoundCuesReachPlayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := soundmock.NewMockPlayer(ctrl)

	s := new(SystemTestSuite)
	s.SetT(t)
	s.setup(p)

	gomock.InOrder(
		p.EXPECT().Play(sound.CueError),
		p.EXPECT().Play(sound.CueBump),
	)
	id := s.spawnPlayer()
	a, err := s.world.Motion.Shake(id, s.cfg.Timing.ShakeMS)
	s.Require().NoError(err)
	s.anims.Play(id, a)
	s.drain()

	s.world.Bus.Dispatch(event.Event{Type: event.PlaySound, Data: event.SoundData{Cue: string(sound.CueBump)}})
	s.world.Bus.Dispatch(event.Event{Type: event.PlaySound, Data: event.SoundData{Cue: "nonsense"}})

	s.sound.SetMuted(true)
	s.world.Bus.Dispatch(event.Event{Type: event.PlaySound, Data: event.SoundData{Cue: string(sound.CueBump)}})
	if s.sound.Played(sound.CueBump) != 2 {
		t.Fatalf("muted cues must still be counted, got %d", s.sound.Played(sound.CueBump))
	}
}
