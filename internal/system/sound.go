package system

import (
	"log/slog"

	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/sound"
)

// SoundSystem передаёт звуковые события проигрывателю.
type SoundSystem struct {
	player sound.Player
	muted  bool
	played map[sound.Cue]int
}

func NewSoundSystem(d *event.Dispatcher, player sound.Player) *SoundSystem {
	s := &SoundSystem{player: player, played: make(map[sound.Cue]int)}
	d.Subscribe(event.PlaySound, s)
	return s
}

// SetMuted глушит звук, продолжая считать события.
func (s *SoundSystem) SetMuted(muted bool) { s.muted = muted }

// Played — сколько раз прозвучал cue.
func (s *SoundSystem) Played(cue sound.Cue) int { return s.played[cue] }

func (s *SoundSystem) OnEvent(e event.Event) {
	data, ok := e.Data.(event.SoundData)
	if !ok {
		return
	}
	cue := sound.Cue(data.Cue)
	if !cue.Known() {
		slog.Warn("unknown sound cue", "cue", data.Cue)
		return
	}
	s.played[cue]++
	if !s.muted {
		s.player.Play(cue)
	}
}
