// internal/system/world.go
package system

import (
	"log/slog"
	"sort"

	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/motion"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/internal/utils"
)

// World — общие зависимости систем. Создаётся игрой один раз; Config
// подменяется при горячей перезагрузке.
type World struct {
	ECS    *entity.ECS
	Room   *room.Room
	Bus    *event.Dispatcher
	Motion *motion.Factory
	Anims  *AnimationSystem
	RNG    *utils.PRNGService
	Config *config.Config
}

// PlayerID находит игрока в комнате.
func (w *World) PlayerID() (types.EntityID, bool) {
	ids := make([]types.EntityID, 0, len(w.ECS.Players))
	for id := range w.ECS.Players {
		if w.Room.Contains(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return types.None, false
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids[0], true
}

// play запускает анимацию, если её удалось построить.
func (w *World) play(id types.EntityID, a *anim.Animation, err error, what string) bool {
	if err != nil {
		slog.Warn("animation rejected", "kind", what, "entity", id, "error", err)
		return false
	}
	w.Anims.Play(id, a)
	return true
}

func (w *World) sound(cue string) {
	w.Bus.Dispatch(event.Event{Type: event.PlaySound, Data: event.SoundData{Cue: cue}})
}
