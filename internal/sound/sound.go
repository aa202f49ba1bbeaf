// Package sound plays short named cues fired from animation keyframes.
// Calls never wait for playback to finish.
package sound

//go:generate mockgen -destination=mock/mock_player.go -package=soundmock go-hex-summoner/internal/sound Player

// Cue — имя звука
type Cue string

const (
	CueError Cue = "error"
	CueBump  Cue = "bump"
	CueThud  Cue = "thud"
	CueSpell Cue = "spell"
)

// Cues lists every known cue.
var Cues = []Cue{CueError, CueBump, CueThud, CueSpell}

// Known reports whether c is one of Cues.
func (c Cue) Known() bool {
	for _, k := range Cues {
		if k == c {
			return true
		}
	}
	return false
}

// Player запускает звук и сразу возвращается.
type Player interface {
	Play(cue Cue)
}

// Nop — беззвучный Player для тестов, симуляции и --mute.
type Nop struct{}

func (Nop) Play(Cue) {}
