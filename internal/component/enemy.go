package component

import "go-hex-summoner/internal/types"

// AIState — что враг делал в последний свой ход
type AIState int

const (
	AIWaiting AIState = iota
	AIMoving
	AIBumping
	AISummoning
	AIBoxingIn
)

func (s AIState) String() string {
	switch s {
	case AIWaiting:
		return "waiting"
	case AIMoving:
		return "moving"
	case AIBumping:
		return "bumping"
	case AISummoning:
		return "summoning"
	case AIBoxingIn:
		return "boxing-in"
	}
	return "unknown"
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	State AIState
	Turns int // Сколько раз враг получал ход
}

// Summoner — враг, призывающий приспешников за ману.
type Summoner struct {
	Mana     int
	MaxMana  int
	Limit    int              // Максимум живых призванных
	Children []types.EntityID // Слабые ссылки: владеет комната
}

// RemoveChild убирает id из списка призванных. Возвращает false, если его там не было.
func (s *Summoner) RemoveChild(id types.EntityID) bool {
	for i, c := range s.Children {
		if c == id {
			s.Children = append(s.Children[:i], s.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Summons — призванная сущность. Хранит обратную ссылку на призывателя, не владея им.
type Summons struct {
	Summoner types.EntityID
}

// Wall — неподвижное препятствие на краю комнаты.
type Wall struct{}
