package component

// Kind — именованная способность сущности. Набор закрыт.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindSummoner
	KindSummons
	KindWall
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindSummoner:
		return "summoner"
	case KindSummons:
		return "summons"
	case KindWall:
		return "wall"
	}
	return "unknown"
}
