package motion

import (
	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/utils"
)

// positionTrack двигает сущность по прямой.
type positionTrack struct {
	pos                    *component.Position
	fromX, fromY, toX, toY float64
}

func (t positionTrack) Apply(v float64) {
	t.pos.X = utils.Lerp(t.fromX, t.toX, v)
	t.pos.Y = utils.Lerp(t.fromY, t.toY, v)
}

// alphaTrack меняет прозрачность символа.
type alphaTrack struct {
	glyph    *component.Glyph
	from, to float64
}

func (t alphaTrack) Apply(v float64) {
	if t.glyph != nil {
		t.glyph.Alpha = utils.Lerp(t.from, t.to, v)
	}
}

// offsetTrack качает символ вдоль одной оси, не трогая позицию.
type offsetTrack struct {
	glyph     *component.Glyph
	vertical  bool
	magnitude float64
}

func (t offsetTrack) Apply(v float64) {
	if t.glyph == nil {
		return
	}
	if t.vertical {
		t.glyph.OffsetY = t.magnitude * v
	} else {
		t.glyph.OffsetX = t.magnitude * v
	}
}
