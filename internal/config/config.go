// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	MaxDeltaTime = 100 // мс; длинные паузы (свёрнутое окно) не прокручивают анимации рывком

	TitleFontSize = 28
	GlyphFontSize = 20
	HUDFontSize   = 14

	IndicatorOffsetX = 30
	IndicatorRadius  = 12
)

// Символы комнаты
const (
	PlayerGlyph   = '@'
	SummonerGlyph = 'Ж'
	SummonsGlyph  = 'ж'
	WallGlyph     = '█'
	OverlayGlyph  = '"'
)

var (
	BackgroundColor = color.RGBA{0x28, 0x28, 0x28, 255}
	GroundColor     = color.RGBA{0x0A, 0x33, 0x00, 255}
	HoverColor      = color.RGBA{0x66, 0x46, 0x00, 255}
	EdgeColor       = color.RGBA{0x1E, 0x5C, 0x0E, 255}
	OverlayColor    = color.RGBA{0x3C, 0x8C, 0x28, 255}
	PointerColor    = color.RGBA{0xFF, 0xB0, 0x00, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	PlayerColor     = color.RGBA{0xFF, 0xE0, 0x8A, 255}
	SummonerColor   = color.RGBA{0xD0, 0x60, 0xE8, 255}
	SummonsColor    = color.RGBA{0xE8, 0x50, 0x50, 255}
	WallColor       = color.RGBA{0x80, 0x80, 0x80, 255}

	PlayerPhaseColor  = color.RGBA{0x40, 0xC0, 0x40, 255}
	EnemiesPhaseColor = color.RGBA{0xC0, 0x40, 0x40, 255}
)
