// internal/anim/easing.go
package anim

import "math"

// Easing отображает нормированный прогресс [0, 1] в значение для трека.
type Easing func(p float64) float64

// Linear — без сглаживания.
func Linear(p float64) float64 { return p }

// CosineInOut — плавный старт и остановка, 0 → 1.
func CosineInOut(p float64) float64 {
	return (1 - math.Cos(p*math.Pi)) / 2
}

// Sine — один полный период синуса, используется для покачивания.
func Sine(p float64) float64 {
	return math.Sin(2 * p * math.Pi)
}

// Damped returns n sine oscillations whose amplitude decays linearly to zero.
func Damped(n int) Easing {
	return func(p float64) float64 {
		return math.Sin(2*math.Pi*float64(n)*p) * (1 - p)
	}
}

// Track получает уже сглаженное значение и применяет его к состоянию сущности.
type Track interface {
	Apply(v float64)
}

// TrackFunc adapts a function to Track.
type TrackFunc func(v float64)

// Apply calls f(v).
func (f TrackFunc) Apply(v float64) { f(v) }
