package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseIndicatorPulsesOnChange(t *testing.T) {
	start := time.Unix(100, 0)
	i := NewPhaseIndicator(20, 20, 10)

	i.SetPhase("player", start)
	assert.Equal(t, start, i.LastChange)

	i.SetPhase("player", start.Add(time.Second))
	assert.Equal(t, start, i.LastChange, "same phase keeps the pulse time")

	i.SetPhase("enemies", start.Add(2*time.Second))
	assert.Equal(t, start.Add(2*time.Second), i.LastChange)
}

func TestScaleDecays(t *testing.T) {
	assert.InDelta(t, 1.3, Scale(0), 1e-9)
	assert.Less(t, Scale(100*time.Millisecond), Scale(0))
	assert.InDelta(t, 1.0, Scale(5*time.Second), 1e-6)
}

func TestContains(t *testing.T) {
	i := NewPhaseIndicator(20, 20, 10)
	assert.True(t, i.Contains(25, 25))
	assert.False(t, i.Contains(35, 20))
}
