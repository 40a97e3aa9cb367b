// Package animate drives the linear numeric transitions the style cascade
// installs when a transitioned property's value changes between frames.
package animate

import (
	"strconv"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// NumericAnimation linearly interpolates a single numeric style value
// (e.g. opacity) over a fixed number of frames, matching compositing.py's
// NumericAnimation: one call to Animate per rendered frame, stepping the
// underlying tween by exactly one frame unit each time.
type NumericAnimation struct {
	OldValue  float64
	NewValue  float64
	NumFrames int

	tween      *gween.Tween
	frameCount int
}

// NewNumericAnimation starts a new animation from oldValue to newValue over
// numFrames frames.
func NewNumericAnimation(oldValue, newValue float64, numFrames int) *NumericAnimation {
	return &NumericAnimation{
		OldValue:  oldValue,
		NewValue:  newValue,
		NumFrames: numFrames,
		tween:     gween.New(float32(oldValue), float32(newValue), float32(numFrames), ease.Linear),
	}
}

// Animate advances the animation by one frame and returns the new value as
// a string (style values are always strings) plus whether the animation is
// finished. Once finished, subsequent calls keep returning the final value.
func (a *NumericAnimation) Animate() (value string, done bool) {
	a.frameCount++
	current, _ := a.tween.Update(1)
	if a.frameCount >= a.NumFrames {
		return formatFloat(a.NewValue), true
	}
	return formatFloat(float64(current)), false
}

// Done reports whether the animation has completed as of its last Animate
// call, without advancing it further.
func (a *NumericAnimation) Done() bool {
	return a.frameCount >= a.NumFrames
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
