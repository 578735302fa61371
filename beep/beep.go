// Package beep plays short audio cues for fired hotkeys.
package beep

import (
	"math"
	"sync/atomic"
)

var disabled atomic.Bool

func Disable() { disabled.Store(true) }

func Disabled() bool { return disabled.Load() }

const (
	sampleRate = 44100

	// Trigger: high, short tick
	triggerFreq   = 1100
	triggerDur    = 0.06
	triggerVolume = 0.5
	triggerDecay  = 50

	// Error: low double beep
	errorFreq   = 350
	errorDur    = 0.08
	errorGap    = 0.05
	errorVolume = 0.6
	errorDecay  = 30
)

// tone renders a decaying sine as mono 16-bit samples.
func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		out[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return out
}

func doubleTone(freq, duration, gap, volume, decay float64) []int16 {
	one := tone(freq, duration, volume, decay)
	silence := make([]int16, int(sampleRate*gap))
	out := make([]int16, 0, 2*len(one)+len(silence))
	out = append(out, one...)
	out = append(out, silence...)
	return append(out, one...)
}

func triggerSamples() []int16 {
	return tone(triggerFreq, triggerDur, triggerVolume, triggerDecay)
}

func errorSamples() []int16 {
	return doubleTone(errorFreq, errorDur, errorGap, errorVolume, errorDecay)
}

// PlayTrigger plays the cue for a fired hotkey without blocking.
func PlayTrigger() {
	if disabled.Load() {
		return
	}
	play(cueTrigger)
}

// PlayError plays the cue for a failed action without blocking.
func PlayError() {
	if disabled.Load() {
		return
	}
	play(cueError)
}

type cue int

const (
	cueTrigger cue = iota
	cueError
)
