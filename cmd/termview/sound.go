package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/milk9111/desktopcharacters/character"
)

const (
	sampleRate = beep.SampleRate(48000)

	// Floor contacts slower than this, in world units per second, are silent.
	landingThreshold = 0.5
	landingFullSpeed = 4.0
	thudDuration     = 80 * time.Millisecond
)

type landingSound struct {
	mixer *beep.Mixer
}

func newLandingSound() (*landingSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	l := &landingSound{mixer: &beep.Mixer{}}
	speaker.Play(l.mixer)
	return l, nil
}

// Contact plays a thud for hard floor landings.
func (l *landingSound) Contact(c character.Contact) {
	gain, ok := landingGain(c)
	if !ok {
		return
	}
	thud := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(thudDuration), newThud(sampleRate, 110)),
		Base:     2,
		Volume:   math.Log2(gain),
	}
	speaker.Lock()
	l.mixer.Add(thud)
	speaker.Unlock()
}

func (l *landingSound) Close() {
	speaker.Clear()
	speaker.Close()
}

// landingGain maps a contact to a linear gain in (0, 1].
func landingGain(c character.Contact) (float64, bool) {
	if c.Kind != character.ContactFloor {
		return 0, false
	}
	speed := math.Abs(c.Speed)
	if speed < landingThreshold {
		return 0, false
	}
	return math.Min(speed/landingFullSpeed, 1), true
}

// thud is a sine with an exponential decay and a falling pitch.
type thud struct {
	sr    beep.SampleRate
	freq  float64
	phase float64
	t     float64
}

func newThud(sr beep.SampleRate, freq float64) *thud {
	return &thud{sr: sr, freq: freq}
}

func (g *thud) Stream(samples [][2]float64) (n int, ok bool) {
	step := 1 / float64(g.sr)
	for i := range samples {
		env := math.Exp(-g.t * 40)
		v := math.Sin(2*math.Pi*g.phase) * env * 0.6
		samples[i][0] = v
		samples[i][1] = v
		g.phase += g.freq * (1 - 0.5*g.t/thudDuration.Seconds()) * step
		g.phase -= math.Floor(g.phase)
		g.t += step
	}
	return len(samples), true
}

func (g *thud) Err() error { return nil }
