// Package synth holds the parameters of an audio channel and its ADSR
// envelope. It doesn't generate samples, the parameters are consumed by a
// mixer.
package synth

import "time"

// Waveform is a bit mask of the oscillators mixed into a channel.
type Waveform uint8

const (
	Noise Waveform = 1 << iota
	Square
	Saw
	Triangle
	Sine
)

// Phase is the state of the ADSR envelope.
type Phase uint8

const (
	Off Phase = iota
	Attack
	Decay
	Sustain
	Release
)

var phaseNames = [...]string{"off", "attack", "decay", "sustain", "release"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

const MaxVolume = 0xffff

type Channel struct {
	Waveforms Waveform
	Frequency int    // Hz
	Volume    uint16 // 0..MaxVolume

	AttackMS  int
	DecayMS   int
	ReleaseMS int
	Sustain   uint16 // 0..MaxVolume

	phase   Phase
	elapsed time.Duration
	level   uint16 // envelope level when the release started
}

// SetWaveform enables or disables a single waveform.
func (c *Channel) SetWaveform(w Waveform, enabled bool) {
	if enabled {
		c.Waveforms |= w
	} else {
		c.Waveforms &^= w
	}
}

func (c *Channel) Phase() Phase {
	return c.phase
}

func (c *Channel) TriggerAttack() {
	c.phase = Attack
	c.elapsed = 0
}

func (c *Channel) TriggerRelease() {
	if c.phase == Off {
		return
	}
	c.level = c.Envelope()
	c.phase = Release
	c.elapsed = 0
}

// Advance moves the envelope forward by d.
func (c *Channel) Advance(d time.Duration) {
	c.elapsed += d
	for {
		var length time.Duration
		switch c.phase {
		case Attack:
			length = ms(c.AttackMS)
		case Decay:
			length = ms(c.DecayMS)
		case Release:
			length = ms(c.ReleaseMS)
		default:
			return
		}
		if c.elapsed < length {
			return
		}
		c.elapsed -= length
		switch c.phase {
		case Attack:
			c.phase = Decay
		case Decay:
			c.phase = Sustain
			c.elapsed = 0
		case Release:
			c.phase = Off
			c.elapsed = 0
		}
	}
}

// Envelope returns the current envelope level in 0..MaxVolume.
func (c *Channel) Envelope() uint16 {
	switch c.phase {
	case Attack:
		return lerp(0, MaxVolume, c.elapsed, ms(c.AttackMS))
	case Decay:
		return lerp(MaxVolume, c.Sustain, c.elapsed, ms(c.DecayMS))
	case Sustain:
		return c.Sustain
	case Release:
		return lerp(c.level, 0, c.elapsed, ms(c.ReleaseMS))
	}
	return 0
}

// Output returns the channel volume scaled by the envelope.
func (c *Channel) Output() uint16 {
	return uint16(uint32(c.Volume) * uint32(c.Envelope()) / MaxVolume)
}

func ms(n int) time.Duration {
	return time.Duration(max(n, 0)) * time.Millisecond
}

func lerp(from, to uint16, t, length time.Duration) uint16 {
	if length <= 0 || t >= length {
		return to
	}
	return uint16(int64(from) + (int64(to)-int64(from))*int64(t)/int64(length))
}
