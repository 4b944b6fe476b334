package display

import "time"

// Stats measures how long rendering a frame takes and the time between two
// presented frames.
type Stats struct {
	start, last           time.Time
	rendertime, frametime time.Duration
	frames                uint64
}

func (p *Stats) begin() {
	p.start = time.Now()
}

func (p *Stats) end() {
	now := time.Now()
	p.rendertime = now.Sub(p.start)
	if !p.last.IsZero() {
		p.frametime = now.Sub(p.last)
	}
	p.last = now
	p.frames++
}

// FPS returns the frame rate based on the time between the last two frames.
func (p *Stats) FPS() float32 {
	if p.frametime == 0 {
		return 0
	}
	return 1e9 / float32(p.frametime)
}

// Duration returns the time spent rendering the last frame.
func (p *Stats) Duration() time.Duration {
	return p.rendertime
}

// Frames returns the number of presented frames.
func (p *Stats) Frames() uint64 {
	return p.frames
}
