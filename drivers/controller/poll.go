package controller

// Poller reads the state of all four controller ports once per frame.
type Poller interface {
	Poll(inputs *[4]Controller)
}

// Script is a Poller that replays a fixed sequence of button states on the
// first port, one entry per call to Poll. Once the sequence is exhausted all
// buttons are reported as released. All ports are reported as plugged.
type Script struct {
	frames []ButtonMask
	pos    int
}

func NewScript(frames ...ButtonMask) *Script {
	return &Script{frames: frames}
}

// ParseScript creates a Script from one word per frame, see ParseButtons.
func ParseScript(words []string) (*Script, error) {
	frames := make([]ButtonMask, 0, len(words))
	for _, w := range words {
		b, err := ParseButtons(w)
		if err != nil {
			return nil, err
		}
		frames = append(frames, b)
	}
	return NewScript(frames...), nil
}

func (s *Script) Poll(inputs *[4]Controller) {
	var down ButtonMask
	if s.pos < len(s.frames) {
		down = s.frames[s.pos]
		s.pos++
	}
	for i := range inputs {
		inputs[i].UpdateInfo(true, false)
		if i == 0 {
			inputs[i].Update(down, 0, 0)
		} else {
			inputs[i].Update(0, 0, 0)
		}
	}
}

// Done reports whether all frames were replayed.
func (s *Script) Done() bool {
	return s.pos >= len(s.frames)
}

// Len returns the number of frames in the script.
func (s *Script) Len() int {
	return len(s.frames)
}
