package controller

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownButton = errors.New("unknown button")

type ButtonMask uint16

const (
	ButtonA ButtonMask = 1 << (15 - iota)
	ButtonB
	ButtonZ
	ButtonStart
	ButtonDUp
	ButtonDDown
	ButtonDLeft
	ButtonDRight
	ButtonReset // L+R+Start pressed simultaneously
	ButtonUnknown
	ButtonL
	ButtonR
	ButtonCUp
	ButtonCDown
	ButtonCLeft
	ButtonCRight
)

var buttonNames = [...]string{
	"A",
	"B",
	"Z",
	"Start",
	"Up",
	"Down",
	"Left",
	"Right",
	"Reset",
	"Unknown",
	"L",
	"R",
	"CUp",
	"CDown",
	"CLeft",
	"CRight",
}

func (b ButtonMask) String() string {
	var sb strings.Builder
	for i, v := range buttonNames {
		if b&(1<<(15-i)) != 0 {
			if sb.Len() != 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(v)
		}
	}
	return sb.String()
}

// ParseButtons parses a list of button names joined by '+', e.g. "A+Left".
// Names are matched case insensitive. An empty string or "-" is no button.
func ParseButtons(s string) (b ButtonMask, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	for _, name := range strings.Split(s, "+") {
		name = strings.TrimSpace(name)
		found := false
		for i, v := range buttonNames {
			if strings.EqualFold(name, v) {
				b |= 1 << (15 - i)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
		}
	}
	return b, nil
}
