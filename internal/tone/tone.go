// Package tone turns the focus of a running sort into sound. The pitch is a
// linear map of either the focused index or the focused value onto
// [MinFreq, MaxFreq]; it is voiced by a square-wave oscillator streamed to an
// audio backend.
package tone

import (
	"fmt"
	"strings"
)

const (
	MinFreq = 110.0
	MaxFreq = 880.0
)

// Mode selects what the pitch follows.
type Mode int

const (
	ModeIndex Mode = iota
	ModeValue
	ModeOff
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIndex:
		return "index"
	case ModeValue:
		return "value"
	case ModeOff:
		return "off"
	default:
		return "unknown"
	}
}

// Next cycles index -> value -> off -> index.
func (m Mode) Next() Mode {
	switch m {
	case ModeIndex:
		return ModeValue
	case ModeValue:
		return ModeOff
	default:
		return ModeIndex
	}
}

// ParseMode parses "index", "value" or "off".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "index", "":
		return ModeIndex, nil
	case "value":
		return ModeValue, nil
	case "off", "none", "mute":
		return ModeOff, nil
	default:
		return ModeOff, fmt.Errorf("unknown sound mode %q", s)
	}
}

// Frequency maps the focused index or value onto [MinFreq, MaxFreq] for an
// array of n elements.
func Frequency(mode Mode, index, value, n int) float64 {
	if n <= 0 {
		return MinFreq
	}

	selector := index
	if mode == ModeValue {
		selector = value
	}
	return MinFreq + (float64(selector)/float64(n))*(MaxFreq-MinFreq)
}
