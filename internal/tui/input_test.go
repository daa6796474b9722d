package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyReader_ReadKey_SingleChar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"letter a", []byte{'a'}, KeyEvent{Key: KeyRune, Rune: 'a'}},
		{"letter Z", []byte{'Z'}, KeyEvent{Key: KeyRune, Rune: 'Z'}},
		{"digit 5", []byte{'5'}, KeyEvent{Key: KeyRune, Rune: '5'}},
		{"space", []byte{' '}, KeyEvent{Key: KeyRune, Rune: ' '}},
		{"punctuation", []byte{'!'}, KeyEvent{Key: KeyRune, Rune: '!'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_ReadKey_ControlChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"ctrl+c", []byte{0x03}, KeyEvent{Key: KeyCtrlC}},
		{"ctrl+d", []byte{0x04}, KeyEvent{Key: KeyCtrlD}},
		{"tab", []byte{0x09}, KeyEvent{Key: KeyTab}},
		{"enter", []byte{0x0D}, KeyEvent{Key: KeyEnter}},
		{"backspace DEL", []byte{0x7F}, KeyEvent{Key: KeyBackspace}},
		{"backspace BS", []byte{0x08}, KeyEvent{Key: KeyBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_ReadKey_ArrowKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"up arrow", []byte{0x1B, '[', 'A'}, KeyEvent{Key: KeyUp}},
		{"down arrow", []byte{0x1B, '[', 'B'}, KeyEvent{Key: KeyDown}},
		{"right arrow", []byte{0x1B, '[', 'C'}, KeyEvent{Key: KeyRight}},
		{"left arrow", []byte{0x1B, '[', 'D'}, KeyEvent{Key: KeyLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_ReadKey_UTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"euro sign", []byte{0xE2, 0x82, 0xAC}, KeyEvent{Key: KeyRune, Rune: '\u20ac'}},
		{"chinese char", []byte{0xE4, 0xB8, 0xAD}, KeyEvent{Key: KeyRune, Rune: '\u4e2d'}},
		{"emoji", []byte{0xF0, 0x9F, 0x98, 0x80}, KeyEvent{Key: KeyRune, Rune: '\U0001F600'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_ReadKey_EOF(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader(nil))
	_, err := reader.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeyReader_ReadKey_Sequence(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader([]byte{' ', 0x1B, '[', 'A', 'q'}))

	var got []Action
	for {
		ev, err := reader.ReadKey()
		if err != nil {
			break
		}
		got = append(got, ParseAction(ev))
	}
	assert.Equal(t, []Action{ActionStart, ActionFaster, ActionQuit}, got)
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event KeyEvent
		want  Action
	}{
		{"space", KeyEvent{Key: KeyRune, Rune: ' '}, ActionStart},
		{"enter", KeyEvent{Key: KeyEnter}, ActionStart},
		{"r key", KeyEvent{Key: KeyRune, Rune: 'r'}, ActionReset},
		{"R key", KeyEvent{Key: KeyRune, Rune: 'R'}, ActionReset},
		{"x key", KeyEvent{Key: KeyRune, Rune: 'x'}, ActionCancel},
		{"up arrow", KeyEvent{Key: KeyUp}, ActionFaster},
		{"plus", KeyEvent{Key: KeyRune, Rune: '+'}, ActionFaster},
		{"down arrow", KeyEvent{Key: KeyDown}, ActionSlower},
		{"minus", KeyEvent{Key: KeyRune, Rune: '-'}, ActionSlower},
		{"left arrow", KeyEvent{Key: KeyLeft}, ActionPrevAlgorithm},
		{"right arrow", KeyEvent{Key: KeyRight}, ActionNextAlgorithm},
		{"m key", KeyEvent{Key: KeyRune, Rune: 'm'}, ActionCycleSound},
		{"open bracket", KeyEvent{Key: KeyRune, Rune: '['}, ActionSizeDown},
		{"close bracket", KeyEvent{Key: KeyRune, Rune: ']'}, ActionSizeUp},
		{"q key", KeyEvent{Key: KeyRune, Rune: 'q'}, ActionQuit},
		{"ctrl+c", KeyEvent{Key: KeyCtrlC}, ActionQuit},
		{"ctrl+d", KeyEvent{Key: KeyCtrlD}, ActionQuit},
		{"escape", KeyEvent{Key: KeyEscape}, ActionNone},
		{"other key", KeyEvent{Key: KeyRune, Rune: 'z'}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseAction(tt.event))
		})
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "none"},
		{ActionStart, "start"},
		{ActionReset, "reset"},
		{ActionCancel, "cancel"},
		{ActionFaster, "faster"},
		{ActionSlower, "slower"},
		{ActionPrevAlgorithm, "prev_algorithm"},
		{ActionNextAlgorithm, "next_algorithm"},
		{ActionCycleSound, "cycle_sound"},
		{ActionSizeDown, "size_down"},
		{ActionSizeUp, "size_up"},
		{ActionQuit, "quit"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.action.String())
	}
}
