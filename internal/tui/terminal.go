package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal handles raw terminal mode and provides ANSI escape helpers.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
	isAlt    bool
}

// NewTerminal creates a Terminal that reads from stdin and writes to the given writer.
func NewTerminal(out io.Writer) *Terminal {
	return NewTerminalFrom(os.Stdin, out)
}

// NewTerminalFrom creates a Terminal reading from in.
func NewTerminalFrom(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: out,
	}
}

// EnterRaw puts the terminal into raw mode.
// Returns an error if already in raw mode or if the operation fails.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	fd := int(t.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal to its original state.
// Safe to call even if not in raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	fd := int(t.in.Fd())
	if err := term.Restore(fd, t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsTerminal reports whether the input is attached to a terminal.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	fd := int(t.in.Fd())
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads up to len(p) bytes from the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// ANSI escape sequences
const (
	// Screen control
	ClearScreen    = "\033[2J"     // Clear entire screen
	ClearLine      = "\033[K"      // Clear from cursor to end of line
	ClearToEnd     = "\033[J"      // Clear from cursor to end of screen
	CursorHome     = "\033[H"      // Move cursor to home position (1,1)
	CursorHide     = "\033[?25l"   // Hide cursor
	CursorShow     = "\033[?25h"   // Show cursor
	AltScreenEnter = "\033[?1049h" // Switch to the alternate screen buffer
	AltScreenExit  = "\033[?1049l" // Return to the main screen buffer

	// Text attributes
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Foreground colors
	FgRed    = "\033[31m"
	FgGreen  = "\033[32m"
	FgYellow = "\033[33m"

	// Bright foreground colors
	FgBrightGreen = "\033[92m"

	// Bell
	Bell = "\a"
)

// Clear clears the screen and moves cursor to home.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// EnterAltScreen switches to the alternate screen so the chart does not
// scroll the user's shell history.
func (t *Terminal) EnterAltScreen() {
	if t.isAlt {
		return
	}
	fmt.Fprint(t.out, AltScreenEnter)
	t.isAlt = true
}

// ExitAltScreen returns to the main screen. Safe to call when not switched.
func (t *Terminal) ExitAltScreen() {
	if !t.isAlt {
		return
	}
	fmt.Fprint(t.out, AltScreenExit)
	t.isAlt = false
}

// RingBell sounds the terminal bell.
func (t *Terminal) RingBell() {
	fmt.Fprint(t.out, Bell)
}

// Write writes the given string to the terminal output.
func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// DrawFrame repaints lines from the top-left corner in a single write,
// clearing each line's tail and anything below the last line. Raw mode
// needs explicit carriage returns.
func (t *Terminal) DrawFrame(lines []string) {
	buf := make([]byte, 0, 4096)
	buf = append(buf, CursorHome...)
	for i, line := range lines {
		if i > 0 {
			buf = append(buf, '\r', '\n')
		}
		buf = append(buf, line...)
		buf = append(buf, ClearLine...)
	}
	buf = append(buf, ClearToEnd...)
	t.out.Write(buf)
}
