package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03: // Ctrl+C
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04: // Ctrl+D
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x09: // Tab
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D: // Enter (carriage return)
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7F, 0x08: // Backspace (DEL or BS)
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B: // Escape or escape sequence start
		return k.readEscapeSequence()
	default:
		// Check if it's a printable character or UTF-8 sequence
		if b >= 0x20 && b < 0x7F {
			return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
		}
		// Handle UTF-8 multi-byte characters
		if b >= 0xC0 {
			return k.readUTF8(b)
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence handles escape sequences (arrow keys, etc).
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	// Check if there's more data immediately available
	// If not, it's just the escape key
	if k.reader.Buffered() == 0 {
		// We can't use a timeout in blocking mode, so we'll read the next byte
		// But for a simple implementation, we'll just return Escape
		// In practice, terminals send escape sequences quickly enough
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyEscape}, nil
		}
		if b != '[' && b != 'O' {
			// Not a CSI or SS3 sequence, put it back conceptually
			// For simplicity, we'll just return escape
			k.reader.UnreadByte()
			return KeyEvent{Key: KeyEscape}, nil
		}
		return k.parseCSI(b)
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	if b != '[' && b != 'O' {
		k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	return k.parseCSI(b)
}

// parseCSI parses a CSI (Control Sequence Introducer) or SS3 sequence.
func (k *KeyReader) parseCSI(prefix byte) (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	default:
		// Unknown sequence, consume remaining bytes if any
		for k.reader.Buffered() > 0 {
			next, _ := k.reader.ReadByte()
			// Stop at terminal characters
			if (next >= 'A' && next <= 'Z') || next == '~' {
				break
			}
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	// Determine how many bytes we need
	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	// Read remaining bytes
	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}

	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Action is a user command decoded from a key press.
type Action int

const (
	ActionNone          Action = iota
	ActionStart                // space, enter - start the selected algorithm
	ActionReset                // r - reshuffle at the pending size
	ActionCancel               // x - abort the current run
	ActionFaster               // up, + - raise the speed knob
	ActionSlower               // down, - - lower the speed knob
	ActionPrevAlgorithm        // left - select the previous algorithm
	ActionNextAlgorithm        // right - select the next algorithm
	ActionCycleSound           // m - index, value, off
	ActionSizeDown             // [ - shrink the pending size
	ActionSizeUp               // ] - grow the pending size
	ActionQuit                 // q, ctrl+c, ctrl+d
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionStart:
		return "start"
	case ActionReset:
		return "reset"
	case ActionCancel:
		return "cancel"
	case ActionFaster:
		return "faster"
	case ActionSlower:
		return "slower"
	case ActionPrevAlgorithm:
		return "prev_algorithm"
	case ActionNextAlgorithm:
		return "next_algorithm"
	case ActionCycleSound:
		return "cycle_sound"
	case ActionSizeDown:
		return "size_down"
	case ActionSizeUp:
		return "size_up"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseAction converts a KeyEvent to an Action.
func ParseAction(ev KeyEvent) Action {
	switch ev.Key {
	case KeyEnter:
		return ActionStart
	case KeyUp:
		return ActionFaster
	case KeyDown:
		return ActionSlower
	case KeyLeft:
		return ActionPrevAlgorithm
	case KeyRight:
		return ActionNextAlgorithm
	case KeyCtrlC, KeyCtrlD:
		return ActionQuit
	case KeyRune:
		switch ev.Rune {
		case ' ':
			return ActionStart
		case 'r', 'R':
			return ActionReset
		case 'x', 'X':
			return ActionCancel
		case '+', '=':
			return ActionFaster
		case '-', '_':
			return ActionSlower
		case 'm', 'M':
			return ActionCycleSound
		case '[':
			return ActionSizeDown
		case ']':
			return ActionSizeUp
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}
