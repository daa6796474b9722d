package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// barEighths are the glyphs for a cell filled 0/8 through 8/8 from the bottom.
var barEighths = [...]string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// widths measures cells independently of the user's locale so block
// elements always count as one column.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	height := len(content) + 2

	lines := make([]string, height)

	// Top border
	lines[0] = BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight

	// Content rows
	for i, line := range content {
		lines[i+1] = BoxVertical + " " + PadOrTruncate(line, innerWidth) + " " + BoxVertical
	}

	// Bottom border
	lines[height-1] = BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight

	return lines
}

// StripAnsi removes CSI escape sequences from s.
func StripAnsi(s string) string {
	if !strings.Contains(s, "\033") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// escapeLen returns the length of the CSI sequence at the start of s, or 0.
func escapeLen(s string) int {
	if len(s) < 2 || s[0] != '\033' || s[1] != '[' {
		return 0
	}
	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7E {
			return i + 1
		}
	}
	return len(s)
}

// VisualWidth returns the number of terminal columns s occupies, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return widths.StringWidth(StripAnsi(s))
}

// truncateVisual keeps at most width columns of s, copying escape sequences
// through and closing them with Reset if any were seen.
func truncateVisual(s string, width int) string {
	var b strings.Builder
	styled := false
	used := 0
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			b.WriteString(s[i : i+n])
			styled = true
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := widths.RuneWidth(r)
		if used+rw > width {
			break
		}
		b.WriteString(s[i : i+size])
		used += rw
		i += size
	}
	if styled && !strings.HasSuffix(b.String(), Reset) {
		b.WriteString(Reset)
	}
	return b.String()
}

// PadOrTruncate pads or truncates a string to exactly width columns.
// Escape sequences do not count towards the width.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	w := VisualWidth(s)

	if w == width {
		return s
	}

	if w < width {
		return s + strings.Repeat(" ", width-w)
	}

	if width >= 3 {
		return truncateVisual(s, width-3) + "..."
	}
	return truncateVisual(s, width)
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if VisualWidth(s) <= width {
		return s
	}

	if width >= 3 {
		return truncateVisual(s, width-3) + "..."
	}
	return truncateVisual(s, width)
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// BarChart renders values as vertical bars in a width x height cell grid,
// one line per row from the top. Bar heights are scaled against the largest
// value with eighth-block resolution. When there are more values than
// columns, each column shows the tallest value of its bucket. The column
// holding focus is drawn in highlight; pass a negative focus for none.
func BarChart(values []int, focus, width, height int, highlight string) []string {
	if width < 1 || height < 1 {
		return nil
	}

	lines := make([]string, height)
	n := len(values)
	if n == 0 {
		for r := range lines {
			lines[r] = strings.Repeat(" ", width)
		}
		return lines
	}

	cols := min(n, width)
	colWidth := width / cols
	padding := width - cols*colWidth

	top := 1
	for _, v := range values {
		top = max(top, v)
	}

	// Filled eighths per column.
	fill := make([]int, cols)
	focused := -1
	for c := 0; c < cols; c++ {
		lo, hi := c*n/cols, (c+1)*n/cols
		tallest := 0
		for _, v := range values[lo:hi] {
			tallest = max(tallest, v)
		}
		e := tallest * height * 8 / top
		if e == 0 && tallest > 0 {
			e = 1
		}
		fill[c] = e
		if focus >= lo && focus < hi {
			focused = c
		}
	}

	for r := 0; r < height; r++ {
		level := height - 1 - r
		var b strings.Builder
		for c := 0; c < cols; c++ {
			e := min(max(fill[c]-level*8, 0), 8)
			cell := strings.Repeat(barEighths[e], colWidth)
			if c == focused && highlight != "" {
				cell = Style(cell, highlight)
			}
			b.WriteString(cell)
		}
		b.WriteString(strings.Repeat(" ", padding))
		lines[r] = b.String()
	}
	return lines
}
