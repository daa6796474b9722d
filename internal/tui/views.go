package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thruflo/sortviz/internal/loop"
	"github.com/thruflo/sortviz/internal/tone"
)

// headerLines is the height of the boxed header: border, three content
// lines, a notice line and border.
const headerLines = 6

// HelpLine lists the key bindings shown under the chart.
const HelpLine = "[space]start [r]eset [x]cancel [↑↓]speed [←→]algorithm [m]sound [ [ ] ]size [q]uit"

// ViewState holds the data needed to render the chart view.
type ViewState struct {
	Frame    loop.Frame
	Selected string // title of the algorithm space will start
	Size     int    // size the next reset will use
	Speed    int
	MaxSpeed int
	Delay    time.Duration
	Sound    tone.Mode
	Notice   string
}

// ChartView renders the bar chart with its status header and help footer.
type ChartView struct{}

// Render renders the view into exactly height lines of width columns.
func (v *ChartView) Render(state ViewState, width, height int) []string {
	if width < 20 {
		width = 20
	}
	if height < headerLines+2 {
		height = headerLines + 2
	}

	lines := make([]string, 0, height)
	lines = append(lines, BoxWithContent(width, v.header(state))...)

	chartHeight := height - len(lines) - 1
	lines = append(lines, BarChart(state.Frame.Values, state.Frame.Focus, width, chartHeight, FgRed+Bold)...)
	lines = append(lines, Style(Truncate(HelpLine, width), Dim))
	return lines
}

func (v *ChartView) header(state ViewState) []string {
	f := state.Frame

	algorithm := state.Selected
	if f.Running && f.Algorithm != "" {
		algorithm = f.Algorithm
	}
	size := fmt.Sprintf("N=%d", len(f.Values))
	if state.Size > 0 && state.Size != len(f.Values) {
		size += fmt.Sprintf(" (next %d)", state.Size)
	}
	title := fmt.Sprintf("sortviz: %s | %s | %s", algorithm, size, FormatRunState(f))

	knobs := fmt.Sprintf("speed %d/%d (%s delay) | sound %s | elapsed %s",
		state.Speed, state.MaxSpeed, state.Delay, state.Sound, FormatElapsed(f.Elapsed))

	counts := fmt.Sprintf("steps %s | compares %s | swaps %s | writes %s",
		humanize.Comma(f.Steps),
		humanize.Comma(f.Counts.Compares),
		humanize.Comma(f.Counts.Swaps),
		humanize.Comma(f.Counts.Writes))

	notice := ""
	if state.Notice != "" {
		notice = Style(state.Notice, FgYellow)
	}
	return []string{title, knobs, counts, notice}
}

// FormatElapsed renders a duration in whole milliseconds.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Milliseconds())
}

// FormatRunState labels and colors the controller state for the header.
func FormatRunState(f loop.Frame) string {
	switch {
	case f.Running:
		return Style("running", FgGreen, Bold)
	case len(f.Values) > 0 && isSorted(f.Values):
		return Style("sorted", FgBrightGreen)
	default:
		return Style("idle", Dim)
	}
}

func isSorted(vs []int) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i-1] > vs[i] {
			return false
		}
	}
	return true
}

// Summary returns a one-line plain text description of a finished run.
func Summary(res loop.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %d values: %s after %s steps in %s",
		res.Algorithm, res.Size, res.Reason, humanize.Comma(res.Steps), FormatElapsed(res.Elapsed))
	if res.Reason == loop.ExitReasonCompleted && !res.Sorted {
		b.WriteString(" (not sorted)")
	}
	return b.String()
}
