package stdout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/jacoelho/jpq/internal/formatter"
	"github.com/jacoelho/jpq/internal/results"
	"github.com/jacoelho/jpq/internal/value"
)

// palette colors the parts of a text line.
type palette struct {
	file     *color.Color
	location *color.Color
	str      *color.Color
	scalar   *color.Color
	failure  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		file:     color.New(color.FgMagenta),
		location: color.New(color.FgCyan),
		str:      color.New(color.FgGreen),
		scalar:   color.New(color.FgYellow),
		failure:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.file, p.location, p.str, p.scalar, p.failure} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) value(v value.Value) string {
	text := v.String()
	switch v.Kind() {
	case value.KindString, value.KindBytes:
		return p.str.Sprint(text)
	case value.KindArray, value.KindObject:
		return text
	default:
		return p.scalar.Sprint(text)
	}
}

// Terminal reports whether f is attached to a terminal that can show colors.
func Terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter writes one match per line: the file name and location when
// requested, then the value as compact JSON, separated by tabs.
type Formatter struct {
	writer  io.Writer
	options formatter.Options
	colors  palette
}

// New creates a formatter on w, colored when w is a terminal and noColor is
// false.
func New(w io.Writer, opts formatter.Options, noColor bool) formatter.Formatter {
	if f, ok := w.(*os.File); ok && !noColor && Terminal(f) {
		return NewWithWriter(colorable.NewColorable(f), opts, true)
	}
	return NewWithWriter(w, opts, false)
}

// NewWithWriter creates a formatter with a custom writer.
// This is useful for testing or redirecting output to files.
func NewWithWriter(writer io.Writer, opts formatter.Options, colored bool) *Formatter {
	return &Formatter{
		writer:  writer,
		options: opts,
		colors:  newPalette(colored),
	}
}

// Match writes m as a single line.
func (f *Formatter) Match(m results.Match) error {
	var parts []string
	if f.options.ShowFile {
		parts = append(parts, f.colors.file.Sprint(m.File))
	}
	if f.options.ShowPaths {
		parts = append(parts, f.colors.location.Sprint(f.options.Location(m.Node)))
	}
	parts = append(parts, f.colors.value(m.Node.Value))

	_, err := fmt.Fprintln(f.writer, strings.Join(parts, "\t"))
	return err
}

// Flush is a no-op, lines are written as they arrive.
func (f *Formatter) Flush() error {
	return nil
}

// SummaryFormatter writes the run summary.
type SummaryFormatter struct {
	writer io.Writer
	colors palette
}

// NewSummary creates a summary formatter on w, usually stderr so that
// matches on stdout stay machine readable.
func NewSummary(w io.Writer, noColor bool) *SummaryFormatter {
	if f, ok := w.(*os.File); ok && !noColor && Terminal(f) {
		return NewSummaryWithWriter(colorable.NewColorable(f), true)
	}
	return NewSummaryWithWriter(w, false)
}

func NewSummaryWithWriter(writer io.Writer, colored bool) *SummaryFormatter {
	return &SummaryFormatter{writer: writer, colors: newPalette(colored)}
}

// Format writes per-file results followed by the totals.
func (f *SummaryFormatter) Format(s *results.Summary) error {
	for _, fileResult := range s.FileResults {
		status := "Success"
		if fileResult.Error != nil {
			status = f.colors.failure.Sprintf("Failed: %v", fileResult.Error)
		}
		_, err := fmt.Fprintf(f.writer, "%s: %s (%d document(s), %d match(es) in %d ms)\n",
			fileResult.Filename, status, fileResult.Documents, fileResult.Matches, fileResult.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(f.writer, "--------------------------------------------------------------------------------"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "Paths:             %d\n", s.Paths); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Files:             %d\n", s.Files); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Documents:         %d (%.2f/s)\n", s.Documents, s.DocumentsPerSecond()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Matches:           %d\n", s.Matches); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Succeeded files:   %d (%.1f%%)\n", s.SucceededFiles, s.SuccessPercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Failed files:      %d (%.1f%%)\n", s.FailedFiles, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Duration:          %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}
