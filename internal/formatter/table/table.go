// Package table renders matches as an aligned text table once the run ends.
package table

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jacoelho/jpq/internal/formatter"
	"github.com/jacoelho/jpq/internal/results"
)

// Formatter collects rows and renders them on Flush.
type Formatter struct {
	table   *tablewriter.Table
	options formatter.Options
	rows    int
}

var _ formatter.Formatter = (*Formatter)(nil)

func New(w io.Writer, opts formatter.Options) *Formatter {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeader(header(opts))
	return &Formatter{table: t, options: opts}
}

func header(opts formatter.Options) []string {
	var h []string
	if opts.ShowFile {
		h = append(h, "File", "Doc")
	}
	h = append(h, "Query")
	if opts.ShowPaths {
		h = append(h, "Location")
	}
	return append(h, "Value")
}

func (f *Formatter) Match(m results.Match) error {
	var row []string
	if f.options.ShowFile {
		row = append(row, m.File, strconv.Itoa(m.Document))
	}
	row = append(row, m.Path)
	if f.options.ShowPaths {
		row = append(row, f.options.Location(m.Node))
	}
	f.table.Append(append(row, m.Node.Value.String()))
	f.rows++
	return nil
}

// Flush renders the table. Nothing is written when no row was added.
func (f *Formatter) Flush() error {
	if f.rows == 0 {
		return nil
	}
	f.table.Render()
	f.table.ClearRows()
	f.rows = 0
	return nil
}
