package formatter

import (
	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/results"
)

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device (stdout, file, etc.).
type Formatter interface {
	// Match renders one selected node. Streaming formats write it at once.
	Match(m results.Match) error
	// Flush writes anything held back, such as a table, once the run ends.
	Flush() error
}

// Options control which parts of a match are rendered.
type Options struct {
	ShowPaths bool // include the node location
	Pointer   bool // render locations as JSON Pointers
	ShowFile  bool // include the file name, set when reading several inputs
}

// Location renders where a node was found, as a normalized path or a JSON
// Pointer.
func (o Options) Location(n jsonpath.Node) string {
	if o.Pointer {
		return n.Path.Pointer()
	}
	return n.Path.String()
}
