// Package structured renders matches as JSON lines or YAML documents.
package structured

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jpq/internal/formatter"
	"github.com/jacoelho/jpq/internal/results"
	"github.com/jacoelho/jpq/internal/value"
)

// record is the structured form of a match.
type record struct {
	File     string      `json:"file" yaml:"file"`
	Document int         `json:"document" yaml:"document"`
	Query    string      `json:"query" yaml:"query"`
	Path     string      `json:"path" yaml:"path"`
	Pointer  string      `json:"pointer" yaml:"pointer"`
	Value    value.Value `json:"value" yaml:"value"`
}

func newRecord(m results.Match) record {
	return record{
		File:     m.File,
		Document: m.Document,
		Query:    m.Path,
		Path:     m.Node.Path.String(),
		Pointer:  m.Node.Path.Pointer(),
		Value:    m.Node.Value,
	}
}

var (
	_ formatter.Formatter = (*JSON)(nil)
	_ formatter.Formatter = (*YAML)(nil)
)

// JSON writes one JSON object per match.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (f *JSON) Match(m results.Match) error {
	return f.enc.Encode(newRecord(m))
}

func (f *JSON) Flush() error {
	return nil
}

// YAML writes one YAML document per match, separated by "---".
type YAML struct {
	writer io.Writer
}

func NewYAML(w io.Writer) *YAML {
	return &YAML{writer: w}
}

func (f *YAML) Match(m results.Match) error {
	data, err := yaml.Marshal(newRecord(m))
	if err != nil {
		return fmt.Errorf("encode YAML match: %w", err)
	}
	if _, err := io.WriteString(f.writer, "---\n"); err != nil {
		return err
	}
	_, err = f.writer.Write(data)
	return err
}

func (f *YAML) Flush() error {
	return nil
}
