package runner

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/jpq/internal/config"
	"github.com/jacoelho/jpq/internal/value"
)

// decodeDocuments calls fn with each document of r in order, stopping at
// the first error. JSON input is streamed, so documents before a syntax
// error are still evaluated; YAML input is decoded as a whole.
func decodeDocuments(r io.Reader, format string, fn func(value.Value) error) error {
	switch format {
	case config.InputYAML:
		docs, err := value.DecodeYAML(r)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := fn(doc); err != nil {
				return err
			}
		}
		return nil

	case config.InputJSON:
		dec := value.NewDecoder(r)
		for n := 1; ; n++ {
			doc, err := dec.Decode()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("decode JSON document %d: %w", n, err)
			}
			if err := fn(doc); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unsupported input format %q", format)
	}
}
