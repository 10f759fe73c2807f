package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jacoelho/jpq/internal/config"
	"github.com/jacoelho/jpq/internal/exit"
	"github.com/jacoelho/jpq/internal/extension"
	"github.com/jacoelho/jpq/internal/formatter"
	"github.com/jacoelho/jpq/internal/formatter/stdout"
	"github.com/jacoelho/jpq/internal/formatter/structured"
	"github.com/jacoelho/jpq/internal/formatter/table"
	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/ratelimit"
	"github.com/jacoelho/jpq/internal/results"
	"github.com/jacoelho/jpq/internal/value"
)

// compiledPath pairs a path with the text it was given as.
type compiledPath struct {
	source string
	path   *jsonpath.Path
}

// Runner evaluates paths against every document of the configured inputs.
type Runner struct {
	config      *config.Config
	paths       []compiledPath
	query       jsonpath.Query
	rateLimiter *ratelimit.Limiter
	formatter   formatter.Formatter
	logger      *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option customizes a Runner.
type Option func(*Runner)

// WithStdin replaces the reader used for the "-" input.
func WithStdin(r io.Reader) Option {
	return func(rn *Runner) { rn.stdin = r }
}

// WithStdout replaces the destination of matches.
func WithStdout(w io.Writer) Option {
	return func(rn *Runner) { rn.stdout = w }
}

// WithStderr replaces the destination of logs, errors and the summary.
func WithStderr(w io.Writer) Option {
	return func(rn *Runner) { rn.stderr = w }
}

// New creates a new Runner with the provided configuration, compiling every
// path. If creation fails, returns nil runner and exit result.
func New(cfg *config.Config, opts ...Option) (*Runner, *exit.Result) {
	r := &Runner{
		config:      cfg,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	r.logger = slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: level}))

	r.query = jsonpath.Query{
		Functions: extension.Registry(),
		Delegate:  jsonpath.LogDelegate{Logger: r.logger},
	}

	cache, err := jsonpath.NewCache(cfg.CacheSize, cfg.ParseOptions()...)
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v\n", err)
	}
	for _, source := range cfg.Paths {
		path, err := cache.Parse(source)
		if err != nil {
			return nil, exit.Errorf("Error: path %q: %v\n", source, err)
		}
		r.logger.Debug("path compiled", "source", source, "canonical", path.String(), "singular", path.IsSingular())
		r.paths = append(r.paths, compiledPath{source: source, path: path})
	}

	r.formatter = r.newFormatter()
	return r, nil
}

func (r *Runner) newFormatter() formatter.Formatter {
	opts := formatter.Options{
		ShowPaths: r.config.ShowPaths,
		Pointer:   r.config.Pointer,
		ShowFile:  len(r.config.Files) > 1,
	}

	switch r.config.Output {
	case config.OutputJSON:
		return structured.NewJSON(r.stdout)
	case config.OutputYAML:
		return structured.NewYAML(r.stdout)
	case config.OutputTable:
		return table.New(r.stdout, opts)
	default:
		return stdout.New(r.stdout, opts, r.config.NoColor)
	}
}

// Run evaluates every input and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	s, err := r.ExecuteFiles(ctx, r.config.Files)

	if flushErr := r.formatter.Flush(); flushErr != nil {
		fmt.Fprintf(r.stderr, "Error formatting results: %v\n", flushErr)
		return exit.CodeFailure
	}

	if r.config.Summary {
		if err := stdout.NewSummary(r.stderr, r.config.NoColor).Format(s); err != nil {
			fmt.Fprintf(r.stderr, "Error formatting summary: %v\n", err)
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(r.stderr, "\nInterrupted after %d document(s)\n", s.Documents)
		} else {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
		}
		return exit.CodeFailure
	}

	if r.config.ExitStatus && !s.Matched() {
		return exit.CodeNoMatch
	}
	return exit.CodeMatched
}

// ExecuteFiles evaluates the paths against each file in turn. A failing
// file does not stop the rest; the first error is returned with the summary.
func (r *Runner) ExecuteFiles(ctx context.Context, files []string) (*results.Summary, error) {
	s := results.NewSummary(len(r.paths), len(files))

	overallStart := time.Now()
	var firstError error

	for _, filename := range files {
		select {
		case <-ctx.Done():
			s.SetTotalDuration(time.Since(overallStart))
			return s, ctx.Err()
		default:
		}

		start := time.Now()
		builder := results.NewFileResultBuilder(filename)
		err := r.executeFile(ctx, filename, builder)
		s.Add(builder.WithDuration(time.Since(start)).WithError(err))

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				s.SetTotalDuration(time.Since(overallStart))
				return s, ctxErr
			}
			r.logger.Debug("file failed", "file", filename, "error", err)
			if firstError == nil {
				firstError = err
			}
		}
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s, firstError
}

// executeFile decodes filename and evaluates every document it holds.
func (r *Runner) executeFile(ctx context.Context, filename string, builder *results.FileResultBuilder) error {
	var input io.Reader = r.stdin
	if filename != config.Stdin {
		file, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", filename, err)
		}
		defer file.Close()
		input = file
	}

	format := r.config.InputFormat(filename)
	r.logger.Debug("reading input", "file", filename, "format", format)

	index := 0
	err := decodeDocuments(input, format, func(doc value.Value) error {
		if err := r.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		index++

		matches, err := r.evaluate(filename, index, doc)
		builder.AddDocument(matches)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// evaluate runs every path against doc and hands the matches to the
// formatter, returning how many nodes were selected.
func (r *Runner) evaluate(filename string, index int, doc value.Value) (int, error) {
	total := 0
	for _, p := range r.paths {
		nodes := r.query.Evaluate(p.path, doc)
		for _, n := range nodes {
			m := results.Match{File: filename, Document: index, Path: p.source, Node: n}
			if err := r.formatter.Match(m); err != nil {
				return total, fmt.Errorf("format match: %w", err)
			}
		}
		total += len(nodes)
		r.logger.Debug("path evaluated", "file", filename, "document", index, "path", p.source, "matches", len(nodes))
	}
	return total, nil
}
