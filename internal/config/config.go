package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jacoelho/jpq/internal/exit"
	"github.com/jacoelho/jpq/internal/jsonpath"
)

// Input formats.
const (
	InputAuto = "auto"
	InputJSON = "json"
	InputYAML = "yaml"
)

// Output formats.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrNoPath         = errors.New("no path specified")
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrInvalidInput   = errors.New("input must be one of json, yaml or auto")
	ErrInvalidOutput  = errors.New("output must be one of text, json, yaml or table")
	ErrNegativeOption = errors.New("option cannot be negative")
)

// Config represents the complete configuration for the jpq tool.
type Config struct {
	// Queries and their inputs
	Paths    []string
	PathFile string
	Files    []string
	Input    string

	// Rendering
	Output    string
	ShowPaths bool
	Pointer   bool
	Summary   bool
	NoColor   bool

	// Compilation
	Parens    bool
	MaxDepth  int // 0 selects jsonpath.DefaultMaxDepth
	CacheSize int // 0 selects jsonpath.DefaultCacheSize

	RateLimit  float64 // Documents per second (0 = unlimited)
	ExitStatus bool
	Debug      bool
}

// ParseOptions returns the parser options selected by the configuration.
func (c *Config) ParseOptions() []jsonpath.ParseOption {
	var opts []jsonpath.ParseOption
	if c.Parens {
		opts = append(opts, jsonpath.CaptureParentheses())
	}
	if c.MaxDepth > 0 {
		opts = append(opts, jsonpath.WithMaxDepth(c.MaxDepth))
	}
	return opts
}

// InputFormat resolves the format of a file. With auto, files ending in
// .yaml or .yml are YAML and everything else, stdin included, is JSON.
func (c *Config) InputFormat(filename string) string {
	if c.Input != InputAuto {
		return c.Input
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return InputYAML
	default:
		return InputJSON
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoPath
	}

	if !slices.Contains([]string{InputAuto, InputJSON, InputYAML}, c.Input) {
		return fmt.Errorf("%w, got: %s", ErrInvalidInput, c.Input)
	}
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML, OutputTable}, c.Output) {
		return fmt.Errorf("%w, got: %s", ErrInvalidOutput, c.Output)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache-size %w", ErrNegativeOption)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max-depth %w", ErrNegativeOption)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate-limit %w", ErrNegativeOption)
	}

	for _, file := range c.Files {
		if file == Stdin {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return nil
}

// pathsFlag implements flag.Value for parsing multiple -path flags.
type pathsFlag []string

// String returns the paths joined by spaces for flag.Value interface.
func (p *pathsFlag) String() string {
	return strings.Join(*p, " ")
}

// Set appends a path for flag.Value interface.
func (p *pathsFlag) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyPath
	}
	*p = append(*p, value)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Usage and parse errors are reported by the caller
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		paths      pathsFlag
		pathFile   = fs.String("path-file", "", "File with one path per line")
		input      = fs.String("input", InputAuto, "Input format: json, yaml or auto")
		output     = fs.String("output", OutputText, "Output format: text, json, yaml or table")
		showPaths  = fs.Bool("paths", false, "Print the normalized path of every match")
		pointer    = fs.Bool("pointer", false, "Print JSON Pointers instead of normalized paths")
		summary    = fs.Bool("summary", false, "Print a run summary to stderr")
		noColor    = fs.Bool("no-color", false, "Disable colored output")
		parens     = fs.Bool("parens", false, "Keep filter parentheses when echoing paths")
		maxDepth   = fs.Int("max-depth", 0, "Maximum filter nesting depth (0 for the default)")
		cacheSize  = fs.Int("cache-size", 0, "Number of compiled paths to keep (0 for the default)")
		rateLimit  = fs.Float64("rate-limit", 0, "Rate limit in documents per second (0 for unlimited)")
		exitStatus = fs.Bool("exit-status", false, "Exit with status 2 when nothing matched")
		debug      = fs.Bool("debug", false, "Log compilation and function diagnostics to stderr")
	)

	fs.Var(&paths, "path", "JSONPath query (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *pathFile != "" {
		filePaths, err := loadPathFile(*pathFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load path file: %v\n\n%s", err, Usage())
		}
		paths = append(filePaths, paths...)
	}

	// Without -path or -path-file the first positional argument is the path
	files := fs.Args()
	if len(paths) == 0 && len(files) > 0 {
		paths = pathsFlag{files[0]}
		files = files[1:]
	}
	if len(files) == 0 {
		files = []string{Stdin}
	}

	config := &Config{
		Paths:      paths,
		PathFile:   *pathFile,
		Files:      files,
		Input:      *input,
		Output:     *output,
		ShowPaths:  *showPaths || *pointer,
		Pointer:    *pointer,
		Summary:    *summary,
		NoColor:    *noColor,
		Parens:     *parens,
		MaxDepth:   *maxDepth,
		CacheSize:  *cacheSize,
		RateLimit:  *rateLimit,
		ExitStatus: *exitStatus,
		Debug:      *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadPathFile reads one path per line, skipping empty lines and lines
// starting with #.
func loadPathFile(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var paths []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPath, filename)
	}
	return paths, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jpq - JSONPath query tool

Usage: jpq [options] <path> [file1] [file2] ...
       jpq [options] -path <path> [-path <path>] [file1] ...

Reads JSON (one or more concatenated documents) or YAML (one or more
documents) from the given files, or stdin when no file or "-" is given.

Options:
  --path PATH             JSONPath query (can be used multiple times)
  --path-file FILE        File with one path per line (# starts a comment)
  --input FORMAT          Input format: json, yaml or auto (default: auto)
  --output FORMAT         Output format: text, json, yaml or table (default: text)
  --paths                 Print the normalized path of every match
  --pointer               Print JSON Pointers instead of normalized paths
  --summary               Print a run summary to stderr
  --no-color              Disable colored output
  --parens                Keep filter parentheses when echoing paths
  --max-depth N           Maximum filter nesting depth (default: 256)
  --cache-size N          Number of compiled paths to keep (default: 256)
  --rate-limit N          Rate limit in documents per second (0 for unlimited)
  --exit-status           Exit with status 2 when nothing matched
  --debug                 Log compilation and function diagnostics to stderr
  -h, --help              Show this help message

Examples:
  jpq '$.store.book[*].author' store.json
  jpq --paths '$..price' store.json
  jpq --output table --path '$..title' --path '$..price' store.json
  jpq --exit-status '$[?@.status == "failed"]' results.json
  kubectl get pods -o yaml | jpq --input yaml '$.items[*].metadata.name'`
}
