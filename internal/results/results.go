package results

import (
	"time"

	"github.com/jacoelho/jpq/internal/jsonpath"
)

// Match is one node selected by a path from a document.
type Match struct {
	File     string
	Document int // 1-based position within File
	Path     string
	Node     jsonpath.Node
}

type FileResult struct {
	Filename  string
	Documents int
	Matches   int
	Duration  time.Duration
	Error     error
}

type FileResultBuilder struct {
	filename  string
	documents int
	matches   int
	duration  time.Duration
	err       error
}

func NewFileResultBuilder(filename string) *FileResultBuilder {
	return &FileResultBuilder{
		filename: filename,
	}
}

// AddDocument records one evaluated document and the nodes it produced.
func (b *FileResultBuilder) AddDocument(matches int) *FileResultBuilder {
	b.documents++
	b.matches += matches
	return b
}

func (b *FileResultBuilder) WithDuration(duration time.Duration) *FileResultBuilder {
	b.duration = duration
	return b
}

func (b *FileResultBuilder) WithError(err error) *FileResultBuilder {
	b.err = err
	return b
}

func (b *FileResultBuilder) Build() FileResult {
	return FileResult{
		Filename:  b.filename,
		Documents: b.documents,
		Matches:   b.matches,
		Duration:  b.duration,
		Error:     b.err,
	}
}

type Summary struct {
	FileResults    []FileResult
	Paths          int
	Files          int
	Documents      int
	Matches        int
	SucceededFiles int
	FailedFiles    int
	TotalDuration  time.Duration
}

func NewSummary(paths, expectedFiles int) *Summary {
	return &Summary{
		Paths:       paths,
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(builder *FileResultBuilder) {
	result := builder.Build()

	s.FileResults = append(s.FileResults, result)
	s.Files++
	s.Documents += result.Documents
	s.Matches += result.Matches

	if result.Error != nil {
		s.FailedFiles++
	} else {
		s.SucceededFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// Matched reports whether any path selected at least one node.
func (s *Summary) Matched() bool {
	return s.Matches > 0
}

func (s *Summary) DocumentsPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.Documents) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.Files == 0 {
		return 0
	}
	return (float64(s.SucceededFiles) / float64(s.Files)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.Files == 0 {
		return 0
	}
	return (float64(s.FailedFiles) / float64(s.Files)) * 100
}
