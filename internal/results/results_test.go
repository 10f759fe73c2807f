package results

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	s := NewSummary(2, 2)
	s.Add(NewFileResultBuilder("a.json").AddDocument(3).AddDocument(0).WithDuration(time.Second))
	s.Add(NewFileResultBuilder("b.json").WithError(errors.New("bad input")))
	s.SetTotalDuration(2 * time.Second)

	want := Summary{
		FileResults: []FileResult{
			{Filename: "a.json", Documents: 2, Matches: 3, Duration: time.Second},
			{Filename: "b.json"},
		},
		Paths:          2,
		Files:          2,
		Documents:      2,
		Matches:        3,
		SucceededFiles: 1,
		FailedFiles:    1,
		TotalDuration:  2 * time.Second,
	}
	opt := cmp.Comparer(func(a, b error) bool { return (a == nil) == (b == nil) })
	if diff := cmp.Diff(want, *s, opt); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if !s.Matched() {
		t.Error("Matched() = false")
	}
	if got := s.DocumentsPerSecond(); got != 1 {
		t.Errorf("DocumentsPerSecond() = %v, want 1", got)
	}
	if got := s.SuccessPercentage(); got != 50 {
		t.Errorf("SuccessPercentage() = %v, want 50", got)
	}
	if got := s.FailurePercentage(); got != 50 {
		t.Errorf("FailurePercentage() = %v, want 50", got)
	}
}

func TestEmptySummary(t *testing.T) {
	t.Parallel()

	s := NewSummary(1, 0)
	if s.Matched() || s.DocumentsPerSecond() != 0 || s.SuccessPercentage() != 0 || s.FailurePercentage() != 0 {
		t.Errorf("empty summary reports activity: %+v", s)
	}
}
