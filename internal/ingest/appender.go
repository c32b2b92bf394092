// Package ingest converts raw statute sources into the sections JSONL file.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"bharatlaw-ai/internal/statute"
)

// Sink receives parsed sections.
type Sink interface {
	// Append writes s unless a section with the same (act, section_no) was seen.
	Append(s statute.Section) (added bool, err error)
}

// Appender appends sections to a JSONL file, skipping keys already present in
// the file or appended earlier in the run.
type Appender struct {
	mu      sync.Mutex
	f       *os.File
	seen    map[statute.SectionKey]struct{}
	added   int
	skipped int
}

// OpenAppender loads the keys of an existing output file once and opens it for appending.
func OpenAppender(ctx context.Context, path string) (*Appender, error) {
	seen := make(map[statute.SectionKey]struct{})

	existing, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open existing output: %w", err)
	default:
		sections, readErr := statute.ReadSections(ctx, existing)
		_ = existing.Close()
		if readErr != nil {
			return nil, readErr
		}
		for _, s := range sections {
			seen[s.Key()] = struct{}{}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	return &Appender{f: f, seen: seen}, nil
}

func (a *Appender) Append(s statute.Section) (bool, error) {
	key := s.Key()
	if key.Act == "" {
		key.Act = statute.UnknownAct
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.seen[key]; ok {
		a.skipped++
		return false, nil
	}
	if err := statute.WriteSection(a.f, s); err != nil {
		return false, err
	}
	a.seen[key] = struct{}{}
	a.added++
	return true, nil
}

// Counts returns how many sections were written and skipped as duplicates.
func (a *Appender) Counts() (added, skipped int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.added, a.skipped
}

// Close closes the output file.
func (a *Appender) Close() error {
	return a.f.Close()
}
