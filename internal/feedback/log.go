package feedback

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bharatlaw-ai/internal/contextutil"
)

// Log is an append-only JSONL feedback file.
type Log struct {
	path string
	mu   sync.Mutex
}

// NewLog returns a log backed by path. The file is created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

// Append validates r and writes it as one line.
func (l *Log) Append(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	line, err := encodeRecord(r)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create feedback directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open feedback log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "feedback recorded", "feedback", r.Feedback)
	return nil
}

func encodeRecord(r Record) ([]byte, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}
	return []byte(sb.String()), nil
}

// ReadAll returns every record in file order. A missing file is an empty log.
// Blank and malformed lines are skipped.
func (l *Log) ReadAll(ctx context.Context) ([]Record, error) {
	logger := contextutil.LoggerFromContext(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records := []Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			logger.WarnContext(ctx, "skipping malformed feedback line", "line", lineNo, "error", err)
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback log: %w", err)
	}
	return records, nil
}
