package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"bharatlaw-ai/internal/statute"
)

var sectionStart = regexp.MustCompile(`(?i)section\s+(\d+)\.\s`)

// ActFromFilename guesses the act of a plain-text dump from its file name.
func ActFromFilename(name string) string {
	base := strings.ToLower(filepath.Base(name))
	switch {
	case strings.Contains(base, "ipc"):
		return "IPC"
	case strings.Contains(base, "crpc"):
		return "CrPC"
	default:
		return "Unknown"
	}
}

// ParseText splits a plain-text statute dump into sections. Each section runs from
// a "Section N. " marker to the next marker or the end of input. The rest of the
// marker's line becomes the heading; text before the first marker is dropped.
func ParseText(r io.Reader, act string) ([]statute.Section, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	content := string(data)

	locs := sectionStart.FindAllStringSubmatchIndex(content, -1)
	sections := make([]statute.Section, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := strings.TrimSpace(content[loc[0]:end])
		if block == "" {
			continue
		}

		heading := content[loc[3]+1 : end]
		if nl := strings.IndexByte(heading, '\n'); nl >= 0 {
			heading = heading[:nl]
		}

		sections = append(sections, statute.Section{
			SectionNo: statute.CanonicalSectionNo(content[loc[2]:loc[3]]),
			Heading:   strings.TrimSpace(heading),
			Text:      block,
			Act:       act,
		})
	}
	return sections, nil
}

// DefaultTextPattern matches the statute dumps directly under the source directory.
const DefaultTextPattern = "*.txt"

// ParseTextDir parses every file in dir matching pattern (DefaultTextPattern when empty),
// taking the act from the file name.
func ParseTextDir(ctx context.Context, dir, pattern string, sink Sink) (*Report, error) {
	if pattern == "" {
		pattern = DefaultTextPattern
	}
	return parseDir(ctx, dir, pattern, sink, func(path string, f *os.File) ([]statute.Section, error) {
		return ParseText(f, ActFromFilename(path))
	})
}
