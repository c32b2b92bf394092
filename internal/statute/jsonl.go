package statute

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bharatlaw-ai/internal/contextutil"
)

// maxLineSize bounds a single JSONL record; annotated acts carry long sections.
const maxLineSize = 16 * 1024 * 1024

// ReadSections decodes line-delimited section records.
// Blank lines are ignored; malformed lines and records without a section number
// or text are logged and skipped.
func ReadSections(ctx context.Context, r io.Reader) ([]Section, error) {
	logger := contextutil.LoggerFromContext(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var sections []Section
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var s Section
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			logger.WarnContext(ctx, "skipping malformed section record", "line", lineNo, "error", err)
			continue
		}
		if strings.TrimSpace(s.SectionNo) == "" || strings.TrimSpace(s.Text) == "" {
			logger.WarnContext(ctx, "skipping incomplete section record", "line", lineNo, "section_no", s.SectionNo)
			continue
		}
		if s.Act == "" {
			s.Act = UnknownAct
		}
		sections = append(sections, s)
	}
	if err := scanner.Err(); err != nil {
		return sections, fmt.Errorf("failed to read sections: %w", err)
	}
	return sections, nil
}

// WriteSection encodes a section as a single JSONL line.
// Non-ASCII text is written as-is.
func WriteSection(w io.Writer, s Section) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode section: %w", err)
	}
	return nil
}
