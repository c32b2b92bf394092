package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/statute"
)

// ParseAct reads one annotated act document:
//
//	{"Act Title": "...", "Parts": {"<id>": {"Name": "...", "Sections": {"<section_no>": {"heading": "...", "paragraphs": ...}}}}}
//
// Paragraph trees are flattened depth-first, keeping every string leaf in document
// order joined by newlines. Object order is preserved throughout. A document
// without "Act Title" leaves the act empty.
func ParseAct(r io.Reader) ([]statute.Section, error) {
	dec := json.NewDecoder(r)
	var act string
	var sections []statute.Section

	err := walkObject(dec, func(key string) error {
		switch key {
		case "Act Title":
			return dec.Decode(&act)
		case "Parts":
			return walkObject(dec, func(string) error {
				parsed, err := parsePart(dec)
				sections = append(sections, parsed...)
				return err
			})
		default:
			return skipValue(dec)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse act: %w", err)
	}

	for i := range sections {
		sections[i].Act = strings.TrimSpace(act)
	}
	return sections, nil
}

func parsePart(dec *json.Decoder) ([]statute.Section, error) {
	var name string
	var sections []statute.Section
	err := walkObject(dec, func(key string) error {
		switch key {
		case "Name":
			return dec.Decode(&name)
		case "Sections":
			return walkObject(dec, func(sectionNo string) error {
				s, err := parseSection(dec, sectionNo)
				if err != nil {
					return err
				}
				sections = append(sections, s)
				return nil
			})
		default:
			return skipValue(dec)
		}
	})
	for i := range sections {
		sections[i].Part = name
	}
	return sections, err
}

func parseSection(dec *json.Decoder, sectionNo string) (statute.Section, error) {
	s := statute.Section{SectionNo: sectionNo}
	var blocks []string
	err := walkObject(dec, func(key string) error {
		switch key {
		case "heading":
			return dec.Decode(&s.Heading)
		case "paragraphs":
			return collectStrings(dec, &blocks)
		default:
			return skipValue(dec)
		}
	})
	s.Text = strings.Join(blocks, "\n")
	return s, err
}

// walkObject consumes one JSON object and calls field for each key with the
// decoder positioned at that key's value. field must consume the value.
func walkObject(dec *json.Decoder, field func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if err := field(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// collectStrings appends every string leaf of the next value, skipping object keys.
func collectStrings(dec *json.Decoder, out *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case string:
		*out = append(*out, v)
	case json.Delim:
		switch v {
		case '{':
			for dec.More() {
				if _, err := dec.Token(); err != nil {
					return err
				}
				if err := collectStrings(dec, out); err != nil {
					return err
				}
			}
		case '[':
			for dec.More() {
				if err := collectStrings(dec, out); err != nil {
					return err
				}
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	var discard json.RawMessage
	return dec.Decode(&discard)
}

// Report counts the outcome of one ingestion command.
type Report struct {
	Sources int `json:"sources"`
	Failed  int `json:"failed"`
	Parsed  int `json:"parsed"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

func (r *Report) emit(sink Sink, sections []statute.Section) error {
	for _, s := range sections {
		r.Parsed++
		added, err := sink.Append(s)
		if err != nil {
			return err
		}
		if added {
			r.Added++
		} else {
			r.Skipped++
		}
	}
	return nil
}

// DefaultActsPattern matches the annotated act files directly under the source directory.
const DefaultActsPattern = "*"

// ParseActsDir parses every regular file in dir whose slash-separated path relative to dir
// matches pattern ("**/*.json" descends into subdirectories), in path order.
// An empty pattern means DefaultActsPattern. Files that fail to parse are logged and skipped.
func ParseActsDir(ctx context.Context, dir, pattern string, sink Sink) (*Report, error) {
	if pattern == "" {
		pattern = DefaultActsPattern
	}
	return parseDir(ctx, dir, pattern, sink, func(path string, f *os.File) ([]statute.Section, error) {
		return ParseAct(f)
	})
}

// parseDir matches case-insensitively so "*.txt" also picks up "IPC.TXT".
func parseDir(ctx context.Context, dir, pattern string, sink Sink, parse func(path string, f *os.File) ([]statute.Section, error)) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dir)
	}

	report := &Report{}
	// fs.WalkDir visits entries in lexical order.
	err = fs.WalkDir(os.DirFS(dir), ".", func(rel string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.WarnContext(ctx, "failed to read directory entry", "path", rel, "error", err)
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, strings.ToLower(rel)); !ok {
			return nil
		}
		report.Sources++

		sections, err := parseFile(filepath.Join(dir, filepath.FromSlash(rel)), parse)
		if err != nil {
			report.Failed++
			logger.WarnContext(ctx, "failed to parse file", "file", rel, "error", err)
			return nil
		}
		if err := report.emit(sink, sections); err != nil {
			return err
		}
		logger.InfoContext(ctx, "parsed file", "file", rel, "sections", len(sections))
		return nil
	})
	return report, err
}

func parseFile(path string, parse func(path string, f *os.File) ([]statute.Section, error)) ([]statute.Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return parse(path, f)
}
