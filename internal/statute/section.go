package statute

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxChunkWords is the word budget of a single embedded chunk.
const MaxChunkWords = 200

// UnknownAct is used when a record does not name its act.
const UnknownAct = "UNKNOWN_ACT"

// Section is a single statute section as produced by ingestion.
// Sections are unique per (Act, SectionNo).
type Section struct {
	SectionNo string `json:"section_no"`
	Heading   string `json:"heading"`
	Part      string `json:"part"`
	Text      string `json:"text"`
	Act       string `json:"act"`
}

// Key identifies a section for deduplication.
func (s Section) Key() SectionKey {
	return SectionKey{Act: s.Act, SectionNo: s.SectionNo}
}

// SectionKey is the (act, section_no) uniqueness pair.
type SectionKey struct {
	Act       string
	SectionNo string
}

// Chunk is a word-bounded slice of a section's text carrying the parent metadata.
type Chunk struct {
	Act       string
	SectionNo string
	Heading   string
	Part      string
	Index     int
	Text      string
}

var nonWord = regexp.MustCompile(`[^\w]`)

// Key returns the composite chunk identifier act_sectionNo_index.
func (c Chunk) Key() string {
	act := c.Act
	if act == "" {
		act = UnknownAct
	}
	act = strings.ReplaceAll(act, " ", "_")
	section := nonWord.ReplaceAllString(c.SectionNo, "")
	return fmt.Sprintf("%s_%s_%d", act, section, c.Index)
}

// ChunkSection splits a section's text into chunks of at most maxWords words.
// Whitespace is collapsed to single spaces. A section with no words yields no chunks.
func ChunkSection(s Section, maxWords int) []Chunk {
	if maxWords <= 0 {
		maxWords = MaxChunkWords
	}

	words := strings.Fields(s.Text)
	if len(words) == 0 {
		return nil
	}

	act := s.Act
	if act == "" {
		act = UnknownAct
	}

	chunks := make([]Chunk, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, Chunk{
			Act:       act,
			SectionNo: s.SectionNo,
			Heading:   s.Heading,
			Part:      s.Part,
			Index:     len(chunks),
			Text:      strings.Join(words[start:end], " "),
		})
	}
	return chunks
}
