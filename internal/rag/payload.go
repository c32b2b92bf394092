package rag

import (
	"bharatlaw-ai/internal/statute"
	"bharatlaw-ai/internal/vectorstore"
)

// Payload keys written by the indexer and read back here.
const (
	FieldDocument   = "document"
	FieldChunkID    = "chunk_id"
	FieldAct        = "act"
	FieldSectionNo  = "section_no"
	FieldHeading    = "heading"
	FieldPart       = "part"
	FieldChunkIndex = "chunk_index"
)

// ChunkPayload builds the point payload stored for a chunk.
func ChunkPayload(c statute.Chunk) map[string]any {
	return map[string]any{
		FieldDocument:   c.Text,
		FieldChunkID:    c.Key(),
		FieldAct:        c.Act,
		FieldSectionNo:  c.SectionNo,
		FieldHeading:    c.Heading,
		FieldPart:       c.Part,
		FieldChunkIndex: c.Index,
	}
}

// matchFromResult validates a stored point's payload and converts it into a Match.
// document, section_no and act are required; the rest default to zero values.
func matchFromResult(r vectorstore.SearchResult) (Match, error) {
	required := func(field string) (string, error) {
		v, ok := r.Meta[field].(string)
		if !ok {
			return "", &MalformedMatchError{PointID: r.PointID, Field: field}
		}
		return v, nil
	}

	text, err := required(FieldDocument)
	if err != nil {
		return Match{}, err
	}
	sectionNo, err := required(FieldSectionNo)
	if err != nil {
		return Match{}, err
	}
	act, err := required(FieldAct)
	if err != nil {
		return Match{}, err
	}

	m := Match{
		Act:       act,
		SectionNo: sectionNo,
		Text:      text,
		Distance:  1 - float64(r.Score),
	}
	m.ChunkID, _ = r.Meta[FieldChunkID].(string)
	m.Heading, _ = r.Meta[FieldHeading].(string)
	m.Part, _ = r.Meta[FieldPart].(string)

	switch v := r.Meta[FieldChunkIndex].(type) {
	case int64:
		m.ChunkIndex = int(v)
	case int:
		m.ChunkIndex = v
	case float64:
		m.ChunkIndex = int(v)
	}
	return m, nil
}
