package rag

import (
	"errors"
	"fmt"

	"bharatlaw-ai/internal/llm"
)

// Source tags where an answer came from.
type Source string

const (
	SourceVectorDB         Source = "vector_db"
	SourceFallbackLLM      Source = "fallback_llm"
	SourceIntentClassifier Source = "intent_classifier"
)

// Query is a single chat turn submitted to the engine.
type Query struct {
	// Question is the user's message.
	Question string
	// History holds earlier turns, oldest first. It is sent ahead of the prompt.
	History []llm.Message
	// K overrides the engine's retrieval depth when positive.
	K int
}

// Result is the engine's answer.
type Result struct {
	Answer string `json:"answer"`
	Source Source `json:"source"`
}

// Match is one retrieved chunk with its parent section's metadata.
type Match struct {
	ChunkID    string  `json:"chunk_id,omitempty"`
	Act        string  `json:"act"`
	SectionNo  string  `json:"section_no"`
	Heading    string  `json:"heading"`
	Part       string  `json:"part,omitempty"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Distance   float64 `json:"distance"`
}

// ErrMalformedMatch is wrapped by MalformedMatchError.
var ErrMalformedMatch = errors.New("malformed vector store match")

// MalformedMatchError reports a stored point whose payload is missing a required field
// or carries it with the wrong type.
type MalformedMatchError struct {
	PointID string
	Field   string
}

func (e *MalformedMatchError) Error() string {
	return fmt.Sprintf("point %s: missing or invalid payload field %q", e.PointID, e.Field)
}

func (e *MalformedMatchError) Unwrap() error {
	return ErrMalformedMatch
}
