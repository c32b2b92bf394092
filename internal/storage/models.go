package storage

import "time"

// SectionRecord is a statute section row.
type SectionRecord struct {
	ID        int64
	Act       string
	SectionNo string // as ingested, e.g. "Section 302."
	Number    string // normalised lookup token, e.g. "302"
	Heading   string
	Part      string
	Text      string
	CreatedAt time.Time
}

// ActSummary is one act and how many of its sections are stored.
type ActSummary struct {
	Act      string `json:"act"`
	Sections int    `json:"sections"`
}
