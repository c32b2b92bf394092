// Package feedback stores user votes on answers and summarises them for the dashboard.
package feedback

import (
	"errors"
	"fmt"
	"time"
)

// Vote is a user's verdict on an answer.
type Vote string

const (
	ThumbsUp   Vote = "thumbs_up"
	ThumbsDown Vote = "thumbs_down"
)

// ErrInvalidVote is returned for a feedback value other than thumbs_up or thumbs_down.
var ErrInvalidVote = errors.New("invalid feedback value")

// Valid reports whether v is a known vote.
func (v Vote) Valid() bool {
	return v == ThumbsUp || v == ThumbsDown
}

// Record is one line of the feedback log.
// Timestamp is kept as written so a record reads back identically.
type Record struct {
	Timestamp string `json:"timestamp"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Feedback  Vote   `json:"feedback"`
}

// Validate checks the vote value.
func (r Record) Validate() error {
	if !r.Feedback.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVote, r.Feedback)
	}
	return nil
}

// timestampLayouts are tried in order when reading a record's time.
// Python's isoformat() omits the zone, hence the local layouts.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Time parses the record's timestamp.
func (r Record) Time() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, r.Timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", r.Timestamp)
}

// Now formats t the way new records are stamped.
func Now(t time.Time) string {
	return t.Format(time.RFC3339)
}
