package feedback

import (
	"sort"
)

// DailyCount is the number of votes of each kind cast on one day.
type DailyCount struct {
	Date       string `json:"date"`
	ThumbsUp   int    `json:"thumbs_up"`
	ThumbsDown int    `json:"thumbs_down"`
}

// Summary is the dashboard view of the feedback log.
type Summary struct {
	Total      int `json:"total"`
	ThumbsUp   int `json:"thumbs_up"`
	ThumbsDown int `json:"thumbs_down"`
	// Controversial lists questions that received more than one distinct vote value, sorted.
	Controversial []string `json:"controversial"`
	// Daily is sorted by date. Records with unreadable timestamps are left out.
	Daily []DailyCount `json:"daily"`
}

// Summarize aggregates records. Questions are compared verbatim.
func Summarize(records []Record) Summary {
	s := Summary{
		Total:         len(records),
		Controversial: []string{},
		Daily:         []DailyCount{},
	}

	votesByQuestion := make(map[string]map[Vote]struct{})
	daily := make(map[string]*DailyCount)

	for _, r := range records {
		switch r.Feedback {
		case ThumbsUp:
			s.ThumbsUp++
		case ThumbsDown:
			s.ThumbsDown++
		}

		if !r.Feedback.Valid() {
			continue
		}

		votes, ok := votesByQuestion[r.Question]
		if !ok {
			votes = make(map[Vote]struct{})
			votesByQuestion[r.Question] = votes
		}
		votes[r.Feedback] = struct{}{}

		t, err := r.Time()
		if err != nil {
			continue
		}
		date := t.Format("2006-01-02")
		dc, ok := daily[date]
		if !ok {
			dc = &DailyCount{Date: date}
			daily[date] = dc
		}
		switch r.Feedback {
		case ThumbsUp:
			dc.ThumbsUp++
		case ThumbsDown:
			dc.ThumbsDown++
		}
	}

	for q, votes := range votesByQuestion {
		if len(votes) > 1 {
			s.Controversial = append(s.Controversial, q)
		}
	}
	sort.Strings(s.Controversial)

	for _, dc := range daily {
		s.Daily = append(s.Daily, *dc)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	return s
}

// NewestFirst returns a copy of records sorted by timestamp, most recent first.
// Unparseable timestamps sort last; ties keep log order reversed.
func NewestFirst(records []Record) []Record {
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[len(records)-1-i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := out[i].Time()
		tj, errj := out[j].Time()
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		default:
			return ti.After(tj)
		}
	})
	return out
}
