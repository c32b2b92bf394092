package feedback

import (
	"reflect"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	records := []Record{
		{Timestamp: "2025-07-02T09:00:00", Question: "What is bail?", Feedback: ThumbsUp},
		{Timestamp: "2025-07-01T10:00:00.5", Question: "Section 302?", Feedback: ThumbsUp},
		{Timestamp: "2025-07-01T18:30:00Z", Question: "Section 302?", Feedback: ThumbsDown},
		{Timestamp: "2025-07-02T12:00:00+05:30", Question: "What is bail?", Feedback: ThumbsUp},
		{Timestamp: "yesterday", Question: "Divorce grounds?", Feedback: ThumbsDown},
		{Timestamp: "2025-07-03", Question: "Divorce grounds?", Feedback: ThumbsUp},
	}

	got := Summarize(records)

	if got.Total != 6 || got.ThumbsUp != 4 || got.ThumbsDown != 2 {
		t.Errorf("counts = total %d up %d down %d, want 6/4/2", got.Total, got.ThumbsUp, got.ThumbsDown)
	}

	wantControversial := []string{"Divorce grounds?", "Section 302?"}
	if !reflect.DeepEqual(got.Controversial, wantControversial) {
		t.Errorf("Controversial = %v, want %v", got.Controversial, wantControversial)
	}

	wantDaily := []DailyCount{
		{Date: "2025-07-01", ThumbsUp: 1, ThumbsDown: 1},
		{Date: "2025-07-02", ThumbsUp: 2},
		{Date: "2025-07-03", ThumbsUp: 1},
	}
	if !reflect.DeepEqual(got.Daily, wantDaily) {
		t.Errorf("Daily = %+v, want %+v", got.Daily, wantDaily)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.Controversial == nil || got.Daily == nil {
		t.Errorf("Summarize(nil) = %+v, want zero counts and empty slices", got)
	}
}

func TestSummarize_IgnoresUnknownVotes(t *testing.T) {
	records := []Record{
		{Timestamp: "2025-07-01T10:00:00Z", Question: "What is bail?", Feedback: ThumbsUp},
		{Timestamp: "2025-07-01T11:00:00Z", Question: "What is bail?", Feedback: Vote("meh")},
		{Timestamp: "2025-07-01T12:00:00Z", Question: "Section 302?", Feedback: Vote("")},
	}

	got := Summarize(records)

	if got.Total != 3 || got.ThumbsUp != 1 || got.ThumbsDown != 0 {
		t.Errorf("counts = total %d up %d down %d, want 3/1/0", got.Total, got.ThumbsUp, got.ThumbsDown)
	}
	if len(got.Controversial) != 0 {
		t.Errorf("Controversial = %v, want none", got.Controversial)
	}
	wantDaily := []DailyCount{{Date: "2025-07-01", ThumbsUp: 1}}
	if !reflect.DeepEqual(got.Daily, wantDaily) {
		t.Errorf("Daily = %+v, want %+v", got.Daily, wantDaily)
	}
}

func TestNewestFirst(t *testing.T) {
	records := []Record{
		{Timestamp: "2025-07-01T10:00:00Z", Question: "a"},
		{Timestamp: "garbage", Question: "b"},
		{Timestamp: "2025-07-03T10:00:00Z", Question: "c"},
		{Timestamp: "2025-07-02T10:00:00Z", Question: "d"},
	}

	got := NewestFirst(records)
	order := ""
	for _, r := range got {
		order += r.Question
	}
	if order != "cdab" {
		t.Errorf("NewestFirst() order = %q, want %q", order, "cdab")
	}
	if records[0].Question != "a" {
		t.Error("NewestFirst() modified its input")
	}
}

func TestRecord_Time(t *testing.T) {
	r := Record{Timestamp: Now(time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC))}
	got, err := r.Time()
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if got.Day() != 1 || got.Hour() != 10 {
		t.Errorf("Time() = %v", got)
	}
}

func TestVote_Valid(t *testing.T) {
	if !ThumbsUp.Valid() || !ThumbsDown.Valid() {
		t.Error("known votes should be valid")
	}
	if Vote("thumbs_sideways").Valid() || Vote("").Valid() {
		t.Error("unknown votes should be invalid")
	}
}
