package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestSortedDatesChronological(t *testing.T) {
	doc := Document{
		"11.12.2025": {},
		"10.12.2025": {},
		"02.01.2026": {},
	}

	got := SortedDates(doc)
	want := []string{"10.12.2025", "11.12.2025", "02.01.2026"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedDates() = %v, want %v", got, want)
	}
}

func TestSortedDatesFallbackOnBadKey(t *testing.T) {
	doc := Document{
		"10.12.2025": {},
		"not-a-date": {},
	}

	got := SortedDates(doc)
	if len(got) != 2 {
		t.Fatalf("SortedDates() returned %d keys, want 2 (unordered fallback)", len(got))
	}
	seen := map[string]bool{}
	for _, d := range got {
		seen[d] = true
	}
	if !seen["10.12.2025"] || !seen["not-a-date"] {
		t.Errorf("SortedDates() fallback lost keys: %v", got)
	}
}

func TestSelectDate(t *testing.T) {
	doc := Document{
		"10.12.2025": {},
		"11.12.2025": {},
	}

	if d, ok := SelectDate(doc, ModeToday); !ok || d != "10.12.2025" {
		t.Errorf("SelectDate(today) = %q, %v; want 10.12.2025, true", d, ok)
	}
	if d, ok := SelectDate(doc, ModeTomorrow); !ok || d != "11.12.2025" {
		t.Errorf("SelectDate(tomorrow) = %q, %v; want 11.12.2025, true", d, ok)
	}

	oneDay := Document{"10.12.2025": {}}
	if _, ok := SelectDate(oneDay, ModeTomorrow); ok {
		t.Error("SelectDate(tomorrow) on a one-date document should report no date")
	}
	if _, ok := SelectDate(Document{}, ModeToday); ok {
		t.Error("SelectDate(today) on an empty document should report no date")
	}
}

func TestAllQueuesFirstDateAuthoritative(t *testing.T) {
	doc := Document{
		"10.12.2025": {"3.1": {}, "1.2": {}, "1.1": {}},
		"11.12.2025": {"9.9": {}},
	}

	got := AllQueues(doc)
	want := []string{"1.1", "1.2", "3.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllQueues() = %v, want %v", got, want)
	}

	if got := AllQueues(Document{}); got != nil {
		t.Errorf("AllQueues(empty) = %v, want nil", got)
	}
}

func TestOutageIntervalsSkipsMalformed(t *testing.T) {
	doc := Document{
		"10.12.2025": {
			"3.1": {"08-00 - 10-00", "bad-data", "14-00 - 16-00"},
		},
	}

	got := OutageIntervals(doc, "3.1")
	if len(got) != 2 {
		t.Fatalf("OutageIntervals() returned %d intervals, want 2", len(got))
	}

	wantFirst := time.Date(2025, 12, 10, 8, 0, 0, 0, time.Local)
	if !got[0].Start.Equal(wantFirst) {
		t.Errorf("first interval start = %v, want %v", got[0].Start, wantFirst)
	}
	wantSecondEnd := time.Date(2025, 12, 10, 16, 0, 0, 0, time.Local)
	if !got[1].End.Equal(wantSecondEnd) {
		t.Errorf("second interval end = %v, want %v", got[1].End, wantSecondEnd)
	}
}

func TestOutageIntervalsTodayBeforeTomorrow(t *testing.T) {
	doc := Document{
		"11.12.2025": {"1.1": {"06-00 - 07-30"}},
		"10.12.2025": {"1.1": {"20-00 - 22-00"}},
		// A third day must be ignored even if present.
		"12.12.2025": {"1.1": {"01-00 - 02-00"}},
	}

	got := OutageIntervals(doc, "1.1")
	if len(got) != 2 {
		t.Fatalf("OutageIntervals() returned %d intervals, want 2 (today + tomorrow only)", len(got))
	}
	if got[0].Start.Day() != 10 || got[1].Start.Day() != 11 {
		t.Errorf("intervals out of order: %v then %v", got[0].Start, got[1].Start)
	}
}

func TestOutageIntervalsVariousMalformed(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		want     int
	}{
		{"missing separator", "08-00 10-00", 0},
		{"too many parts", "08-00 - 10-00 - 12-00", 0},
		{"non-numeric clock", "ab-cd - 10-00", 0},
		{"colon separated", "08:00 - 10:00", 0},
		{"valid", "08-00 - 10-00", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{"10.12.2025": {"1.1": {tt.interval}}}
			if got := OutageIntervals(doc, "1.1"); len(got) != tt.want {
				t.Errorf("OutageIntervals(%q) returned %d intervals, want %d", tt.interval, len(got), tt.want)
			}
		})
	}
}
