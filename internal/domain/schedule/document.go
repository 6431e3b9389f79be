package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Document is a per-region outage timetable as published by the upstream
// parser: date key -> queue ID -> interval strings. Date keys use the
// "DD.MM.YYYY" layout, interval strings the "HH-MM - HH-MM" layout. The
// content is untrusted input; the resolver functions below skip malformed
// entries instead of failing the whole operation.
type Document map[string]map[string][]string

// DateLayout is the layout of the document's date keys.
const DateLayout = "02.01.2006"

// clockLayout is the layout of one side of an interval string.
const clockLayout = "15-04"

// intervalSeparator splits the start and end parts of an interval string.
const intervalSeparator = " - "

// Mode selects which of the document's days a query targets.
type Mode string

const (
	ModeToday    Mode = "today"
	ModeTomorrow Mode = "tomorrow"
)

// OutageInterval is one planned outage resolved to concrete timestamps.
type OutageInterval struct {
	Start time.Time
	End   time.Time
}

// SortedDates returns the document's date keys in chronological order.
// If any key does not parse as DD.MM.YYYY the keys are returned in map
// iteration order instead; callers must tolerate the unordered fallback.
func SortedDates(doc Document) []string {
	dates := make([]string, 0, len(doc))
	for d := range doc {
		dates = append(dates, d)
	}

	parsed := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		t, err := time.ParseInLocation(DateLayout, d, time.Local)
		if err != nil {
			logrus.WithField("date_key", d).Debug("Unparseable date key, returning keys unsorted")
			return dates
		}
		parsed[d] = t
	}

	sort.Slice(dates, func(i, j int) bool {
		return parsed[dates[i]].Before(parsed[dates[j]])
	})
	return dates
}

// SelectDate picks the date key for the given mode: today is the first
// sorted date, tomorrow the second. The second return value is false when
// the document has no date for the mode.
func SelectDate(doc Document, mode Mode) (string, bool) {
	dates := SortedDates(doc)
	if len(dates) == 0 {
		return "", false
	}
	if mode == ModeTomorrow {
		if len(dates) > 1 {
			return dates[1], true
		}
		return "", false
	}
	return dates[0], true
}

// AllQueues returns the sorted queue IDs present under the first sorted
// date. Schedules for different days share the same queue set, so the first
// date is authoritative.
func AllQueues(doc Document) []string {
	dates := SortedDates(doc)
	if len(dates) == 0 {
		return nil
	}
	queues := make([]string, 0, len(doc[dates[0]]))
	for q := range doc[dates[0]] {
		queues = append(queues, q)
	}
	sort.Strings(queues)
	return queues
}

// OutageIntervals resolves every interval listed for the queue on the first
// two sorted dates (today, and tomorrow when present). Malformed interval
// strings are skipped individually; output follows input order, today's
// intervals before tomorrow's.
func OutageIntervals(doc Document, queueID string) []OutageInterval {
	var intervals []OutageInterval

	dates := SortedDates(doc)
	if len(dates) > 2 {
		dates = dates[:2]
	}

	for _, dateKey := range dates {
		day, err := time.ParseInLocation(DateLayout, dateKey, time.Local)
		if err != nil {
			continue
		}

		for _, raw := range doc[dateKey][queueID] {
			iv, err := parseInterval(day, raw)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"date_key": dateKey,
					"queue":    queueID,
					"interval": raw,
				}).WithError(err).Debug("Skipping malformed interval")
				continue
			}
			intervals = append(intervals, iv)
		}
	}
	return intervals
}

// parseInterval resolves one "HH-MM - HH-MM" string against a calendar day.
func parseInterval(day time.Time, raw string) (OutageInterval, error) {
	parts := strings.Split(raw, intervalSeparator)
	if len(parts) != 2 {
		return OutageInterval{}, &time.ParseError{Layout: clockLayout + intervalSeparator + clockLayout, Value: raw, Message: ": wrong separator count"}
	}

	start, err := time.Parse(clockLayout, parts[0])
	if err != nil {
		return OutageInterval{}, err
	}
	end, err := time.Parse(clockLayout, parts[1])
	if err != nil {
		return OutageInterval{}, err
	}

	return OutageInterval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, day.Location()),
		End:   time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, day.Location()),
	}, nil
}
