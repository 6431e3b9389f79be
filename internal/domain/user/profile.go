package user

import (
	"sort"
	"strconv"
)

// Profile is a user's subscription settings as seen by the rest of the
// application: a single area, the queues followed there, whether
// schedule-change notifications are wanted and the pre-outage reminder
// offsets in minutes.
type Profile struct {
	Area                 string   `json:"area"`
	Queues               []string `json:"queues"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
	ReminderOffsets      []int    `json:"reminder_offsets"`
}

// RawProfile is a profile as stored by older versions of the flat-file
// store. It carries the legacy fields that Normalize migrates.
type RawProfile struct {
	Area                 string        `json:"area,omitempty"`
	City                 string        `json:"city,omitempty"` // pre-rename of Area
	Queues               []string      `json:"queues"`
	NotificationsEnabled *bool         `json:"notifications_enabled,omitempty"`
	ReminderOffsets      []interface{} `json:"reminder_offsets,omitempty"`
	ReminderOffset       interface{}   `json:"reminder_offset,omitempty"` // pre-list scalar
}

// Default returns the profile a newly seen user starts with.
func Default(area string) *Profile {
	return &Profile{
		Area:            area,
		Queues:          []string{},
		ReminderOffsets: []int{},
	}
}

// Normalize upgrades a raw stored profile to the current schema. It renames
// city to area, lifts the scalar reminder_offset into reminder_offsets,
// silently drops non-numeric and non-positive offsets, defaults
// notifications_enabled to false, and resets area and queues when the stored
// area is not among the available ones.
func Normalize(raw RawProfile, availableAreas []string) *Profile {
	p := &Profile{
		Area:   raw.Area,
		Queues: raw.Queues,
	}
	if p.Area == "" && raw.City != "" {
		p.Area = raw.City
	}
	if p.Queues == nil {
		p.Queues = []string{}
	}
	if raw.NotificationsEnabled != nil {
		p.NotificationsEnabled = *raw.NotificationsEnabled
	}

	offsets := raw.ReminderOffsets
	if offsets == nil && raw.ReminderOffset != nil {
		offsets = []interface{}{raw.ReminderOffset}
	}
	p.ReminderOffsets = coerceOffsets(offsets)

	if len(availableAreas) > 0 && !contains(availableAreas, p.Area) {
		p.Area = availableAreas[0]
		p.Queues = []string{}
	}

	return p
}

// coerceOffsets converts loosely typed offset values to positive ints,
// dropping anything that does not qualify.
func coerceOffsets(values []interface{}) []int {
	offsets := make([]int, 0, len(values))
	for _, v := range values {
		var n int
		switch val := v.(type) {
		case float64: // encoding/json's number type
			n = int(val)
		case int:
			n = val
		case string:
			parsed, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			n = parsed
		default:
			continue
		}
		if n <= 0 {
			continue
		}
		offsets = append(offsets, n)
	}
	sort.Ints(offsets)
	return offsets
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
