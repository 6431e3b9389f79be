package user

import (
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalizeMigratesLegacyFields(t *testing.T) {
	available := []string{"rivne", "lviv"}

	tests := []struct {
		name string
		raw  RawProfile
		want Profile
	}{
		{
			name: "city renamed to area",
			raw:  RawProfile{City: "lviv", Queues: []string{"1.1"}},
			want: Profile{Area: "lviv", Queues: []string{"1.1"}, ReminderOffsets: []int{}},
		},
		{
			name: "scalar reminder_offset lifted into list",
			raw:  RawProfile{Area: "rivne", ReminderOffset: float64(30)},
			want: Profile{Area: "rivne", Queues: []string{}, ReminderOffsets: []int{30}},
		},
		{
			name: "notifications default false",
			raw:  RawProfile{Area: "rivne"},
			want: Profile{Area: "rivne", Queues: []string{}, ReminderOffsets: []int{}},
		},
		{
			name: "notifications preserved when set",
			raw:  RawProfile{Area: "rivne", NotificationsEnabled: boolPtr(true)},
			want: Profile{Area: "rivne", Queues: []string{}, NotificationsEnabled: true, ReminderOffsets: []int{}},
		},
		{
			name: "unknown area resets area and queues",
			raw:  RawProfile{Area: "atlantis", Queues: []string{"9.9"}},
			want: Profile{Area: "rivne", Queues: []string{}, ReminderOffsets: []int{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, available)
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("Normalize() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestNormalizeDropsBadOffsets(t *testing.T) {
	raw := RawProfile{
		Area: "rivne",
		ReminderOffsets: []interface{}{
			float64(30), "15", float64(0), float64(-10), "soon", nil, true, "60",
		},
	}

	got := Normalize(raw, []string{"rivne"})
	want := []int{15, 30, 60}
	if !reflect.DeepEqual(got.ReminderOffsets, want) {
		t.Errorf("ReminderOffsets = %v, want %v", got.ReminderOffsets, want)
	}
}

func TestNormalizeKeepsAreaWhenNoneAvailable(t *testing.T) {
	got := Normalize(RawProfile{Area: "kherson"}, nil)
	if got.Area != "kherson" {
		t.Errorf("Area = %q, want kherson (no available list to validate against)", got.Area)
	}
}
