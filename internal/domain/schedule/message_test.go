package schedule

import (
	"strings"
	"testing"
)

func TestBuildMessageStates(t *testing.T) {
	published := Document{
		"10.12.2025": {
			"1.1": {"08-00 - 10-00"},
			"1.2": {},
		},
	}

	tests := []struct {
		name     string
		queues   []string
		doc      Document
		mode     Mode
		wantKind MessageKind
	}{
		{"empty document", []string{"1.1"}, Document{}, ModeToday, MessageNoData},
		{"tomorrow not yet published", []string{"1.1"}, published, ModeTomorrow, MessagePending},
		{"no outages for selected queues", []string{"1.2"}, published, ModeToday, MessageNoOutages},
		{"populated", []string{"1.1", "1.2"}, published, ModeToday, MessagePopulated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildMessage(tt.queues, tt.doc, tt.mode, "Рівненська", "")
			if got.Kind != tt.wantKind {
				t.Errorf("BuildMessage() kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text == "" {
				t.Error("BuildMessage() text is empty")
			}
		})
	}
}

// Downstream transports rely on the non-populated states staying textually
// distinguishable.
func TestBuildMessageStatesAreTextuallyDistinct(t *testing.T) {
	oneDay := Document{"10.12.2025": {"1.1": {}}}

	noData := BuildMessage([]string{"1.1"}, Document{}, ModeTomorrow, "Рівненська", "")
	pending := BuildMessage([]string{"1.1"}, oneDay, ModeTomorrow, "Рівненська", "")
	noOutages := BuildMessage([]string{"1.1"}, oneDay, ModeToday, "Рівненська", "")

	if noData.Text == pending.Text || pending.Text == noOutages.Text || noData.Text == noOutages.Text {
		t.Errorf("state texts collide:\n%q\n%q\n%q", noData.Text, pending.Text, noOutages.Text)
	}
}

func TestBuildMessagePopulatedContent(t *testing.T) {
	doc := Document{
		"10.12.2025": {"3.1": {"08-00 - 10-00", "14-00 - 16-00"}},
	}

	got := BuildMessage([]string{"3.1"}, doc, ModeToday, "Рівненська", "🚨 ")
	if got.Kind != MessagePopulated {
		t.Fatalf("kind = %v, want MessagePopulated", got.Kind)
	}
	for _, fragment := range []string{"🚨 ", "Рівненська", "10.12.2025", "Черга 3.1", "08-00 - 10-00", "14-00 - 16-00"} {
		if !strings.Contains(got.Text, fragment) {
			t.Errorf("populated text missing %q:\n%s", fragment, got.Text)
		}
	}
}
