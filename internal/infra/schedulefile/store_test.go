package schedulefile

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"svitlo_notification_bot/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(t.TempDir(), logrus.NewEntry(l))
}

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	s := testStore(t)

	doc := s.Load("rivne")
	if doc == nil {
		t.Fatal("Load() returned nil document")
	}
	if len(doc) != 0 {
		t.Errorf("Load() of missing file returned %d entries, want 0", len(doc))
	}
}

func TestLoadCorruptFileReturnsEmptyDocument(t *testing.T) {
	s := testStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, "rivne.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := s.Load("rivne")
	if len(doc) != 0 {
		t.Errorf("Load() of corrupt file returned %d entries, want 0", len(doc))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	want := schedule.Document{
		"10.12.2025": {"1.1": {"08-00 - 10-00"}, "1.2": {}},
	}

	if err := s.Save("rivne", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load("rivne")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestAvailableListsOnlyRegionsWithDocuments(t *testing.T) {
	s := testStore(t)

	if got := s.Available(); len(got) != 0 {
		t.Fatalf("Available() on empty dir = %v, want none", got)
	}

	for _, code := range []string{"rivne", "lviv"} {
		if err := s.Save(code, schedule.Document{}); err != nil {
			t.Fatalf("Save %s: %v", code, err)
		}
	}
	// A stray file outside the catalogue must not show up.
	if err := os.WriteFile(filepath.Join(s.dir, "atlantis.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := s.Available()
	// Catalogue order: lviv comes before rivne in the west group.
	want := []string{"lviv", "rivne"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}
