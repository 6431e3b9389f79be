package userfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"svitlo_notification_bot/internal/domain/user"
	idb "svitlo_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

func testRepo(t *testing.T, areas []string) *Repository {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	path := filepath.Join(t.TempDir(), "users.json")
	return New(path, func() []string { return areas }, logrus.NewEntry(l))
}

func TestGetUnknownUser(t *testing.T) {
	r := testRepo(t, []string{"rivne"})

	if _, err := r.Get(context.Background(), 100); err != idb.ErrUserNotFound {
		t.Errorf("Get() error = %v, want ErrUserNotFound", err)
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	r := testRepo(t, []string{"rivne"})
	want := &user.Profile{
		Area:                 "rivne",
		Queues:               []string{"1.1", "3.2"},
		NotificationsEnabled: true,
		ReminderOffsets:      []int{15, 30},
	}

	if err := r.Save(context.Background(), 100, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := r.Get(context.Background(), 100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

// Profiles written by the first deployments carry legacy field names; they
// must come back upgraded.
func TestLegacyProfilesAreNormalizedOnRead(t *testing.T) {
	r := testRepo(t, []string{"rivne", "lviv"})
	legacy := `{
  "100": {"city": "lviv", "queues": ["2.1"], "reminder_offset": 30},
  "200": {"area": "rivne", "queues": [], "notifications_enabled": true, "reminder_offsets": [15, "bad", -5]}
}`
	if err := os.WriteFile(r.path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := r.Get(context.Background(), 100)
	if err != nil {
		t.Fatalf("Get 100: %v", err)
	}
	if first.Area != "lviv" || !reflect.DeepEqual(first.ReminderOffsets, []int{30}) {
		t.Errorf("legacy profile not migrated: %+v", first)
	}

	second, err := r.Get(context.Background(), 200)
	if err != nil {
		t.Fatalf("Get 200: %v", err)
	}
	if !second.NotificationsEnabled || !reflect.DeepEqual(second.ReminderOffsets, []int{15}) {
		t.Errorf("offsets not filtered: %+v", second)
	}
}

func TestListAllSkipsNonNumericKeys(t *testing.T) {
	r := testRepo(t, []string{"rivne"})
	raw := `{
  "100": {"area": "rivne", "queues": []},
  "garbage": {"area": "rivne", "queues": []}
}`
	if err := os.WriteFile(r.path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	profiles, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("ListAll() returned %d profiles, want 1", len(profiles))
	}
	if _, ok := profiles[100]; !ok {
		t.Error("ListAll() lost the valid profile")
	}
}
