package reminder

import (
	"testing"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

func TestScan_WindowBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Now", Date: "2024-06-01", StartTime: "09:00"},
		{ID: "b", Title: "Edge", Date: "2024-06-01", StartTime: "09:15"},
		{ID: "c", Title: "Too far", Date: "2024-06-01", StartTime: "09:16"},
	}

	res := Scan(now, appts, 15)
	if len(res.Fired) != 2 {
		t.Fatalf("expected 2 fired, got %d", len(res.Fired))
	}
	if res.Fired[0].ID != "a" || res.Fired[1].ID != "b" {
		t.Fatalf("unexpected fired set: %+v", res.Fired)
	}
	if res.Updated[2].Notified {
		t.Fatal("appointment 16 minutes out must not be flagged")
	}
	if !res.Changed {
		t.Fatal("expected Changed")
	}
}

func TestScan_PastStartNeverFires(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 1, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Just missed", Date: "2024-06-01", StartTime: "09:00"},
	}

	res := Scan(now, appts, 15)
	if len(res.Fired) != 0 || res.Changed {
		t.Fatalf("appointment already started must not fire: %+v", res)
	}
}

func TestScan_DateIsolation(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Tomorrow", Date: "2024-06-02", StartTime: "09:10"},
		{ID: "b", Title: "Yesterday", Date: "2024-05-31", StartTime: "09:10"},
	}

	res := Scan(now, appts, 15)
	if len(res.Fired) != 0 || res.Changed {
		t.Fatalf("other-day appointments must not fire: %+v", res)
	}
}

func TestScan_AtMostOnce(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Standup", Date: "2024-06-01", StartTime: "09:10"},
	}

	first := Scan(now, appts, 15)
	if len(first.Fired) != 1 {
		t.Fatalf("expected 1 fired on first scan, got %d", len(first.Fired))
	}
	second := Scan(now, first.Updated, 15)
	if len(second.Fired) != 0 || second.Changed {
		t.Fatalf("second scan over updated snapshot must be a no-op: %+v", second)
	}
}

func TestScan_MalformedStartTimeIsIsolated(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "bad", Title: "Broken", Date: "2024-06-01", StartTime: "9am"},
		{ID: "ok", Title: "Valid", Date: "2024-06-01", StartTime: "09:05"},
		{ID: "bad2", Title: "Broken too", Date: "2024-06-01", StartTime: "25:99"},
	}

	res := Scan(now, appts, 15)
	if len(res.Fired) != 1 || res.Fired[0].ID != "ok" {
		t.Fatalf("valid appointment must still fire: %+v", res.Fired)
	}
	if res.Updated[0].Notified || res.Updated[2].Notified {
		t.Fatal("malformed appointments must be left untouched")
	}
}

func TestScan_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Standup", Date: "2024-06-01", StartTime: "09:10"},
	}

	res := Scan(now, appts, 15)
	if appts[0].Notified {
		t.Fatal("Scan must not mutate its input snapshot")
	}
	if !res.Updated[0].Notified {
		t.Fatal("returned snapshot must carry the flipped flag")
	}
}

func TestScan_NoChangeWhenNothingDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{ID: "a", Title: "Evening", Date: "2024-06-01", StartTime: "18:00"},
		{ID: "b", Title: "Done", Date: "2024-06-01", StartTime: "12:05", Notified: true},
	}

	res := Scan(now, appts, 15)
	if res.Changed {
		t.Fatal("nothing due: Changed must be false")
	}
	if len(res.Fired) != 0 {
		t.Fatalf("nothing due: got %d fired", len(res.Fired))
	}
}

func TestBody(t *testing.T) {
	a := model.Appointment{Title: "Dentist", StartTime: "14:30"}
	if got := Body(a); got != "Dentist starts at 14:30." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestParseClock(t *testing.T) {
	if m, err := parseClock("09:15"); err != nil || m != 9*60+15 {
		t.Fatalf("parseClock(09:15) = %d, %v", m, err)
	}
	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12.30"} {
		if _, err := parseClock(bad); err == nil {
			t.Fatalf("parseClock(%q) should fail", bad)
		}
	}
}
