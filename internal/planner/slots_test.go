package planner

import (
	"testing"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

func TestOpenSlots_Basic(t *testing.T) {
	appts := []model.Appointment{
		{Title: "Standup", Date: "2024-06-01", StartTime: "09:15", EndTime: "09:45"},
	}
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

	slots, err := OpenSlots("2024-06-01", appts, "09:00", "10:00", 15, 15, now)
	if err != nil {
		t.Fatalf("OpenSlots failed: %v", err)
	}
	if len(slots) != 2 || slots[0] != "09:00" || slots[1] != "09:45" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestOpenSlots_SkipsPast(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 31, 0, 0, time.UTC)

	slots, err := OpenSlots("2024-06-01", nil, "09:00", "10:00", 15, 15, now)
	if err != nil {
		t.Fatalf("OpenSlots failed: %v", err)
	}
	// 09:00, 09:15, 09:30 are in the past. 09:45 remains.
	if len(slots) != 1 || slots[0] != "09:45" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestOpenSlots_OtherDayAppointmentsIgnored(t *testing.T) {
	appts := []model.Appointment{
		{Title: "Tomorrow", Date: "2024-06-02", StartTime: "09:00", EndTime: "10:00"},
	}
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

	slots, err := OpenSlots("2024-06-01", appts, "09:00", "10:00", 30, 30, now)
	if err != nil {
		t.Fatalf("OpenSlots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected full window free, got %v", slots)
	}
}

func TestOpenSlots_MissingEndBlocksAnHour(t *testing.T) {
	appts := []model.Appointment{
		{Title: "Open-ended", Date: "2024-06-01", StartTime: "09:00"},
	}
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

	slots, err := OpenSlots("2024-06-01", appts, "09:00", "11:00", 30, 30, now)
	if err != nil {
		t.Fatalf("OpenSlots failed: %v", err)
	}
	if len(slots) != 2 || slots[0] != "10:00" || slots[1] != "10:30" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestOpenSlots_InvalidArguments(t *testing.T) {
	now := time.Now()
	if _, err := OpenSlots("2024-06-01", nil, "09:00", "08:00", 30, 30, now); err == nil {
		t.Fatal("inverted window must fail")
	}
	if _, err := OpenSlots("2024-06-01", nil, "09:00", "17:00", 0, 30, now); err == nil {
		t.Fatal("zero duration must fail")
	}
	if _, err := OpenSlots("2024-06-01", nil, "late", "17:00", 30, 30, now); err == nil {
		t.Fatal("malformed window must fail")
	}
}
