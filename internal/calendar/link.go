package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

const googleRenderURL = "https://calendar.google.com/calendar/render"

// GoogleLink builds the third-party "add event" deep link for an appointment.
// Pure formatting: timestamps are emitted zone-less so the calendar applies
// the viewer's local time, matching how appointments are stored.
func GoogleLink(a model.Appointment, details string) (string, error) {
	start, end, err := eventTimes(a)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", a.Title)
	q.Set("dates", compact(start)+"/"+compact(end))
	if a.Location != "" {
		q.Set("location", a.Location)
	}
	if details != "" {
		q.Set("details", details)
	}
	return googleRenderURL + "?" + q.Encode(), nil
}

// eventTimes resolves the appointment's concrete start and end instants.
// A missing end time defaults to one hour after start.
func eventTimes(a model.Appointment) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02 15:04", a.Date+" "+a.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed appointment time: %w", err)
	}
	if a.EndTime == "" {
		return start, start.Add(time.Hour), nil
	}
	end, err := time.Parse("2006-01-02 15:04", a.Date+" "+a.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed appointment time: %w", err)
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end, nil
}

func compact(t time.Time) string {
	return t.Format("20060102T150405")
}
