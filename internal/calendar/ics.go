package calendar

import (
	ical "github.com/arran4/golang-ical"

	"github.com/md-rashed-zaman/companion/internal/model"
)

// ExportICS renders a user's appointments as an iCalendar document.
// Appointments with malformed times are skipped rather than failing the
// whole export.
func ExportICS(appts []model.Appointment) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//companion//planner//EN")

	for _, a := range appts {
		start, end, err := eventTimes(a)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(a.ID)
		ev.SetSummary(a.Title)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		if a.Location != "" {
			ev.SetLocation(a.Location)
		}
	}
	return cal.Serialize()
}
