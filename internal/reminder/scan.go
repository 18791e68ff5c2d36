package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

const (
	// DefaultWindowMinutes is how far ahead of an appointment's start time a
	// reminder becomes eligible to fire.
	DefaultWindowMinutes = 15

	// NotifyTitle is the fixed title of every reminder notification.
	NotifyTitle = "Important appointment!"
)

// Result is the outcome of one scan pass. Updated always holds the full
// snapshot; Changed reports whether any notified flag flipped, so callers can
// skip the write-back entirely when nothing happened.
type Result struct {
	Fired   []model.Appointment
	Updated []model.Appointment
	Changed bool
}

// Scan evaluates every appointment in the snapshot against the lookahead
// window [0, windowMinutes] minutes before start, inclusive on both ends.
// Only appointments dated the same local day as now are considered; an
// appointment whose start has already passed never fires, even by a minute.
// A malformed start time skips that appointment without aborting the rest.
//
// Scan is pure: it never mutates the input slice and is idempotent, since a
// fired appointment comes back with Notified set and is excluded on the next
// pass.
func Scan(now time.Time, appts []model.Appointment, windowMinutes int) Result {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}
	today := now.Format("2006-01-02")
	nowMinutes := now.Hour()*60 + now.Minute()

	updated := make([]model.Appointment, len(appts))
	copy(updated, appts)

	res := Result{Updated: updated}
	for i, a := range updated {
		if a.Date != today || a.Notified {
			continue
		}
		startMinutes, err := parseClock(a.StartTime)
		if err != nil {
			continue
		}
		diff := startMinutes - nowMinutes
		if diff < 0 || diff > windowMinutes {
			continue
		}
		updated[i].Notified = true
		res.Fired = append(res.Fired, updated[i])
		res.Changed = true
	}
	return res
}

// Body renders the notification body for a fired appointment.
func Body(a model.Appointment) string {
	return fmt.Sprintf("%s starts at %s.", a.Title, a.StartTime)
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	return h*60 + m, nil
}
