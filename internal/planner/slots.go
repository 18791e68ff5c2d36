package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

type interval struct {
	start int
	end   int
}

// OpenSlots suggests free start times ("HH:MM") on the given date where a
// block of durationMins fits between windowStart and windowEnd without
// overlapping any appointment. Slots already in the past (when date is
// today) are skipped. Appointments with malformed times are ignored; a
// missing end time blocks one hour.
func OpenSlots(date string, appts []model.Appointment, windowStart, windowEnd string, durationMins, stepMins int, now time.Time) ([]string, error) {
	if durationMins <= 0 || stepMins <= 0 {
		return nil, fmt.Errorf("duration and step must be positive")
	}
	ws, err := minutesOf(windowStart)
	if err != nil {
		return nil, err
	}
	we, err := minutesOf(windowEnd)
	if err != nil {
		return nil, err
	}
	if we <= ws {
		return nil, fmt.Errorf("window end must be after window start")
	}

	var busy []interval
	for _, a := range appts {
		if a.Date != date {
			continue
		}
		s, err := minutesOf(a.StartTime)
		if err != nil {
			continue
		}
		e := s + 60
		if a.EndTime != "" {
			if parsed, err := minutesOf(a.EndTime); err == nil && parsed > s {
				e = parsed
			}
		}
		busy = append(busy, interval{start: s, end: e})
	}

	nowFloor := -1
	if date == now.Format("2006-01-02") {
		nowFloor = now.Hour()*60 + now.Minute()
	}

	var slots []string
	for t := ws; t+durationMins <= we; t += stepMins {
		if t < nowFloor {
			continue
		}
		if !overlapsAny(t, t+durationMins, busy) {
			slots = append(slots, clockOf(t))
		}
	}
	return slots, nil
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) overlaps [b.start,b.end) iff start < b.end && b.start < end.
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

func minutesOf(s string) (int, error) {
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

func clockOf(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
