package model

import "time"

// Appointment is a single planner entry. Date and clock fields are stored the
// way the client edits them: a local calendar date and wall-clock times with
// no zone conversion applied.
type Appointment struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time,omitempty"`
	Location  string `json:"location,omitempty"`
	Notified  bool   `json:"notified"`
}

type Task struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Done             bool      `json:"done"`
	Due              string    `json:"due,omitempty"` // RFC 3339, optional
	EstimatedMinutes int       `json:"estimated_minutes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LedgerEntry struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"` // income | expense
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Note     string  `json:"note,omitempty"`
}

type JournalEntry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Mood       string  `json:"mood"`
	SleepHours float64 `json:"sleep_hours,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Preferences holds per-user settings the backend acts on. PushEnabled is the
// notification permission gate; PushTopic routes webhook pushes to the user's
// device.
type Preferences struct {
	PushEnabled bool   `json:"push_enabled"`
	PushTopic   string `json:"push_topic,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}
