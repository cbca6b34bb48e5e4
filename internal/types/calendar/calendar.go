package calendar

import "time"

type PracticeDay struct {
	Date         time.Time `json:"date"`
	Practiced    bool      `json:"practiced"`
	SessionCount int       `json:"session_count"`
	IsToday      bool      `json:"is_today"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []*PracticeDay `json:"days"`
}
