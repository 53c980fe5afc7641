package campus

import (
	"time"

	"github.com/KirkDiggler/campus-api/internal/daytime"
)

// AttendanceRecord is one class meeting for one student. A record starts
// absent when the class begins and flips to present on check-in.
type AttendanceRecord struct {
	ID             string            `json:"id"`
	StudentID      string            `json:"student_id"`
	ClassName      string            `json:"class_name"`
	DayOfWeek      daytime.DayOfWeek `json:"day_of_week"`
	DayIndex       int64             `json:"day_index"`
	AttendanceHour float64           `json:"attendance_hour"`
	Attended       bool              `json:"attended"`
	RecordedAt     time.Time         `json:"recorded_at"`
}
