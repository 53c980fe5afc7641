package timekeeper

import (
	"time"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/services/social"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

// TimeView is the clock as the HUD shows it
type TimeView struct {
	daytime.Snapshot
	Clock    string         `json:"clock"`
	DayCount string         `json:"day_count"`
	Period   daytime.Period `json:"period"`
}

// ClassSummary is the attendance tally for one class name
type ClassSummary struct {
	ClassName     string  `json:"class_name"`
	AttendedHours int     `json:"attended_hours"`
	TotalHours    int     `json:"total_hours"`
	Percentage    float64 `json:"percentage"`
}

// GetTimeInput contains parameters for reading the clock
type GetTimeInput struct{}

// GetTimeOutput contains the current time
type GetTimeOutput struct {
	Time TimeView
}

// SkipInput is an unscaled forward jump; the parts are summed
type SkipInput struct {
	Seconds float64
	Minutes float64
	Hours   float64
}

// SkipOutput reports where a jump landed
type SkipOutput struct {
	Time TimeView
	// Ticks is the number of phase boundaries delivered by the jump
	Ticks int64
}

// SkipToMorningInput contains parameters for skipping to morning
type SkipToMorningInput struct{}

// SleepInput contains parameters for sleeping through the night
type SleepInput struct{}

// SleepOutput reports the time and stats after waking up
type SleepOutput struct {
	Time   TimeView
	Ticks  int64
	Vitals vitals.Status
}

// SkipToHourInput contains the target hour, fractional in [0, 24)
type SkipToHourInput struct {
	Hour float64
}

// SetTimeScaleInput contains the new time scale
type SetTimeScaleInput struct {
	Scale float64
}

// TimeScaleOutput reports the clock after a scale change
type TimeScaleOutput struct {
	Time TimeView
}

// PauseInput contains parameters for pausing
type PauseInput struct{}

// ResumeInput contains an optional scale; nil uses the configured resume scale
type ResumeInput struct {
	Scale *float64
}

// AttendClassInput names the class to attend. Empty means the class
// currently in session.
type AttendClassInput struct {
	ClassName string
}

// AttendClassOutput reports the recorded attendance and the time after
// jumping to the end of the class
type AttendClassOutput struct {
	Record campus.AttendanceRecord
	Class  campus.Class
	Time   TimeView
	Ticks  int64
}

// GetStudentInput contains parameters for reading the student
type GetStudentInput struct{}

// GetStudentOutput contains the student's stats and attendance
type GetStudentOutput struct {
	StudentID  string
	Vitals     vitals.Status
	Attendance []ClassSummary
	Records    []campus.AttendanceRecord
}

// TalkInput contains parameters for talking to an NPC
type TalkInput struct {
	NPCID    string
	Increase int
}

// TalkOutput reports the NPC after the conversation
type TalkOutput struct {
	NPC social.NPC
	// Raised is false when the NPC was already talked to today
	Raised bool
}

// EatInput is how much hunger a meal restores
type EatInput struct {
	Amount int
}

// DrinkInput is how much thirst a drink restores
type DrinkInput struct {
	Amount int
}

// VitalsOutput reports the stats after eating or drinking
type VitalsOutput struct {
	Vitals vitals.Status
}

// SaveStateInput contains parameters for saving the clock
type SaveStateInput struct{}

// SaveStateOutput reports the saved state
type SaveStateOutput struct {
	State   daytime.State
	SavedAt time.Time
}

// LoadStateInput contains parameters for loading the clock
type LoadStateInput struct{}

// LoadStateOutput reports the restored state
type LoadStateOutput struct {
	// Found is false when nothing was saved; the clock is left unchanged
	Found bool
	Time  TimeView
}
