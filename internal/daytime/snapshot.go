package daytime

import (
	"fmt"
	"math"
)

const (
	secondsPerHour   = 3600.0
	secondsPerMinute = 60.0
)

// Moment is a point on the in-game calendar
type Moment struct {
	DayIndex  int64
	Seconds   float64
	DayOfWeek DayOfWeek
}

// Hours returns the fractional hour of day
func (m Moment) Hours() float64 {
	return m.Seconds / secondsPerHour
}

// Minutes returns the fractional minute within the current hour
func (m Moment) Minutes() float64 {
	return math.Mod(m.Seconds, secondsPerHour) / secondsPerMinute
}

// TimeString formats the moment as zero-padded HH:MM, truncating seconds
func (m Moment) TimeString() string {
	return fmt.Sprintf("%02d:%02d", int(m.Hours()), int(m.Minutes()))
}

// Period returns the time-of-day bucket
func (m Moment) Period() Period {
	return PeriodAt(m.Hours())
}

// Snapshot is a read-only copy of the clock state
type Snapshot struct {
	Moment
	TimeScale float64
	Phase     int64
}

// Paused reports whether the snapshot was taken with a zero time scale
func (s Snapshot) Paused() bool {
	return s.TimeScale == 0
}

// Tick is handed to agents once per elapsed phase boundary.
//
// Boundary is where the phase being delivered starts. Now is the clock state
// after the mutation that caused the batch; it is the same for every tick in a
// batch, so an agent sees the post-skip time on every tick of a skip.
type Tick struct {
	Phase    int64
	Boundary Moment
	Now      Snapshot
}

// FirstOfDay reports whether this tick's boundary is midnight
func (t Tick) FirstOfDay() bool {
	return t.Boundary.Seconds == 0
}

// State is the persistable part of the clock
type State struct {
	DayIndex  int64     `json:"day_index"`
	Seconds   float64   `json:"seconds"`
	DayOfWeek DayOfWeek `json:"day_of_week"`
	TimeScale float64   `json:"time_scale"`
}

// Period buckets the day the same way the HUD time icon does
type Period string

// Periods
const (
	PeriodMidnight      Period = "midnight"       // [0, 6)
	PeriodMorning       Period = "morning"        // [6, 12)
	PeriodNoon          Period = "noon"           // [12, 15)
	PeriodAfternoon     Period = "afternoon"      // [15, 17)
	PeriodLateAfternoon Period = "late_afternoon" // [17, 19)
	PeriodEvening       Period = "evening"        // [19, 24)
)

// PeriodAt maps a fractional hour to its Period
func PeriodAt(hour float64) Period {
	switch {
	case hour < 6:
		return PeriodMidnight
	case hour < 12:
		return PeriodMorning
	case hour < 15:
		return PeriodNoon
	case hour < 17:
		return PeriodAfternoon
	case hour < 19:
		return PeriodLateAfternoon
	default:
		return PeriodEvening
	}
}
