// Package campus provides the timetable, attendance and stat data structures
package campus

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/errors"
)

// attendableFraction is the share of a class, from its start, during which
// a student can still check in
const attendableFraction = 0.5

// Class is one weekly timetable slot. Hours are fractional, 24h.
type Class struct {
	Name      string            `json:"name"`
	DayOfWeek daytime.DayOfWeek `json:"day_of_week"`
	StartHour float64           `json:"start_hour"`
	EndHour   float64           `json:"end_hour"`
	Teacher   string            `json:"teacher,omitempty"`
	Room      string            `json:"room,omitempty"`
}

// Validate checks the slot is well formed
func (c *Class) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", c.Name, vb)
	if !c.DayOfWeek.Valid() {
		vb.Fieldf("DayOfWeek", "unknown weekday %d", int(c.DayOfWeek))
	}
	errors.ValidateHalfOpen("StartHour", c.StartHour, 0, 24, vb)
	if c.EndHour <= c.StartHour || c.EndHour > 24 {
		vb.Fieldf("EndHour", "must be in (%v, 24], got %v", c.StartHour, c.EndHour)
	}
	return vb.Build()
}

// IsToday reports whether the class meets on day
func (c *Class) IsToday(day daytime.DayOfWeek) bool {
	return c.DayOfWeek == day
}

// IsActive reports whether the class is in session at hour on day
func (c *Class) IsActive(day daytime.DayOfWeek, hour float64) bool {
	return c.IsToday(day) && hour >= c.StartHour && hour <= c.EndHour
}

// AttendanceDeadline is the last hour a student can still check in
func (c *Class) AttendanceDeadline() float64 {
	return c.StartHour + (c.EndHour-c.StartHour)*attendableFraction
}

// WithinAttendanceWindow reports whether hour falls in [start, deadline]
func (c *Class) WithinAttendanceWindow(hour float64) bool {
	return hour >= c.StartHour && hour <= c.AttendanceDeadline()
}

// DurationHours is the class length rounded to whole hours
func (c *Class) DurationHours() int {
	return int(math.Round(c.EndHour - c.StartHour))
}

// TimeString formats the slot as "HH:MM - HH:MM"
func (c *Class) TimeString() string {
	return fmt.Sprintf("%s - %s", hourString(c.StartHour), hourString(c.EndHour))
}

func hourString(h float64) string {
	whole := int(h)
	minute := int((h - float64(whole)) * 60)
	return fmt.Sprintf("%02d:%02d", whole, minute)
}

// Timetable is the weekly schedule
type Timetable []Class

// Validate checks every slot
func (t Timetable) Validate() error {
	for i := range t {
		if err := t[i].Validate(); err != nil {
			return errors.Wrapf(err, "class %d", i)
		}
	}
	return nil
}

// On returns the classes meeting on day, in timetable order
func (t Timetable) On(day daytime.DayOfWeek) []Class {
	var out []Class
	for _, c := range t {
		if c.IsToday(day) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the named class meeting on day
func (t Timetable) Find(name string, day daytime.DayOfWeek) (Class, bool) {
	for _, c := range t {
		if c.Name == name && c.IsToday(day) {
			return c, true
		}
	}
	return Class{}, false
}

// Current returns the first class in session at hour on day
func (t Timetable) Current(day daytime.DayOfWeek, hour float64) (Class, bool) {
	for _, c := range t {
		if c.IsActive(day, hour) {
			return c, true
		}
	}
	return Class{}, false
}
