package daytime

import (
	"math"

	"github.com/KirkDiggler/campus-api/internal/errors"
)

// Defaults match the tuning the game shipped with.
const (
	DefaultSecondsPerDay      = 86400.0
	DefaultPhaseLengthSeconds = 900.0   // 15 minute ticks
	DefaultStartAtSeconds     = 28800.0 // 08:00
	DefaultMorningSeconds     = 28800.0 // 08:00
	DefaultTimeScale          = 60.0
	DefaultResumeScale        = 100.0
)

// Config holds the clock tuning
type Config struct {
	// SecondsPerDay is the length of one in-game day in simulated seconds
	SecondsPerDay float64

	// PhaseLengthSeconds is the tick granularity. Must divide SecondsPerDay exactly.
	PhaseLengthSeconds float64

	// StartAtSeconds is the time of day the clock starts at, in [0, SecondsPerDay)
	StartAtSeconds float64

	// StartDayOfWeek is the weekday of day index 0
	StartDayOfWeek DayOfWeek

	// MorningSeconds is the wake-up time used by SkipToMorning
	MorningSeconds float64

	// TimeScale multiplies real elapsed seconds in Advance. Zero starts paused.
	TimeScale float64

	// ResumeScale is the scale Resume uses when called without one
	ResumeScale float64
}

// DefaultConfig returns the shipped tuning
func DefaultConfig() *Config {
	return &Config{
		SecondsPerDay:      DefaultSecondsPerDay,
		PhaseLengthSeconds: DefaultPhaseLengthSeconds,
		StartAtSeconds:     DefaultStartAtSeconds,
		StartDayOfWeek:     Sunday,
		MorningSeconds:     DefaultMorningSeconds,
		TimeScale:          DefaultTimeScale,
		ResumeScale:        DefaultResumeScale,
	}
}

// Validate rejects tuning that would break the phase index
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("SecondsPerDay", c.SecondsPerDay, vb)
	errors.ValidatePositive("PhaseLengthSeconds", c.PhaseLengthSeconds, vb)

	if c.SecondsPerDay > 0 && c.PhaseLengthSeconds > 0 &&
		!math.IsInf(c.SecondsPerDay, 0) && !math.IsInf(c.PhaseLengthSeconds, 0) {
		if math.Mod(c.SecondsPerDay, c.PhaseLengthSeconds) != 0 {
			vb.Fieldf("PhaseLengthSeconds", "must evenly divide SecondsPerDay (%v)", c.SecondsPerDay)
		}
	}

	if !c.StartDayOfWeek.Valid() {
		vb.Fieldf("StartDayOfWeek", "unknown weekday %d", int(c.StartDayOfWeek))
	}

	if c.SecondsPerDay > 0 {
		errors.ValidateHalfOpen("StartAtSeconds", c.StartAtSeconds, 0, c.SecondsPerDay, vb)
		errors.ValidateHalfOpen("MorningSeconds", c.MorningSeconds, 0, c.SecondsPerDay, vb)
	}

	errors.ValidateNonNegative("TimeScale", c.TimeScale, vb)
	errors.ValidatePositive("ResumeScale", c.ResumeScale, vb)

	return vb.Build()
}

func (c *Config) phasesPerDay() int64 {
	return int64(c.SecondsPerDay / c.PhaseLengthSeconds)
}
