// Package daytime implements the discretized game clock and its tick agents
package daytime

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/KirkDiggler/campus-api/internal/errors"
)

// Clock converts real elapsed time into the in-game calendar and notifies
// agents once per phase boundary crossed.
//
// A Clock is not safe for concurrent use. It is driven by a single caller
// (a frame loop or a test) and agent callbacks run synchronously inside
// Advance and the Skip family.
type Clock struct {
	cfg          Config
	phasesPerDay int64

	seconds   float64
	dayIndex  int64
	dayOfWeek DayOfWeek
	timeScale float64

	lastPhase  int64
	observed   bool
	delivering bool

	agents registry
}

// New creates a clock at Config.StartAtSeconds on day 0. Time before the
// clock existed is never delivered.
func New(cfg *Config) (*Clock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid clock config")
	}

	c := &Clock{
		cfg:          *cfg,
		phasesPerDay: cfg.phasesPerDay(),
		seconds:      cfg.StartAtSeconds,
		dayOfWeek:    cfg.StartDayOfWeek,
		timeScale:    cfg.TimeScale,
	}
	c.deliverElapsedPhases()

	return c, nil
}

// Advance moves time forward by realDeltaSeconds scaled by the time scale.
// It is called once per frame.
func (c *Clock) Advance(realDeltaSeconds float64) error {
	if err := c.checkDelta("realDeltaSeconds", realDeltaSeconds); err != nil {
		return err
	}

	scaled := realDeltaSeconds * c.timeScale
	if math.IsInf(scaled, 0) {
		return errors.OutOfRangef("scaled delta overflows: %v * %v", realDeltaSeconds, c.timeScale)
	}

	return c.addSeconds(scaled)
}

// Skip jumps forward by an exact number of simulated seconds, ignoring the
// time scale. Elapsed phases are delivered before Skip returns.
func (c *Clock) Skip(seconds float64) error {
	if err := c.checkDelta("seconds", seconds); err != nil {
		return err
	}

	return c.addSeconds(seconds)
}

// SkipMinutes is Skip in minutes
func (c *Clock) SkipMinutes(minutes float64) error {
	return c.Skip(minutes * secondsPerMinute)
}

// SkipHours is Skip in hours
func (c *Clock) SkipHours(hours float64) error {
	return c.Skip(hours * secondsPerHour)
}

// SkipToMorning jumps to the configured morning time, tomorrow if today's
// morning has already passed.
func (c *Clock) SkipToMorning() error {
	return c.Skip(c.secondsUntil(c.cfg.MorningSeconds))
}

// SkipToHour jumps to the next occurrence of hour (fractional, [0, 24)).
// Being exactly at hour skips nothing.
func (c *Clock) SkipToHour(hour float64) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateHalfOpen("hour", hour, 0, c.cfg.SecondsPerDay/secondsPerHour, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	return c.Skip(c.secondsUntil(hour * secondsPerHour))
}

// SetTimeScale changes the multiplier applied by Advance. Zero pauses.
func (c *Clock) SetTimeScale(scale float64) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("scale", scale, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	c.timeScale = scale
	return nil
}

// Pause sets the time scale to zero
func (c *Clock) Pause() {
	c.timeScale = 0
}

// Resume restores a positive time scale. Without an argument it uses
// Config.ResumeScale; the scale in effect before Pause is not remembered.
func (c *Clock) Resume(scale ...float64) error {
	if len(scale) > 1 {
		return errors.InvalidArgumentf("resume takes at most one scale, got %d", len(scale))
	}

	target := c.cfg.ResumeScale
	if len(scale) == 1 {
		target = scale[0]
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("scale", target, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	c.timeScale = target
	return nil
}

// Subscribe appends agent to the delivery list. Subscribing twice is a no-op.
// Agents added during a delivery batch start receiving ticks with the next batch.
func (c *Clock) Subscribe(agent Agent) error {
	if agent == nil {
		return errors.InvalidArgument("agent cannot be nil")
	}

	c.agents.add(agent)
	return nil
}

// Unsubscribe removes agent. Removing an unknown agent is a no-op. An agent
// removed mid-batch, including by itself, receives no further ticks.
func (c *Clock) Unsubscribe(agent Agent) {
	if agent == nil {
		return
	}
	c.agents.remove(agent)
}

// Subscribed reports whether agent is currently registered
func (c *Clock) Subscribed(agent Agent) bool {
	return agent != nil && c.agents.contains(agent)
}

// Agents returns the number of registered agents
func (c *Clock) Agents() int {
	return c.agents.len()
}

// Hours returns the fractional hour of day
func (c *Clock) Hours() float64 {
	return c.moment().Hours()
}

// Minutes returns the fractional minute within the hour
func (c *Clock) Minutes() float64 {
	return c.moment().Minutes()
}

// Seconds returns the seconds elapsed in the current day
func (c *Clock) Seconds() float64 {
	return c.seconds
}

// DayOfWeek returns the current weekday
func (c *Clock) DayOfWeek() DayOfWeek {
	return c.dayOfWeek
}

// DayIndex returns the zero-based number of days elapsed
func (c *Clock) DayIndex() int64 {
	return c.dayIndex
}

// TimeScale returns the current Advance multiplier
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// Paused reports whether the time scale is zero
func (c *Clock) Paused() bool {
	return c.timeScale == 0
}

// TimeString returns the zero-padded HH:MM time of day
func (c *Clock) TimeString() string {
	return c.moment().TimeString()
}

// DayCountString returns the 1-based day counter shown on the HUD
func (c *Clock) DayCountString() string {
	return fmt.Sprintf("%02d", c.dayIndex+1)
}

// Period returns the time-of-day bucket
func (c *Clock) Period() Period {
	return c.moment().Period()
}

// Phase returns the current phase index
func (c *Clock) Phase() int64 {
	return int64(math.Floor(c.seconds/c.cfg.PhaseLengthSeconds)) + c.dayIndex*c.phasesPerDay
}

// PhasesPerDay returns the number of phases in one day
func (c *Clock) PhasesPerDay() int64 {
	return c.phasesPerDay
}

// Config returns a copy of the clock tuning
func (c *Clock) Config() Config {
	return c.cfg
}

// Snapshot returns a read-only copy of the current state
func (c *Clock) Snapshot() Snapshot {
	return Snapshot{
		Moment:    c.moment(),
		TimeScale: c.timeScale,
		Phase:     c.Phase(),
	}
}

// State returns the persistable state
func (c *Clock) State() State {
	return State{
		DayIndex:  c.dayIndex,
		Seconds:   c.seconds,
		DayOfWeek: c.dayOfWeek,
		TimeScale: c.timeScale,
	}
}

// Restore replaces the clock state with a saved one. The phase counter is
// re-baselined, so no ticks are delivered for the jump.
func (c *Clock) Restore(state State) error {
	if c.delivering {
		return errors.FailedPrecondition("cannot restore clock state during tick delivery")
	}

	vb := errors.NewValidationBuilder()
	if state.DayIndex < 0 || state.DayIndex > c.MaxDayIndex() {
		vb.Fieldf("DayIndex", "must be in [0, %d], got %d", c.MaxDayIndex(), state.DayIndex)
	}
	errors.ValidateHalfOpen("Seconds", state.Seconds, 0, c.cfg.SecondsPerDay, vb)
	if !state.DayOfWeek.Valid() {
		vb.Fieldf("DayOfWeek", "unknown weekday %d", int(state.DayOfWeek))
	}
	errors.ValidateNonNegative("TimeScale", state.TimeScale, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	c.dayIndex = state.DayIndex
	c.seconds = state.Seconds
	c.dayOfWeek = state.DayOfWeek
	c.timeScale = state.TimeScale

	c.observed = false
	c.deliverElapsedPhases()

	return nil
}

func (c *Clock) checkDelta(field string, value float64) error {
	if c.delivering {
		return errors.FailedPrecondition("clock cannot be advanced from inside a tick callback")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative(field, value, vb)
	return vb.Build()
}

// dayIndexHeadroom keeps float rounding in the day count from pushing
// Phase past int64
const dayIndexHeadroom = 1 << 10

// MaxDayIndex is the last day whose phases fit in an int64 phase index
func (c *Clock) MaxDayIndex() int64 {
	return math.MaxInt64/c.phasesPerDay - dayIndexHeadroom
}

// addSeconds mutates time, normalizes rollovers, then delivers. The clock
// state is final before any agent runs. A delta that would run past
// MaxDayIndex is rejected with the state unchanged.
func (c *Clock) addSeconds(delta float64) error {
	if delta == 0 {
		return nil
	}

	total := c.seconds + delta
	days := math.Floor(total / c.cfg.SecondsPerDay)
	if days > float64(c.MaxDayIndex()-c.dayIndex) {
		return errors.OutOfRangef("advancing %v seconds runs past day %d", delta, c.MaxDayIndex())
	}

	c.seconds = total
	c.rollover()
	c.deliverElapsedPhases()
	return nil
}

// rollover folds any whole days out of seconds. A single call may cross
// many days. math.Mod is exact, so seconds always lands in [0, spd); the
// day count is computed from the remainder and is only approximate once
// seconds exceeds 2^53 (about 285 million years at 86400s days), which
// addSeconds still allows up to MaxDayIndex.
func (c *Clock) rollover() {
	spd := c.cfg.SecondsPerDay
	if c.seconds < spd {
		return
	}

	rem := math.Mod(c.seconds, spd)
	n := int64(math.Round((c.seconds - rem) / spd))
	c.seconds = rem

	c.dayIndex += n
	c.dayOfWeek = c.dayOfWeek.Add(n)

	slog.Debug("day rollover",
		"days_crossed", n,
		"day_index", c.dayIndex,
		"day_of_week", c.dayOfWeek.String())
}

// deliverElapsedPhases replays every phase boundary between the last observed
// phase and the current one, invoking each agent once per boundary in
// subscription order.
//
// lastPhase advances before each boundary is delivered. If an agent panics,
// the boundary it panicked on counts as delivered, agents after it miss that
// boundary, and the boundaries after it stay pending: the next Advance or
// Skip delivers them first, carrying that later call's Now.
func (c *Clock) deliverElapsedPhases() {
	target := c.Phase()

	if !c.observed {
		c.lastPhase = target
		c.observed = true
		return
	}

	if c.lastPhase >= target {
		return
	}

	c.delivering = true
	defer func() { c.delivering = false }()

	agents := c.agents.snapshot()
	now := c.Snapshot()

	for c.lastPhase < target {
		c.lastPhase++
		tick := Tick{
			Phase:    c.lastPhase,
			Boundary: c.momentOfPhase(c.lastPhase),
			Now:      now,
		}

		for _, agent := range agents {
			if !c.agents.contains(agent) {
				continue
			}
			agent.OnTimeTick(tick)
		}
	}
}

func (c *Clock) moment() Moment {
	return Moment{
		DayIndex:  c.dayIndex,
		Seconds:   c.seconds,
		DayOfWeek: c.dayOfWeek,
	}
}

// momentOfPhase returns the calendar position where phase starts
func (c *Clock) momentOfPhase(phase int64) Moment {
	day := phase / c.phasesPerDay
	offset := phase % c.phasesPerDay

	return Moment{
		DayIndex:  day,
		Seconds:   float64(offset) * c.cfg.PhaseLengthSeconds,
		DayOfWeek: c.dayOfWeek.Add(day - c.dayIndex),
	}
}

// secondsUntil returns the forward distance to a time of day, wrapping to
// tomorrow when it has already passed
func (c *Clock) secondsUntil(target float64) float64 {
	if c.seconds > target {
		return c.cfg.SecondsPerDay - c.seconds + target
	}
	return target - c.seconds
}
