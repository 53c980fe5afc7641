// Package attendance marks timetable classes absent when they start and lets
// the student check in during the first half of each class.
package attendance

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
	"github.com/KirkDiggler/campus-api/internal/pkg/idgen"
)

// Config holds the tracker dependencies
type Config struct {
	StudentID   string
	Timetable   campus.Timetable
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("StudentID", c.StudentID, vb)
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	return c.Timetable.Validate()
}

// Changes are the record mutations since the last Drain
type Changes struct {
	// Appended holds records created since the last drain
	Appended []campus.AttendanceRecord

	// Rewritten is set when an existing record changed; the full list must be
	// stored again
	Rewritten bool
}

// Empty reports whether there is nothing to persist
func (c Changes) Empty() bool {
	return len(c.Appended) == 0 && !c.Rewritten
}

// Tracker is a daytime.Agent that keeps one student's attendance
type Tracker struct {
	studentID string
	timetable campus.Timetable
	ids       idgen.Generator
	clock     clock.Clock

	records []campus.AttendanceRecord
	// tracked holds the classes already recorded, keyed by class and day
	tracked map[string]int64

	pending   []campus.AttendanceRecord
	rewritten bool
}

var _ daytime.Agent = (*Tracker)(nil)

// New creates a tracker with no records
func New(cfg *Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid attendance config")
	}

	return &Tracker{
		studentID: cfg.StudentID,
		timetable: slices.Clone(cfg.Timetable),
		ids:       cfg.IDGenerator,
		clock:     cfg.Clock,
		tracked:   make(map[string]int64),
	}, nil
}

// OnTimeTick records an absence for every class on the boundary's day whose
// start hour has been reached and that has not been recorded yet. Ticks
// delivered by a long skip each carry their own boundary, so classes slept
// through are still recorded.
func (t *Tracker) OnTimeTick(tick daytime.Tick) {
	at := tick.Boundary
	hour := at.Hours()

	for _, class := range t.timetable.On(at.DayOfWeek) {
		if hour < class.StartHour {
			continue
		}
		if t.isTracked(class, at.DayIndex) {
			continue
		}

		t.track(class, at)
		slog.Debug("class started, marked absent",
			"student_id", t.studentID,
			"class", class.Name,
			"day_index", at.DayIndex,
			"start_hour", class.StartHour)
	}

	t.purgeBefore(at.DayIndex)
}

// StudentID returns the tracked student
func (t *Tracker) StudentID() string {
	return t.studentID
}

// Timetable returns the weekly schedule
func (t *Tracker) Timetable() campus.Timetable {
	return slices.Clone(t.timetable)
}

// CurrentClass returns the class in session at now
func (t *Tracker) CurrentClass(now daytime.Moment) (campus.Class, bool) {
	return t.timetable.Current(now.DayOfWeek, now.Hours())
}

// CanAttend reports whether the named class meets today, is within its
// check-in window and has not been attended yet
func (t *Tracker) CanAttend(name string, now daytime.Moment) bool {
	class, ok := t.timetable.Find(name, now.DayOfWeek)
	if !ok {
		return false
	}
	return class.WithinAttendanceWindow(now.Hours()) && !t.attended(class, now.DayIndex)
}

// MarkPresent flips today's record for the named class to present
func (t *Tracker) MarkPresent(name string, now daytime.Moment) (*campus.AttendanceRecord, error) {
	class, ok := t.timetable.Find(name, now.DayOfWeek)
	if !ok {
		return nil, errors.NotFoundf("no class %q on %s", name, now.DayOfWeek)
	}

	hour := now.Hours()
	if !class.WithinAttendanceWindow(hour) {
		return nil, errors.FailedPreconditionf("%s can only be attended between %s, it is %s",
			name, windowString(class), now.TimeString()).
			WithMeta("class", name)
	}
	if t.attended(class, now.DayIndex) {
		return nil, errors.FailedPreconditionf("%s already attended today", name).
			WithMeta("class", name)
	}

	if !t.isTracked(class, now.DayIndex) {
		t.track(class, now)
	}

	for i := len(t.records) - 1; i >= 0; i-- {
		rec := &t.records[i]
		if rec.ClassName != class.Name || rec.DayIndex != now.DayIndex || rec.DayOfWeek != class.DayOfWeek || rec.Attended {
			continue
		}

		rec.Attended = true
		rec.AttendanceHour = hour
		rec.RecordedAt = t.clock.Now()
		t.markRewritten(rec.ID)

		slog.Info("attendance recorded",
			"student_id", t.studentID,
			"class", class.Name,
			"day_index", now.DayIndex,
			"time", now.TimeString())

		out := *rec
		return &out, nil
	}

	return nil, errors.Internalf("no absent record for %s on day %d", name, now.DayIndex)
}

// Records returns a copy of every record in creation order
func (t *Tracker) Records() []campus.AttendanceRecord {
	return slices.Clone(t.records)
}

// Load replaces the records, typically with ones read back from storage.
// Pending changes are discarded.
func (t *Tracker) Load(records []campus.AttendanceRecord) {
	t.records = slices.Clone(records)
	t.tracked = make(map[string]int64, len(records))
	for _, rec := range t.records {
		t.tracked[trackKey(rec.ClassName, rec.DayOfWeek, rec.DayIndex)] = rec.DayIndex
	}
	t.pending = nil
	t.rewritten = false
}

// Drain returns and clears the changes made since the last call
func (t *Tracker) Drain() Changes {
	changes := Changes{Rewritten: t.rewritten}
	if !t.rewritten {
		changes.Appended = t.pending
	}
	t.pending = nil
	t.rewritten = false
	return changes
}

// RequireRewrite makes the next Drain report a full rewrite. It is used
// after a failed store so nothing drained is lost.
func (t *Tracker) RequireRewrite() {
	t.pending = nil
	t.rewritten = true
}

// AttendedHours sums the rounded durations of attended meetings
func (t *Tracker) AttendedHours(name string) int {
	return t.hours(name, true)
}

// TotalHours sums the rounded durations of every recorded meeting
func (t *Tracker) TotalHours(name string) int {
	return t.hours(name, false)
}

// Percentage is AttendedHours over TotalHours, 0 when nothing was recorded
func (t *Tracker) Percentage(name string) float64 {
	total := t.TotalHours(name)
	if total == 0 {
		return 0
	}
	return float64(t.AttendedHours(name)) / float64(total) * 100
}

func (t *Tracker) hours(name string, attendedOnly bool) int {
	total := 0
	for _, rec := range t.records {
		if rec.ClassName != name || (attendedOnly && !rec.Attended) {
			continue
		}
		if class, ok := t.timetable.Find(name, rec.DayOfWeek); ok {
			total += class.DurationHours()
		}
	}
	return total
}

func (t *Tracker) track(class campus.Class, at daytime.Moment) {
	t.tracked[trackKey(class.Name, class.DayOfWeek, at.DayIndex)] = at.DayIndex

	rec := campus.AttendanceRecord{
		ID:             t.ids.Generate(),
		StudentID:      t.studentID,
		ClassName:      class.Name,
		DayOfWeek:      class.DayOfWeek,
		DayIndex:       at.DayIndex,
		AttendanceHour: at.Hours(),
		RecordedAt:     t.clock.Now(),
	}
	t.records = append(t.records, rec)
	t.pending = append(t.pending, rec)
}

// markRewritten flags a change to a stored record. A record still pending
// has not been stored, so its copy in pending is updated instead.
func (t *Tracker) markRewritten(id string) {
	for i := range t.pending {
		if t.pending[i].ID != id {
			continue
		}
		for _, rec := range t.records {
			if rec.ID == id {
				t.pending[i] = rec
				return
			}
		}
	}
	t.rewritten = true
}

func (t *Tracker) isTracked(class campus.Class, dayIndex int64) bool {
	_, ok := t.tracked[trackKey(class.Name, class.DayOfWeek, dayIndex)]
	return ok
}

func (t *Tracker) attended(class campus.Class, dayIndex int64) bool {
	for _, rec := range t.records {
		if rec.ClassName == class.Name && rec.DayIndex == dayIndex && rec.DayOfWeek == class.DayOfWeek && rec.Attended {
			return true
		}
	}
	return false
}

func (t *Tracker) purgeBefore(dayIndex int64) {
	for key, day := range t.tracked {
		if day < dayIndex {
			delete(t.tracked, key)
		}
	}
}

func trackKey(name string, day daytime.DayOfWeek, dayIndex int64) string {
	return fmt.Sprintf("%s_%s_%d", name, day, dayIndex)
}

func windowString(c campus.Class) string {
	deadline := campus.Class{StartHour: c.StartHour, EndHour: c.AttendanceDeadline()}
	return deadline.TimeString()
}
