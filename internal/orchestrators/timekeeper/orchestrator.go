// Package timekeeper serializes access to the game clock so it can be driven
// by the frame runner and RPC callers at once, and wires the clock to its
// agents and storage.
package timekeeper

//go:generate mockgen -destination=mock/mock_service.go -package=timekeepermock github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
	attendancerepo "github.com/KirkDiggler/campus-api/internal/repositories/attendance"
	clockstate "github.com/KirkDiggler/campus-api/internal/repositories/clock_state"
	"github.com/KirkDiggler/campus-api/internal/services/attendance"
	"github.com/KirkDiggler/campus-api/internal/services/social"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

// Service defines the timekeeping operations
type Service interface {
	// Frame advances the clock by the wall time elapsed since the previous frame
	Frame(ctx context.Context, now time.Time) error

	GetTime(ctx context.Context, input *GetTimeInput) (*GetTimeOutput, error)
	Skip(ctx context.Context, input *SkipInput) (*SkipOutput, error)
	SkipToMorning(ctx context.Context, input *SkipToMorningInput) (*SkipOutput, error)
	SkipToHour(ctx context.Context, input *SkipToHourInput) (*SkipOutput, error)
	Sleep(ctx context.Context, input *SleepInput) (*SleepOutput, error)

	SetTimeScale(ctx context.Context, input *SetTimeScaleInput) (*TimeScaleOutput, error)
	Pause(ctx context.Context, input *PauseInput) (*TimeScaleOutput, error)
	Resume(ctx context.Context, input *ResumeInput) (*TimeScaleOutput, error)

	AttendClass(ctx context.Context, input *AttendClassInput) (*AttendClassOutput, error)
	GetStudent(ctx context.Context, input *GetStudentInput) (*GetStudentOutput, error)
	Talk(ctx context.Context, input *TalkInput) (*TalkOutput, error)
	Eat(ctx context.Context, input *EatInput) (*VitalsOutput, error)
	Drink(ctx context.Context, input *DrinkInput) (*VitalsOutput, error)

	SaveState(ctx context.Context, input *SaveStateInput) (*SaveStateOutput, error)
	LoadState(ctx context.Context, input *LoadStateInput) (*LoadStateOutput, error)
}

// DefaultMaxSkip bounds a single Skip, and the game time one frame may cover
const DefaultMaxSkip = 28 * 24 * time.Hour

// ScaleObserver is notified after the time scale changes
type ScaleObserver interface {
	ObserveTimeScale(scale float64)
}

// Config holds the dependencies for the timekeeper
type Config struct {
	WorldID    string
	Clock      *daytime.Clock
	Vitals     *vitals.Agent
	Attendance *attendance.Tracker
	Roster     *social.Roster

	// Agents are subscribed after the built-in ones, in order
	Agents []daytime.Agent

	// ScaleObservers are told about time scale changes, which deliver no ticks
	ScaleObservers []ScaleObserver

	// MaxSkip defaults to DefaultMaxSkip
	MaxSkip time.Duration

	ClockStateRepo clockstate.Repository
	AttendanceRepo attendancerepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("WorldID", c.WorldID, vb)
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Vitals == nil {
		vb.RequiredField("Vitals")
	}
	if c.Attendance == nil {
		vb.RequiredField("Attendance")
	}
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.ClockStateRepo == nil {
		vb.RequiredField("ClockStateRepo")
	}
	if c.AttendanceRepo == nil {
		vb.RequiredField("AttendanceRepo")
	}
	for i, a := range c.Agents {
		if a == nil {
			vb.Fieldf("Agents", "agent %d is nil", i)
		}
	}
	if c.MaxSkip < 0 {
		vb.Fieldf("MaxSkip", "must not be negative, got %s", c.MaxSkip)
	}
	for i, so := range c.ScaleObservers {
		if so == nil {
			vb.Fieldf("ScaleObservers", "observer %d is nil", i)
		}
	}

	return vb.Build()
}

type orchestrator struct {
	mu sync.Mutex

	worldID    string
	clock      *daytime.Clock
	vitals     *vitals.Agent
	attendance *attendance.Tracker
	roster     *social.Roster

	clockStateRepo clockstate.Repository
	attendanceRepo attendancerepo.Repository

	scaleObservers []ScaleObserver
	maxSkip        time.Duration

	lastFrame time.Time
}

// NewOrchestrator subscribes the agents to the clock and returns the service.
// The clock must not be driven directly once handed over.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	agents := []daytime.Agent{cfg.Vitals, cfg.Attendance}
	for _, npc := range cfg.Roster.All() {
		agents = append(agents, npc)
	}
	agents = append(agents, cfg.Agents...)

	for _, a := range agents {
		if err := cfg.Clock.Subscribe(a); err != nil {
			return nil, errors.Wrap(err, "failed to subscribe agent")
		}
	}

	maxSkip := cfg.MaxSkip
	if maxSkip == 0 {
		maxSkip = DefaultMaxSkip
	}

	return &orchestrator{
		worldID:        cfg.WorldID,
		clock:          cfg.Clock,
		vitals:         cfg.Vitals,
		attendance:     cfg.Attendance,
		roster:         cfg.Roster,
		clockStateRepo: cfg.ClockStateRepo,
		attendanceRepo: cfg.AttendanceRepo,
		scaleObservers: cfg.ScaleObservers,
		maxSkip:        maxSkip,
	}, nil
}

// Frame advances by the wall time since the last frame. The first frame,
// and any frame whose time goes backwards, only sets the reference point.
// A frame never covers more than MaxSkip of game time; a longer stall is
// cut short.
func (o *orchestrator) Frame(ctx context.Context, now time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lastFrame.IsZero() || now.Before(o.lastFrame) {
		o.lastFrame = now
		return nil
	}

	delta := now.Sub(o.lastFrame).Seconds()
	o.lastFrame = now

	if scale := o.clock.TimeScale(); scale > 0 && delta*scale > o.maxSkip.Seconds() {
		slog.WarnContext(ctx, "frame covers too much game time, cutting it short",
			"world_id", o.worldID,
			"real_seconds", delta,
			"time_scale", scale,
			"max_skip", o.maxSkip.String())
		delta = o.maxSkip.Seconds() / scale
	}

	if err := o.clock.Advance(delta); err != nil {
		return errors.Wrap(err, "failed to advance clock")
	}

	return o.flushAttendance(ctx)
}

func (o *orchestrator) GetTime(_ context.Context, _ *GetTimeInput) (*GetTimeOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &GetTimeOutput{Time: o.view()}, nil
}

func (o *orchestrator) Skip(ctx context.Context, input *SkipInput) (*SkipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("Seconds", input.Seconds, vb)
	errors.ValidateNonNegative("Minutes", input.Minutes, vb)
	errors.ValidateNonNegative("Hours", input.Hours, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	total := input.Seconds + input.Minutes*60 + input.Hours*3600
	if total > o.maxSkip.Seconds() {
		return nil, errors.OutOfRangef("cannot skip %vs at once, the limit is %s", total, o.maxSkip)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ticks, err := o.jump(ctx, func() error { return o.clock.Skip(total) })
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "skipped time",
		"world_id", o.worldID,
		"seconds", total,
		"ticks", ticks,
		"time", o.clock.TimeString())

	return &SkipOutput{Time: o.view(), Ticks: ticks}, nil
}

func (o *orchestrator) SkipToMorning(ctx context.Context, _ *SkipToMorningInput) (*SkipOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ticks, err := o.jump(ctx, o.clock.SkipToMorning)
	if err != nil {
		return nil, err
	}

	return &SkipOutput{Time: o.view(), Ticks: ticks}, nil
}

func (o *orchestrator) SkipToHour(ctx context.Context, input *SkipToHourInput) (*SkipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ticks, err := o.jump(ctx, func() error { return o.clock.SkipToHour(input.Hour) })
	if err != nil {
		return nil, err
	}

	return &SkipOutput{Time: o.view(), Ticks: ticks}, nil
}

// Sleep restores health and happiness, then sleeps until morning
func (o *orchestrator) Sleep(ctx context.Context, _ *SleepInput) (*SleepOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.vitals.Dead() {
		return nil, errors.FailedPrecondition("student is dead")
	}

	o.vitals.FullHealth()
	o.vitals.FullHappiness()

	ticks, err := o.jump(ctx, o.clock.SkipToMorning)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "student slept",
		"world_id", o.worldID,
		"day_index", o.clock.DayIndex(),
		"ticks", ticks)

	return &SleepOutput{Time: o.view(), Ticks: ticks, Vitals: o.vitals.Status()}, nil
}

func (o *orchestrator) SetTimeScale(_ context.Context, input *SetTimeScaleInput) (*TimeScaleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.clock.SetTimeScale(input.Scale); err != nil {
		return nil, err
	}
	o.scaleChanged()

	return &TimeScaleOutput{Time: o.view()}, nil
}

func (o *orchestrator) Pause(_ context.Context, _ *PauseInput) (*TimeScaleOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.clock.Pause()
	o.scaleChanged()
	return &TimeScaleOutput{Time: o.view()}, nil
}

func (o *orchestrator) Resume(_ context.Context, input *ResumeInput) (*TimeScaleOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var err error
	if input != nil && input.Scale != nil {
		err = o.clock.Resume(*input.Scale)
	} else {
		err = o.clock.Resume()
	}
	if err != nil {
		return nil, err
	}
	o.scaleChanged()

	return &TimeScaleOutput{Time: o.view()}, nil
}

// AttendClass checks the student in and jumps to the end of the class. The
// time scale in effect before the call is unchanged.
func (o *orchestrator) AttendClass(ctx context.Context, input *AttendClassInput) (*AttendClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock.Snapshot().Moment

	var (
		class campus.Class
		ok    bool
	)
	if input.ClassName == "" {
		class, ok = o.attendance.CurrentClass(now)
		if !ok {
			return nil, errors.NotFoundf("no class in session on %s at %s", now.DayOfWeek, now.TimeString())
		}
	} else {
		class, ok = o.attendance.Timetable().Find(input.ClassName, now.DayOfWeek)
		if !ok {
			return nil, errors.NotFoundf("no class %q on %s", input.ClassName, now.DayOfWeek)
		}
	}

	record, err := o.attendance.MarkPresent(class.Name, now)
	if err != nil {
		return nil, err
	}

	remaining := class.EndHour*3600 - now.Seconds
	ticks, err := o.jump(ctx, func() error {
		if remaining <= 0 {
			return nil
		}
		return o.clock.Skip(remaining)
	})
	if err != nil {
		return nil, err
	}

	return &AttendClassOutput{
		Record: *record,
		Class:  class,
		Time:   o.view(),
		Ticks:  ticks,
	}, nil
}

func (o *orchestrator) GetStudent(_ context.Context, _ *GetStudentInput) (*GetStudentOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var summaries []ClassSummary
	seen := make(map[string]bool)
	for _, class := range o.attendance.Timetable() {
		if seen[class.Name] {
			continue
		}
		seen[class.Name] = true

		summaries = append(summaries, ClassSummary{
			ClassName:     class.Name,
			AttendedHours: o.attendance.AttendedHours(class.Name),
			TotalHours:    o.attendance.TotalHours(class.Name),
			Percentage:    o.attendance.Percentage(class.Name),
		})
	}

	return &GetStudentOutput{
		StudentID:  o.attendance.StudentID(),
		Vitals:     o.vitals.Status(),
		Attendance: summaries,
		Records:    o.attendance.Records(),
	}, nil
}

func (o *orchestrator) Talk(ctx context.Context, input *TalkInput) (*TalkOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("NPCID", input.NPCID, vb)
	if input.Increase < 0 {
		vb.Fieldf("Increase", "must not be negative, got %d", input.Increase)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	npc, err := o.roster.Get(input.NPCID)
	if err != nil {
		return nil, err
	}

	raised := npc.Talk(input.Increase)
	slog.DebugContext(ctx, "talked to npc",
		"npc_id", npc.ID,
		"relationship", npc.Relationship,
		"raised", raised)

	return &TalkOutput{NPC: *npc, Raised: raised}, nil
}

// Eat restores hunger
func (o *orchestrator) Eat(_ context.Context, input *EatInput) (*VitalsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.consume(input.Amount, o.vitals.Eat)
}

// Drink restores thirst
func (o *orchestrator) Drink(_ context.Context, input *DrinkInput) (*VitalsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.consume(input.Amount, o.vitals.Drink)
}

func (o *orchestrator) consume(amount int, apply func(int)) (*VitalsOutput, error) {
	if amount <= 0 {
		return nil, errors.NewValidationBuilder().
			Fieldf("Amount", "must be positive, got %d", amount).
			Build()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.vitals.Dead() {
		return nil, errors.FailedPrecondition("student is dead")
	}
	apply(amount)

	return &VitalsOutput{Vitals: o.vitals.Status()}, nil
}

// SaveState stores the clock and any unsaved attendance
func (o *orchestrator) SaveState(ctx context.Context, _ *SaveStateInput) (*SaveStateOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.flushAttendance(ctx); err != nil {
		return nil, err
	}

	out, err := o.clockStateRepo.Save(ctx, clockstate.SaveInput{
		WorldID: o.worldID,
		State:   o.clock.State(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save clock state")
	}

	slog.InfoContext(ctx, "saved world state",
		"world_id", o.worldID,
		"day_index", out.Record.State.DayIndex,
		"time", o.clock.TimeString())

	return &SaveStateOutput{State: out.Record.State, SavedAt: out.Record.SavedAt}, nil
}

// LoadState restores the clock and attendance records. Restoring delivers
// no ticks.
func (o *orchestrator) LoadState(ctx context.Context, _ *LoadStateInput) (*LoadStateOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	got, err := o.clockStateRepo.Get(ctx, clockstate.GetInput{WorldID: o.worldID})
	if err != nil {
		if errors.IsNotFound(err) {
			slog.InfoContext(ctx, "no saved world state, starting fresh", "world_id", o.worldID)
			return &LoadStateOutput{Found: false, Time: o.view()}, nil
		}
		return nil, errors.Wrap(err, "failed to load clock state")
	}

	listed, err := o.attendanceRepo.List(ctx, attendancerepo.ListInput{StudentID: o.attendance.StudentID()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load attendance")
	}

	if err := o.clock.Restore(got.Record.State); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "saved clock state is invalid")
	}
	o.attendance.Load(listed.Records)
	o.scaleChanged()

	slog.InfoContext(ctx, "restored world state",
		"world_id", o.worldID,
		"day_index", o.clock.DayIndex(),
		"time", o.clock.TimeString(),
		"records", len(listed.Records))

	return &LoadStateOutput{Found: true, Time: o.view()}, nil
}

// jump runs a clock mutation and persists what the agents recorded. It
// returns the number of phase boundaries crossed.
func (o *orchestrator) jump(ctx context.Context, fn func() error) (int64, error) {
	before := o.clock.Phase()
	if err := fn(); err != nil {
		return 0, err
	}
	ticks := o.clock.Phase() - before

	if err := o.flushAttendance(ctx); err != nil {
		return ticks, err
	}
	return ticks, nil
}

func (o *orchestrator) flushAttendance(ctx context.Context) error {
	changes := o.attendance.Drain()
	if changes.Empty() {
		return nil
	}

	studentID := o.attendance.StudentID()

	var err error
	if changes.Rewritten {
		_, err = o.attendanceRepo.Replace(ctx, attendancerepo.ReplaceInput{
			StudentID: studentID,
			Records:   o.attendance.Records(),
		})
	} else {
		_, err = o.attendanceRepo.Append(ctx, attendancerepo.AppendInput{
			StudentID: studentID,
			Records:   changes.Appended,
		})
	}
	if err != nil {
		o.attendance.RequireRewrite()
		return errors.Wrap(err, "failed to store attendance")
	}

	return nil
}

func (o *orchestrator) scaleChanged() {
	scale := o.clock.TimeScale()
	for _, so := range o.scaleObservers {
		so.ObserveTimeScale(scale)
	}
}

func (o *orchestrator) view() TimeView {
	return TimeView{
		Snapshot: o.clock.Snapshot(),
		Clock:    o.clock.TimeString(),
		DayCount: o.clock.DayCountString(),
		Period:   o.clock.Period(),
	}
}
