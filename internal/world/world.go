// Package world loads the campus definition a server runs: clock tuning,
// the student's timetable, vitals and the NPC roster.
//
// The file is YAML. Anything it omits keeps the value from Default.
package world

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/services/social"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

// File is the on-disk world definition
type File struct {
	WorldID   string  `yaml:"world_id"`
	StudentID string  `yaml:"student_id"`
	Clock     Clock   `yaml:"clock"`
	Vitals    Vitals  `yaml:"vitals"`
	Timetable []Class `yaml:"timetable"`
	NPCs      []NPC   `yaml:"npcs"`
}

// Clock is the clock section. Times of day are "HH:MM".
type Clock struct {
	StartAt      string  `yaml:"start_at"`
	StartDay     string  `yaml:"start_day"`
	Morning      string  `yaml:"morning"`
	PhaseMinutes float64 `yaml:"phase_minutes"`
	TimeScale    float64 `yaml:"time_scale"`
	ResumeScale  float64 `yaml:"resume_scale"`
	MaxSkipDays  float64 `yaml:"max_skip_days"`
}

// Vitals is the stat tuning section
type Vitals struct {
	MaxHealth        int `yaml:"max_health"`
	MaxHappiness     int `yaml:"max_happiness"`
	MaxHunger        int `yaml:"max_hunger"`
	MaxThirst        int `yaml:"max_thirst"`
	HungerEveryTicks int `yaml:"hunger_every_ticks"`
	ThirstEveryTicks int `yaml:"thirst_every_ticks"`
	StarvationDamage int `yaml:"starvation_damage"`
}

// Class is one timetable slot. Start and end are "HH:MM".
type Class struct {
	Name    string `yaml:"name"`
	Day     string `yaml:"day"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Teacher string `yaml:"teacher,omitempty"`
	Room    string `yaml:"room,omitempty"`
}

// NPC is one roster entry
type NPC struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Relationship int    `yaml:"relationship"`
}

// Default returns a small campus that runs without a world file
func Default() *File {
	return &File{
		WorldID:   "campus",
		StudentID: "student",
		Clock: Clock{
			StartAt:      "08:00",
			StartDay:     daytime.Sunday.String(),
			Morning:      "08:00",
			PhaseMinutes: daytime.DefaultPhaseLengthSeconds / 60,
			TimeScale:    daytime.DefaultTimeScale,
			ResumeScale:  daytime.DefaultResumeScale,
			MaxSkipDays:  timekeeper.DefaultMaxSkip.Hours() / 24,
		},
		Vitals: Vitals{
			MaxHealth:        100,
			MaxHappiness:     100,
			MaxHunger:        24,
			MaxThirst:        24,
			HungerEveryTicks: 4,
			ThirstEveryTicks: 2,
			StarvationDamage: 1,
		},
		Timetable: []Class{
			{Name: "Mathematics", Day: "Monday", Start: "09:00", End: "11:00", Room: "A1"},
			{Name: "Literature", Day: "Monday", Start: "13:00", End: "14:30", Room: "B4"},
			{Name: "Physics", Day: "Tuesday", Start: "10:00", End: "12:00", Room: "Lab 2"},
			{Name: "Mathematics", Day: "Wednesday", Start: "09:00", End: "11:00", Room: "A1"},
			{Name: "History", Day: "Thursday", Start: "14:00", End: "16:00", Room: "C3"},
			{Name: "Physics", Day: "Friday", Start: "08:30", End: "10:00", Room: "Lab 2"},
		},
		NPCs: []NPC{
			{ID: "npc_mei", Name: "Mei", Relationship: 2},
			{ID: "npc_tomas", Name: "Tomas"},
		},
	}
}

// LoadFile reads path over Default. Lists in the file replace the defaults
// rather than merging with them.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, "failed to read world file")
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse world file")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate converts every section once so bad values surface at load time
func (f *File) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("world_id", f.WorldID, vb)
	errors.ValidateRequired("student_id", f.StudentID, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if _, err := f.ClockConfig(); err != nil {
		return err
	}
	if _, err := f.MaxSkip(); err != nil {
		return err
	}
	if err := f.VitalsConfig().Validate(); err != nil {
		return errors.Wrap(err, "invalid vitals")
	}
	if _, err := f.TimetableEntries(); err != nil {
		return err
	}
	if _, err := f.Roster(); err != nil {
		return err
	}
	return nil
}

// ClockConfig builds the daytime tuning
func (f *File) ClockConfig() (*daytime.Config, error) {
	cfg := daytime.DefaultConfig()
	vb := errors.NewValidationBuilder()

	if f.Clock.StartAt != "" {
		cfg.StartAtSeconds = parseClockTime(vb, "clock.start_at", f.Clock.StartAt) * 3600
	}
	if f.Clock.Morning != "" {
		cfg.MorningSeconds = parseClockTime(vb, "clock.morning", f.Clock.Morning) * 3600
	}
	if f.Clock.StartDay != "" {
		day, ok := daytime.ParseDayOfWeek(f.Clock.StartDay)
		if !ok {
			vb.Fieldf("clock.start_day", "unknown weekday %q", f.Clock.StartDay)
		}
		cfg.StartDayOfWeek = day
	}
	if f.Clock.PhaseMinutes != 0 {
		cfg.PhaseLengthSeconds = f.Clock.PhaseMinutes * 60
	}
	if f.Clock.ResumeScale != 0 {
		cfg.ResumeScale = f.Clock.ResumeScale
	}
	// zero is a valid scale: the world starts paused
	cfg.TimeScale = f.Clock.TimeScale

	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid clock")
	}
	return cfg, nil
}

// maxSkipDaysLimit keeps MaxSkip inside a time.Duration
const maxSkipDaysLimit = 3650

// MaxSkip is the longest single skip the timekeeper accepts. Zero means the
// timekeeper default.
func (f *File) MaxSkip() (time.Duration, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateHalfOpen("clock.max_skip_days", f.Clock.MaxSkipDays, 0, maxSkipDaysLimit, vb)
	if err := vb.Build(); err != nil {
		return 0, err
	}
	return time.Duration(f.Clock.MaxSkipDays * 24 * float64(time.Hour)), nil
}

// VitalsConfig builds the vitals tuning
func (f *File) VitalsConfig() *vitals.Config {
	v := f.Vitals
	return &vitals.Config{
		MaxHealth:        v.MaxHealth,
		MaxHappiness:     v.MaxHappiness,
		MaxHunger:        v.MaxHunger,
		MaxThirst:        v.MaxThirst,
		HungerEveryTicks: v.HungerEveryTicks,
		ThirstEveryTicks: v.ThirstEveryTicks,
		StarvationDamage: v.StarvationDamage,
	}
}

// TimetableEntries builds the timetable
func (f *File) TimetableEntries() (campus.Timetable, error) {
	vb := errors.NewValidationBuilder()
	table := make(campus.Timetable, 0, len(f.Timetable))

	for i, c := range f.Timetable {
		field := fmt.Sprintf("timetable[%d]", i)
		day, ok := daytime.ParseDayOfWeek(c.Day)
		if !ok {
			vb.Fieldf(field+".day", "unknown weekday %q", c.Day)
		}
		table = append(table, campus.Class{
			Name:      c.Name,
			DayOfWeek: day,
			StartHour: parseClockTime(vb, field+".start", c.Start),
			EndHour:   parseClockTime(vb, field+".end", c.End),
			Teacher:   c.Teacher,
			Room:      c.Room,
		})
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid timetable")
	}
	return table, nil
}

// Roster builds a fresh NPC roster
func (f *File) Roster() (*social.Roster, error) {
	roster := social.NewRoster()
	for _, n := range f.NPCs {
		if err := roster.Add(social.NewNPC(n.ID, n.Name, n.Relationship)); err != nil {
			return nil, errors.Wrapf(err, "invalid npc %q", n.ID)
		}
	}
	return roster, nil
}

// parseClockTime turns "HH:MM" into fractional hours. "24:00" is accepted
// so a class can end at midnight.
func parseClockTime(vb *errors.ValidationBuilder, field, value string) float64 {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok {
		vb.Fieldf(field, "must be HH:MM, got %q", value)
		return 0
	}

	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || m < 0 || m >= 60 || h > 24 || (h == 24 && m != 0) {
		vb.Fieldf(field, "must be HH:MM, got %q", value)
		return 0
	}

	return float64(h) + float64(m)/60
}
