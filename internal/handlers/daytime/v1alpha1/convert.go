package v1alpha1

import (
	"time"

	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

const timeLayout = time.RFC3339Nano

// structpb only accepts builtin kinds, so named types are flattened here

func timeFields(t timekeeper.TimeView) map[string]any {
	return map[string]any{
		"day_index":   t.DayIndex,
		"day_of_week": t.DayOfWeek.String(),
		"seconds":     t.Seconds,
		"hours":       t.Hours(),
		"clock":       t.Clock,
		"day_count":   t.DayCount,
		"period":      string(t.Period),
		"time_scale":  t.TimeScale,
		"paused":      t.Paused(),
		"phase":       t.Phase,
	}
}

func skipFields(out *timekeeper.SkipOutput) map[string]any {
	return map[string]any{
		"time":  timeFields(out.Time),
		"ticks": out.Ticks,
	}
}

func statFields(s campus.Stat) map[string]any {
	return map[string]any{"current": s.Current, "max": s.Max}
}

func vitalsFields(s vitals.Status) map[string]any {
	return map[string]any{
		"health":    statFields(s.Health),
		"happiness": statFields(s.Happiness),
		"hunger":    statFields(s.Hunger),
		"thirst":    statFields(s.Thirst),
		"dead":      s.Dead,
	}
}

func recordFields(r campus.AttendanceRecord) map[string]any {
	return map[string]any{
		"id":              r.ID,
		"student_id":      r.StudentID,
		"class_name":      r.ClassName,
		"day_of_week":     r.DayOfWeek.String(),
		"day_index":       r.DayIndex,
		"attendance_hour": r.AttendanceHour,
		"attended":        r.Attended,
		"recorded_at":     r.RecordedAt.UTC().Format(timeLayout),
	}
}

func classFields(c campus.Class) map[string]any {
	return map[string]any{
		"name":        c.Name,
		"day_of_week": c.DayOfWeek.String(),
		"start_hour":  c.StartHour,
		"end_hour":    c.EndHour,
		"teacher":     c.Teacher,
		"room":        c.Room,
		"time":        c.TimeString(),
	}
}
