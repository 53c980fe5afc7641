package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/alicebob/miniredis/v2"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/handlers/ticks"
	"github.com/KirkDiggler/campus-api/internal/metrics"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
	"github.com/KirkDiggler/campus-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/campus-api/internal/redis"
	attendancerepo "github.com/KirkDiggler/campus-api/internal/repositories/attendance"
	clockstate "github.com/KirkDiggler/campus-api/internal/repositories/clock_state"
	"github.com/KirkDiggler/campus-api/internal/services/attendance"
	"github.com/KirkDiggler/campus-api/internal/services/tickbus"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
	"github.com/KirkDiggler/campus-api/internal/world"
)

// campus is everything one world needs to run
type campus struct {
	worldID  string
	service  timekeeper.Service
	recorder *metrics.ClockRecorder
	stream   *ticks.Hub
}

// loadWorld reads the world file, or returns the built-in campus when path is empty
func loadWorld(path, worldID string) (*world.File, error) {
	f := world.Default()
	if path != "" {
		var err error
		if f, err = world.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if worldID != "" {
		f.WorldID = worldID
	}
	return f, nil
}

// connectRedis dials addr, or starts an in-process redis when addr is empty
func connectRedis(addr string) (redisclient.Client, func() error, error) {
	if addr != "" {
		client, err := redisclient.NewClient(&redisclient.Config{Addr: addr, PoolSize: 10, MaxRetries: 3})
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded redis: %w", err)
	}
	slog.Info("using embedded redis; state does not outlive the process", "addr", mr.Addr())

	client, err := redisclient.NewClient(&redisclient.Config{Addr: mr.Addr()})
	if err != nil {
		mr.Close()
		return nil, nil, err
	}
	return client, func() error {
		err := client.Close()
		mr.Close()
		return err
	}, nil
}

// assemble builds the clock, its agents and the timekeeper, then restores
// any saved state
func assemble(ctx context.Context, f *world.File, client redisclient.Client, wall clock.Clock) (*campus, error) {
	clockCfg, err := f.ClockConfig()
	if err != nil {
		return nil, err
	}
	gameClock, err := daytime.New(clockCfg)
	if err != nil {
		return nil, err
	}

	vitalsAgent, err := vitals.New(f.VitalsConfig())
	if err != nil {
		return nil, err
	}

	timetable, err := f.TimetableEntries()
	if err != nil {
		return nil, err
	}
	tracker, err := attendance.New(&attendance.Config{
		StudentID:   f.StudentID,
		Timetable:   timetable,
		IDGenerator: idgen.NewUUID("att"),
		Clock:       wall,
	})
	if err != nil {
		return nil, err
	}

	roster, err := f.Roster()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	bus.SubscribeFunc(tickbus.EventDayStarted, 0, func(ctx context.Context, e events.Event) error {
		day, _ := e.Context().Get(tickbus.KeyDayIndex)
		weekday, _ := e.Context().Get(tickbus.KeyDayOfWeek)
		slog.InfoContext(ctx, "new day",
			"world_id", e.Source().GetID(),
			"day_index", day,
			"day_of_week", weekday)
		return nil
	})
	publisher, err := tickbus.New(&tickbus.Config{EventBus: bus, WorldID: f.WorldID})
	if err != nil {
		return nil, err
	}

	maxSkip, err := f.MaxSkip()
	if err != nil {
		return nil, err
	}
	// one skip publishes every tick at once, the buffer has to hold them all
	bufferFor := maxSkip
	if bufferFor == 0 {
		bufferFor = timekeeper.DefaultMaxSkip
	}
	stream, err := ticks.NewHub(&ticks.Config{
		EventBus:   bus,
		SendBuffer: ticks.SendBufferFor(bufferFor, clockCfg.PhaseLengthSeconds),
	})
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewClockRecorder(&metrics.Config{WorldID: f.WorldID})
	recorder.ObserveTimeScale(gameClock.TimeScale())

	clockStateRepo, err := clockstate.NewRedisRepository(&clockstate.Config{Client: client, Clock: wall})
	if err != nil {
		return nil, err
	}
	attendanceRepo, err := attendancerepo.NewRedisRepository(&attendancerepo.Config{Client: client})
	if err != nil {
		return nil, err
	}

	svc, err := timekeeper.NewOrchestrator(&timekeeper.Config{
		WorldID:        f.WorldID,
		Clock:          gameClock,
		Vitals:         vitalsAgent,
		Attendance:     tracker,
		Roster:         roster,
		Agents:         []daytime.Agent{publisher, recorder},
		ScaleObservers: []timekeeper.ScaleObserver{recorder},
		ClockStateRepo: clockStateRepo,
		AttendanceRepo: attendanceRepo,
		MaxSkip:        maxSkip,
	})
	if err != nil {
		return nil, err
	}

	loaded, err := svc.LoadState(ctx, &timekeeper.LoadStateInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to load saved state: %w", err)
	}
	slog.Info("world ready",
		"world_id", f.WorldID,
		"restored", loaded.Found,
		"day", loaded.Time.DayCount,
		"time", loaded.Time.Clock,
		"classes", len(timetable),
		"npcs", len(roster.All()))

	return &campus{
		worldID:  f.WorldID,
		service:  svc,
		recorder: recorder,
		stream:   stream,
	}, nil
}
