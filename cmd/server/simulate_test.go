package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
	"github.com/KirkDiggler/campus-api/internal/testutils"
	"github.com/KirkDiggler/campus-api/internal/world"
)

func TestSimulate_WeekOnDefaultCampus(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)
	ctx := context.Background()
	wall := clock.NewFake(time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC))

	f := world.Default()
	f.Vitals.MaxHunger = 1000
	f.Vitals.MaxThirst = 1000

	c, err := assemble(ctx, f, client, wall)
	require.NoError(t, err)

	simHours, simAttend, simSleepAt, simEat = 24*7, true, 23, false

	var out bytes.Buffer
	require.NoError(t, simulate(ctx, c.service, &out))

	student, err := c.service.GetStudent(ctx, &timekeeper.GetStudentInput{})
	require.NoError(t, err)
	assert.False(t, student.Vitals.Dead)
	require.NotEmpty(t, student.Attendance)
	for _, s := range student.Attendance {
		assert.Positive(t, s.AttendedHours, "class %s", s.ClassName)
	}

	assert.Contains(t, out.String(), "attended Mathematics")
	assert.Contains(t, out.String(), student.StudentID)
}

func TestSimulate_EatingKeepsStudentFed(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)
	ctx := context.Background()
	wall := clock.NewFake(time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC))

	c, err := assemble(ctx, world.Default(), client, wall)
	require.NoError(t, err)

	simHours, simAttend, simSleepAt, simEat = 24*7, true, 23, true

	var out bytes.Buffer
	require.NoError(t, simulate(ctx, c.service, &out))

	student, err := c.service.GetStudent(ctx, &timekeeper.GetStudentInput{})
	require.NoError(t, err)
	assert.False(t, student.Vitals.Dead)
	assert.Positive(t, student.Vitals.Hunger.Current)
	assert.Positive(t, student.Vitals.Thirst.Current)
	assert.NotContains(t, out.String(), "did not survive")
}

func TestAssemble_RestoresSavedState(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)
	ctx := context.Background()
	wall := clock.NewFake(time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC))

	first, err := assemble(ctx, world.Default(), client, wall)
	require.NoError(t, err)

	_, err = first.service.Skip(ctx, &timekeeper.SkipInput{Hours: 30})
	require.NoError(t, err)
	saved, err := first.service.SaveState(ctx, &timekeeper.SaveStateInput{})
	require.NoError(t, err)

	second, err := assemble(ctx, world.Default(), client, wall)
	require.NoError(t, err)

	now, err := second.service.GetTime(ctx, &timekeeper.GetTimeInput{})
	require.NoError(t, err)
	assert.Equal(t, saved.State.DayIndex, now.Time.DayIndex)
	assert.Equal(t, "14:00", now.Time.Clock)

	student, err := second.service.GetStudent(ctx, &timekeeper.GetStudentInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, student.Records)
}
