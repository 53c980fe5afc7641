package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
)

var (
	simHours   int
	simAttend  bool
	simSleepAt float64
	simEat     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the clock offline and print the student's week",
	Long: `Simulate skips the clock forward hour by hour against an embedded redis,
optionally attending every class in session, eating and drinking when hungry
or thirsty, and sleeping each night, then prints the attendance summary and
vitals.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simHours, "hours", 24*7, "Game hours to simulate")
	simulateCmd.Flags().BoolVar(&simAttend, "attend", true, "Attend classes that are in session")
	simulateCmd.Flags().Float64Var(&simSleepAt, "sleep-at", 23, "Hour at which the student goes to bed; negative never sleeps")
	simulateCmd.Flags().BoolVar(&simEat, "eat", true, "Eat and drink when hunger or thirst falls to half, and top up before bed")
	simulateCmd.Flags().StringVar(&worldFile, "world", "", "World definition YAML; empty uses the built-in campus")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	f, err := loadWorld(worldFile, "")
	if err != nil {
		return err
	}

	client, closeRedis, err := connectRedis("")
	if err != nil {
		return err
	}
	defer func() { _ = closeRedis() }()

	world, err := assemble(ctx, f, client, clock.New())
	if err != nil {
		return err
	}

	return simulate(ctx, world.service, cmd.OutOrStdout())
}

func simulate(ctx context.Context, svc timekeeper.Service, out io.Writer) error {
	if _, err := svc.Pause(ctx, &timekeeper.PauseInput{}); err != nil {
		return err
	}

	for h := 0; h < simHours; h++ {
		now, err := svc.GetTime(ctx, &timekeeper.GetTimeInput{})
		if err != nil {
			return err
		}
		bedtime := simSleepAt >= 0 && now.Time.Hours() >= simSleepAt

		if simEat {
			if err := refuel(ctx, svc, bedtime); err != nil {
				return err
			}
		}

		if simAttend && !bedtime {
			attended, err := svc.AttendClass(ctx, &timekeeper.AttendClassInput{})
			switch {
			case err == nil:
				_, _ = fmt.Fprintf(out, "day %s %s  attended %-14s (%s)\n",
					attended.Time.DayCount, attended.Record.DayOfWeek,
					attended.Class.Name, attended.Class.TimeString())
				continue
			case errors.IsNotFound(err), errors.IsFailedPrecondition(err):
			default:
				return err
			}
		}

		if bedtime {
			slept, err := svc.Sleep(ctx, &timekeeper.SleepInput{})
			if errors.IsFailedPrecondition(err) {
				_, _ = fmt.Fprintln(out, "the student did not survive the week")
				break
			}
			if err != nil {
				return err
			}
			slog.Debug("slept", "day", slept.Time.DayCount, "ticks", slept.Ticks)
			continue
		}

		if _, err := svc.Skip(ctx, &timekeeper.SkipInput{Hours: 1}); err != nil {
			return err
		}
	}

	return printSummary(ctx, svc, out)
}

// refuel eats and drinks back to full once a stat is at half, or always
// when full is set
func refuel(ctx context.Context, svc timekeeper.Service, full bool) error {
	student, err := svc.GetStudent(ctx, &timekeeper.GetStudentInput{})
	if err != nil {
		return err
	}
	v := student.Vitals
	if v.Dead {
		return nil
	}

	if missing := v.Hunger.Max - v.Hunger.Current; missing > 0 && (full || v.Hunger.Current <= v.Hunger.Max/2) {
		if _, err := svc.Eat(ctx, &timekeeper.EatInput{Amount: missing}); err != nil {
			return err
		}
	}
	if missing := v.Thirst.Max - v.Thirst.Current; missing > 0 && (full || v.Thirst.Current <= v.Thirst.Max/2) {
		if _, err := svc.Drink(ctx, &timekeeper.DrinkInput{Amount: missing}); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(ctx context.Context, svc timekeeper.Service, out io.Writer) error {
	now, err := svc.GetTime(ctx, &timekeeper.GetTimeInput{})
	if err != nil {
		return err
	}
	student, err := svc.GetStudent(ctx, &timekeeper.GetStudentInput{})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nday %s, %s %s (%s)\n",
		now.Time.DayCount, now.Time.DayOfWeek, now.Time.Clock, now.Time.Period)

	v := student.Vitals
	_, _ = fmt.Fprintf(out, "%s  health %d/%d  happiness %d/%d  hunger %d/%d  thirst %d/%d\n",
		student.StudentID,
		v.Health.Current, v.Health.Max,
		v.Happiness.Current, v.Happiness.Max,
		v.Hunger.Current, v.Hunger.Max,
		v.Thirst.Current, v.Thirst.Max)

	for _, c := range student.Attendance {
		_, _ = fmt.Fprintf(out, "  %-14s %3d/%-3d hours  %5.1f%%\n",
			c.ClassName, c.AttendedHours, c.TotalHours, c.Percentage)
	}
	return nil
}
