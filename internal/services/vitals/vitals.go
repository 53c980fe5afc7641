// Package vitals decays a student's hunger and thirst as game time passes and
// applies starvation damage once either runs out.
package vitals

import (
	"log/slog"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
)

// Config tunes decay rates. Intervals are in ticks.
type Config struct {
	MaxHealth        int
	MaxHappiness     int
	MaxHunger        int
	MaxThirst        int
	HungerEveryTicks int
	ThirstEveryTicks int
	StarvationDamage int
}

// DefaultConfig returns the stock tuning: hunger drops once an hour and
// thirst every half hour at the default phase length.
func DefaultConfig() *Config {
	return &Config{
		MaxHealth:        100,
		MaxHappiness:     100,
		MaxHunger:        24,
		MaxThirst:        24,
		HungerEveryTicks: 4,
		ThirstEveryTicks: 2,
		StarvationDamage: 1,
	}
}

// Validate ensures every value is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	positive := map[string]int{
		"MaxHealth":        c.MaxHealth,
		"MaxHappiness":     c.MaxHappiness,
		"MaxHunger":        c.MaxHunger,
		"MaxThirst":        c.MaxThirst,
		"HungerEveryTicks": c.HungerEveryTicks,
		"ThirstEveryTicks": c.ThirstEveryTicks,
	}
	for field, v := range positive {
		if v <= 0 {
			vb.Fieldf(field, "must be positive, got %d", v)
		}
	}
	if c.StarvationDamage < 0 {
		vb.Fieldf("StarvationDamage", "must not be negative, got %d", c.StarvationDamage)
	}
	return vb.Build()
}

// Status is a copy of the current stats
type Status struct {
	Health    campus.Stat `json:"health"`
	Happiness campus.Stat `json:"happiness"`
	Hunger    campus.Stat `json:"hunger"`
	Thirst    campus.Stat `json:"thirst"`
	Dead      bool        `json:"dead"`
}

// Agent holds one student's stats and decays them on every tick
type Agent struct {
	cfg Config

	health    campus.Stat
	happiness campus.Stat
	hunger    campus.Stat
	thirst    campus.Stat
	dead      bool

	ticks int64
}

var _ daytime.Agent = (*Agent)(nil)

// New creates an agent with full stats
func New(cfg *Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vitals config")
	}

	return &Agent{
		cfg:       *cfg,
		health:    campus.NewStat(cfg.MaxHealth),
		happiness: campus.NewStat(cfg.MaxHappiness),
		hunger:    campus.NewStat(cfg.MaxHunger),
		thirst:    campus.NewStat(cfg.MaxThirst),
	}, nil
}

// OnTimeTick applies one phase of decay
func (a *Agent) OnTimeTick(tick daytime.Tick) {
	if a.dead {
		return
	}

	a.ticks++
	if a.ticks%int64(a.cfg.HungerEveryTicks) == 0 && !a.hunger.IsEmpty() {
		a.hunger.Subtract(1)
	}
	if a.ticks%int64(a.cfg.ThirstEveryTicks) == 0 && !a.thirst.IsEmpty() {
		a.thirst.Subtract(1)
	}

	if a.hunger.IsEmpty() || a.thirst.IsEmpty() {
		a.DeductHealth(a.cfg.StarvationDamage)
		if a.dead {
			slog.Info("student starved",
				"phase", tick.Phase,
				"day_index", tick.Boundary.DayIndex,
				"time", tick.Boundary.TimeString())
		}
	}
}

// DeductHealth removes health and marks the student dead at zero
func (a *Agent) DeductHealth(amount int) {
	a.health.Subtract(amount)
	if a.health.IsEmpty() {
		a.dead = true
	}
}

// AddHealth restores health up to the maximum
func (a *Agent) AddHealth(amount int) {
	a.health.Add(amount)
}

// FullHealth fills health
func (a *Agent) FullHealth() {
	a.health.SetToMax()
}

// DeductHappiness removes happiness
func (a *Agent) DeductHappiness(amount int) {
	a.happiness.Subtract(amount)
}

// AddHappiness restores happiness up to the maximum
func (a *Agent) AddHappiness(amount int) {
	a.happiness.Add(amount)
}

// FullHappiness fills happiness
func (a *Agent) FullHappiness() {
	a.happiness.SetToMax()
}

// Eat restores hunger
func (a *Agent) Eat(amount int) {
	a.hunger.Add(amount)
}

// Drink restores thirst
func (a *Agent) Drink(amount int) {
	a.thirst.Add(amount)
}

// Dead reports whether health ran out
func (a *Agent) Dead() bool {
	return a.dead
}

// Status returns a copy of every stat
func (a *Agent) Status() Status {
	return Status{
		Health:    a.health,
		Happiness: a.happiness,
		Hunger:    a.hunger,
		Thirst:    a.thirst,
		Dead:      a.dead,
	}
}
