// Package tickbus republishes clock ticks as rpg-toolkit events so systems
// outside the agent registry can react to game time.
package tickbus

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/errors"
)

// Event types
const (
	EventTick       = "daytime.tick"
	EventDayStarted = "daytime.day_started"
)

// Event context keys
const (
	KeyPhase     = "phase"
	KeyDayIndex  = "day_index"
	KeyDayOfWeek = "day_of_week"
	KeyHour      = "hour"
	KeyTime      = "time"
)

// Config holds the publisher dependencies
type Config struct {
	EventBus events.EventBus
	WorldID  string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	errors.ValidateRequired("WorldID", c.WorldID, vb)
	return vb.Build()
}

// world is the event source for every published tick
type world struct {
	id string
}

func (w *world) GetID() string   { return w.id }
func (w *world) GetType() string { return "world" }

var _ core.Entity = (*world)(nil)

// Publisher is a daytime.Agent that forwards ticks to an event bus
type Publisher struct {
	bus    events.EventBus
	source core.Entity
}

var _ daytime.Agent = (*Publisher)(nil)

// New creates a publisher
func New(cfg *Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tickbus config")
	}

	return &Publisher{
		bus:    cfg.EventBus,
		source: &world{id: cfg.WorldID},
	}, nil
}

// OnTimeTick publishes a tick event, preceded by a day-started event on the
// first phase of each day. Publish failures are logged; the clock goes on.
func (p *Publisher) OnTimeTick(tick daytime.Tick) {
	ctx := context.Background()

	if tick.FirstOfDay() {
		p.publish(ctx, EventDayStarted, tick)
	}
	p.publish(ctx, EventTick, tick)
}

func (p *Publisher) publish(ctx context.Context, eventType string, tick daytime.Tick) {
	event := events.NewGameEvent(eventType, p.source, nil)

	ec := event.Context()
	ec.Set(KeyPhase, tick.Phase)
	ec.Set(KeyDayIndex, tick.Boundary.DayIndex)
	ec.Set(KeyDayOfWeek, tick.Boundary.DayOfWeek.String())
	ec.Set(KeyHour, tick.Boundary.Hours())
	ec.Set(KeyTime, tick.Boundary.TimeString())

	if err := p.bus.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish tick event",
			"event_type", eventType,
			"phase", tick.Phase,
			"error", err)
	}
}
