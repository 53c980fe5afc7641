// Package clockstate persists clock snapshots per world so a restarted
// server resumes where it stopped
package clockstate

import (
	"context"
	"time"

	"github.com/KirkDiggler/campus-api/internal/daytime"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=clockstatemock github.com/KirkDiggler/campus-api/internal/repositories/clock_state Repository

// Record is a stored clock state
type Record struct {
	WorldID string        `json:"world_id"`
	State   daytime.State `json:"state"`
	SavedAt time.Time     `json:"saved_at"`
}

// SaveInput contains parameters for saving a clock state
type SaveInput struct {
	WorldID string
	State   daytime.State
}

// SaveOutput contains the result of saving a clock state
type SaveOutput struct {
	Record *Record
}

// GetInput contains parameters for loading a clock state
type GetInput struct {
	WorldID string
}

// GetOutput contains the loaded clock state
type GetOutput struct {
	Record *Record
}

// DeleteInput contains parameters for deleting a clock state
type DeleteInput struct {
	WorldID string
}

// DeleteOutput contains the result of deleting a clock state
type DeleteOutput struct{}

// Repository defines clock state storage
type Repository interface {
	// Save overwrites the state for a world
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get returns the saved state, NotFound if there is none
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the saved state
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
