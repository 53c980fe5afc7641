// Package attendance provides storage for a student's attendance records
package attendance

import (
	"context"

	"github.com/KirkDiggler/campus-api/internal/entities/campus"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=attendancemock github.com/KirkDiggler/campus-api/internal/repositories/attendance Repository

// AppendInput contains records to add after the existing ones
type AppendInput struct {
	StudentID string
	Records   []campus.AttendanceRecord
}

// AppendOutput contains the result of an append
type AppendOutput struct {
	// Total is the number of stored records after the append
	Total int64
}

// ListInput contains parameters for listing records
type ListInput struct {
	StudentID string
}

// ListOutput contains the stored records in insertion order
type ListOutput struct {
	Records []campus.AttendanceRecord
}

// ReplaceInput contains the full record list to store
type ReplaceInput struct {
	StudentID string
	Records   []campus.AttendanceRecord
}

// ReplaceOutput contains the result of a replace
type ReplaceOutput struct{}

// Repository defines attendance storage
type Repository interface {
	// Append adds records after the existing ones
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns every record, oldest first. A student with no records
	// gets an empty list.
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Replace atomically swaps the stored list
	Replace(ctx context.Context, input ReplaceInput) (*ReplaceOutput, error)
}
