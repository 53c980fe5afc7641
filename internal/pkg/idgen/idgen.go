// Package idgen mints record ids
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator mints unique ids
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate calls f
func (f Func) Generate() string {
	return f()
}

// NewUUID returns "prefix_<uuid>" ids using UUIDv7, so ids minted later
// sort after earlier ones
func NewUUID(prefix string) Func {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		return join(prefix, id.String())
	}
}

// NewSequential returns "prefix_1", "prefix_2", ... Safe for concurrent use.
func NewSequential(prefix string) Func {
	var n atomic.Uint64
	return func() string {
		return join(prefix, strconv.FormatUint(n.Add(1), 10))
	}
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
