// Package social tracks NPC relationships. Each NPC accepts one
// relationship-raising conversation per in-game day.
package social

import (
	"sort"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/errors"
)

// MaxRelationship caps NPC relationship
const MaxRelationship = 10

// NPC is a daytime.Agent that clears its daily talk flag when the day changes
type NPC struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship int    `json:"relationship"`
	TalkedToday  bool   `json:"talked_today"`

	// talkedOnDay is the day index seen on the last reset, -1 before any tick
	talkedOnDay int64
}

var _ daytime.Agent = (*NPC)(nil)

// NewNPC creates an NPC that has not talked yet
func NewNPC(id, name string, relationship int) *NPC {
	return &NPC{
		ID:           id,
		Name:         name,
		Relationship: clampRelationship(relationship),
		talkedOnDay:  -1,
	}
}

// OnTimeTick resets TalkedToday on the first tick of a new day
func (n *NPC) OnTimeTick(tick daytime.Tick) {
	if tick.Boundary.DayIndex != n.talkedOnDay {
		n.TalkedToday = false
		n.talkedOnDay = tick.Boundary.DayIndex
	}
}

// Talk raises the relationship by increase if the NPC has not been talked to
// today. It reports whether the relationship changed.
func (n *NPC) Talk(increase int) bool {
	if n.TalkedToday {
		return false
	}

	n.Relationship = clampRelationship(n.Relationship + increase)
	n.TalkedToday = true
	return true
}

func clampRelationship(v int) int {
	return max(0, min(v, MaxRelationship))
}

// Roster indexes NPCs by ID
type Roster struct {
	npcs map[string]*NPC
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{npcs: make(map[string]*NPC)}
}

// Add registers npc, rejecting duplicate or empty IDs
func (r *Roster) Add(npc *NPC) error {
	if npc == nil {
		return errors.InvalidArgument("npc cannot be nil")
	}
	if npc.ID == "" {
		return errors.InvalidArgument("npc ID is required")
	}
	if _, ok := r.npcs[npc.ID]; ok {
		return errors.AlreadyExists("npc " + npc.ID + " already registered")
	}

	r.npcs[npc.ID] = npc
	return nil
}

// Get returns the NPC with id
func (r *Roster) Get(id string) (*NPC, error) {
	npc, ok := r.npcs[id]
	if !ok {
		return nil, errors.NotFoundf("npc %s not found", id)
	}
	return npc, nil
}

// All returns every NPC sorted by ID
func (r *Roster) All() []*NPC {
	out := make([]*NPC, 0, len(r.npcs))
	for _, npc := range r.npcs {
		out = append(out, npc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
