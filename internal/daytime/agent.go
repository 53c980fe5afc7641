package daytime

import "slices"

//go:generate mockgen -destination=mock/mock_agent.go -package=daytimemock github.com/KirkDiggler/campus-api/internal/daytime Agent

// Agent receives one notification per elapsed phase.
//
// Implementations must be comparable (use pointer receivers); the registry
// identifies agents with ==.
type Agent interface {
	OnTimeTick(tick Tick)
}

// registry is the ordered, duplicate-free subscriber list
type registry struct {
	agents []Agent
}

func (r *registry) add(a Agent) bool {
	if r.contains(a) {
		return false
	}
	r.agents = append(r.agents, a)
	return true
}

func (r *registry) remove(a Agent) bool {
	i := slices.Index(r.agents, a)
	if i < 0 {
		return false
	}
	r.agents = slices.Delete(r.agents, i, i+1)
	return true
}

func (r *registry) contains(a Agent) bool {
	return slices.Contains(r.agents, a)
}

// snapshot returns a copy safe to iterate while callbacks mutate the registry
func (r *registry) snapshot() []Agent {
	return slices.Clone(r.agents)
}

func (r *registry) len() int {
	return len(r.agents)
}
