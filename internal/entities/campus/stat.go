package campus

// Stat is a bounded counter such as health or hunger
type Stat struct {
	Max     int `json:"max"`
	Current int `json:"current"`
}

// NewStat returns a full stat
func NewStat(max int) Stat {
	return Stat{Max: max, Current: max}
}

// Subtract lowers the value. It is not floored; callers check IsEmpty.
func (s *Stat) Subtract(amount int) {
	s.Current -= amount
}

// Add raises the value, capped at Max
func (s *Stat) Add(amount int) {
	s.Current = min(s.Current+amount, s.Max)
}

// SetToMax fills the stat
func (s *Stat) SetToMax() {
	s.Current = s.Max
}

// IsEmpty reports whether the value has reached zero
func (s *Stat) IsEmpty() bool {
	return s.Current <= 0
}
