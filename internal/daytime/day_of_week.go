package daytime

import "fmt"

// DayOfWeek is the in-game weekday. It only changes through day rollover.
type DayOfWeek int

// Weekdays in rollover order
const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const daysInWeek = 7

var dayNames = [daysInWeek]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// String returns the English weekday name
func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// Valid reports whether d is one of Sunday..Saturday
func (d DayOfWeek) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Next returns the following weekday, wrapping Saturday to Sunday
func (d DayOfWeek) Next() DayOfWeek {
	return d.Add(1)
}

// Add moves n days forward (or backward for negative n), mod 7.
func (d DayOfWeek) Add(n int64) DayOfWeek {
	v := (int64(d) + n) % daysInWeek
	if v < 0 {
		v += daysInWeek
	}
	return DayOfWeek(v)
}

// ParseDayOfWeek accepts the English weekday name, case-sensitive
func ParseDayOfWeek(name string) (DayOfWeek, bool) {
	for i, n := range dayNames {
		if n == name {
			return DayOfWeek(i), true
		}
	}
	return Sunday, false
}
