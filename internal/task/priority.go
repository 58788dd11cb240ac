package task

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task.
type Priority int

const (
	Low Priority = iota + 1
	Medium
	High
)

// DefaultPriority is used when no priority, or an unknown one, is given.
const DefaultPriority = Medium

// String returns the stored name of the priority ("Low", "Medium", "High").
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= Low && p <= High
}

// ParsePriority parses a priority name, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return 0, fmt.Errorf("invalid priority: %q", s)
	}
}

// NormalizePriority parses s and falls back to DefaultPriority for
// anything that is not a known priority, including the empty string.
func NormalizePriority(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return DefaultPriority
	}
	return p
}
