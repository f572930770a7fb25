package snake

import "fmt"

// Status is the game lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "running":
		*s = StatusRunning
	case "over":
		*s = StatusOver
	default:
		return fmt.Errorf("snake: unknown status %q", text)
	}
	return nil
}
