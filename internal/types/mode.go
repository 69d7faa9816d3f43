package types

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeCompose
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCompose:
		return "COMPOSE"
	default:
		return "UNKNOWN"
	}
}
