package focus

import "fmt"

// Direction selects forward or backward traversal within a workspace.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Prev:
		return "prev"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Reversed reports whether children are walked back to front.
func (d Direction) Reversed() bool {
	return d == Prev
}

// ParseDirection accepts exactly "next" or "prev".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next":
		return Next, nil
	case "prev":
		return Prev, nil
	default:
		return Next, fmt.Errorf("invalid direction %q (expected next or prev)", s)
	}
}
