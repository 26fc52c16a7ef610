package turmite

// Direction is the heading of the ant on the grid.
type Direction uint8

// Headings in clockwise order. Up moves towards higher row numbers, which is
// the top of a rendered bitmap.
const (
	Up Direction = iota
	Right
	Down
	Left
)

var deltas = [4][2]int{
	Up:    {0, 1},
	Right: {1, 0},
	Down:  {0, -1},
	Left:  {-1, 0},
}

// Clockwise returns the heading after a 90° clockwise turn.
func (d Direction) Clockwise() Direction { return (d + 1) & 3 }

// CounterClockwise returns the heading after a 90° counter-clockwise turn.
func (d Direction) CounterClockwise() Direction { return (d + 3) & 3 }

// Turn turns clockwise when cw is set and counter-clockwise otherwise.
func (d Direction) Turn(cw bool) Direction {
	if cw {
		return d.Clockwise()
	}
	return d.CounterClockwise()
}

// Delta returns the change in column and row for one step.
func (d Direction) Delta() (dx, dy int) {
	v := deltas[d&3]
	return v[0], v[1]
}

// Offset returns the change in linear cell index for one step on a grid
// of the given width.
func (d Direction) Offset(width int) int {
	dx, dy := d.Delta()
	return dy*width + dx
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "invalid"
	}
}
