package distribution

// Direction is the state of the serpentine cursor.
type Direction int

// Cursor directions.
const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// cursor walks team indices 0..last, flipping direction whenever it lands
// on either boundary: 0,1,..,last,last-1,..,0,1,...
type cursor struct {
	index int
	last  int
	dir   Direction
}

func newCursor(teamCount int) *cursor {
	return &cursor{last: teamCount - 1, dir: Forward}
}

func (c *cursor) advance() {
	if c.last == 0 {
		return
	}
	switch c.dir {
	case Forward:
		c.index++
		if c.index == c.last {
			c.dir = Backward
		}
	case Backward:
		c.index--
		if c.index == 0 {
			c.dir = Forward
		}
	}
}
