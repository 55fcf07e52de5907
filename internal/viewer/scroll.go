// ABOUTME: Scroll position and terminal limits owned by the controller
// ABOUTME: Moving up saturates at zero; moving down has no upper bound (the browser clamps)

package viewer

import "fmt"

// Scroll is a content-pixel offset into the page. Both fields stay >= 0.
type Scroll struct {
	X int
	Y int
}

// Up moves the position step pixels towards the top, stopping at zero.
func (s Scroll) Up(step int) Scroll {
	s.Y = max(0, s.Y-step)
	return s
}

// Down moves the position step pixels towards the bottom.
func (s Scroll) Down(step int) Scroll {
	s.Y += step
	return s
}

func (s Scroll) String() string {
	return fmt.Sprintf("(%d, %d)", s.X, s.Y)
}

// Limits is the terminal size in cells, captured once at startup.
type Limits struct {
	Cols int
	Rows int
}
