package conquest

import "fmt"

// Grid dimensions. All system positions live on this fixed field.
const (
	GridWidth  = 12
	GridHeight = 10
)

// Coord is an integer cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// InBounds reports whether c lies on the grid.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < GridWidth && c.Y >= 0 && c.Y < GridHeight
}

// Dist returns the Chebyshev (chessboard) distance between two cells:
// max(|ax-bx|, |ay-by|). A fleet crosses one unit of it per turn.
func Dist(a, b Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
