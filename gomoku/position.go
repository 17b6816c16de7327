package gomoku

import "fmt"

// Board geometry. The grid is fixed; every structure in this package is
// sized from these constants.
const (
	Width      = 15
	Height     = 15
	MaxRenju   = 5
	BoardCells = Width * Height
)

// Pos is a cell id on the Width x Height grid, row-major from the origin.
// InvalidPos is the distinguished unset/out-of-board sentinel.
type Pos int

const InvalidPos Pos = -1

func NewPos(x, y int) Pos {
	return Pos(y*Width + x)
}

func (p Pos) X() int { return int(p) % Width }
func (p Pos) Y() int { return int(p) / Width }

func (p Pos) InBounds() bool {
	return p >= 0 && p < BoardCells
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X(), p.Y())
}

// Direction is one of the four axes a line can run along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	LeftDiag
	RightDiag
)

const directionCount = 4

// Directions in the order evaluator updates run.
var Directions = [directionCount]Direction{Horizontal, Vertical, LeftDiag, RightDiag}

// Delta unpacks the direction into its (dx, dy) step.
func (d Direction) Delta() (int, int) {
	switch d {
	case Horizontal:
		return 1, 0
	case Vertical:
		return 0, 1
	case LeftDiag:
		return 1, 1
	case RightDiag:
		return -1, 1
	default:
		return 0, 0
	}
}

// Shift walks offset steps from pose along dir, returning InvalidPos when
// the result leaves the board. Coordinates are checked individually so a
// step off one edge never wraps onto the next row.
func Shift(pose Pos, offset int, dir Direction) Pos {
	dx, dy := dir.Delta()
	x := pose.X() + offset*dx
	y := pose.Y() + offset*dy
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return InvalidPos
	}
	return NewPos(x, y)
}
