package gomoku

// Pattern-matching geometry. Line buffers are padded with linePad border
// symbols on each side so that every TargetLen window centred on a board
// cell is a plain slice, no clipping logic anywhere.
const (
	MaxPatternLen = 7
	BlockSize     = 2*3 + 1
	TargetLen     = 2*MaxPatternLen - 1
	linePad       = MaxPatternLen - 1

	// W rows + H columns + (W+H-1) per diagonal family, minus nothing:
	// the corner double count is already folded into the W+H-1 terms.
	lineCount = 3*(Width+Height) - 2
)

// Line buffer alphabet. Patterns are matched over these symbols; the
// border symbol only ever appears in the padding and is distinct from
// empty, so shapes blocked by the wall never read as open.
const (
	symbolBlack  = 'x'
	symbolWhite  = 'o'
	symbolEmpty  = '-'
	symbolBorder = '^'
)

func playerSymbol(player Player) byte {
	switch player {
	case Black:
		return symbolBlack
	case White:
		return symbolWhite
	default:
		return symbolEmpty
	}
}

// BoardMap owns a Board and keeps a textual projection of every row,
// column and diagonal in sync with it, plus an incremental hash of the
// whole position. Each move rewrites exactly one byte per direction.
type BoardMap struct {
	board *Board
	lines [lineCount][]byte
	moves []Pos
	hash  uint64
}

// NewBoardMap wraps board, taking exclusive ownership of it; passing nil
// creates a fresh board. The line buffers are derived from whatever
// position the board holds.
func NewBoardMap(board *Board) *BoardMap {
	if board == nil {
		board = NewBoard()
	}
	m := &BoardMap{board: board, moves: make([]Pos, 0, BoardCells)}
	m.rebuild()
	return m
}

// Board exposes the wrapped board for read access. Mutating it directly
// breaks the line/hash invariants; use ApplyMove/RevertMove.
func (m *BoardMap) Board() *Board {
	return m.board
}

// Hash is the incremental whole-position hash.
func (m *BoardMap) Hash() uint64 {
	return m.hash
}

// ParseIndex maps (cell, direction) to (line identity, offset within the
// line). Per direction it is a bijection consistent with lineLength.
func ParseIndex(pose Pos, dir Direction) (index, offset int) {
	x, y := pose.X(), pose.Y()
	switch dir {
	case Horizontal:
		return y, x
	case Vertical:
		return Height + x, y
	case LeftDiag:
		return Width + Height + (y - x + Width - 1), min(x, y)
	default: // RightDiag
		y0 := max(0, x+y-(Width-1))
		return 2*Width + 2*Height - 1 + (x + y), y - y0
	}
}

// linePos is the inverse of ParseIndex: the board cell at offset within
// the identified line.
func linePos(index, offset int) Pos {
	switch {
	case index < Height:
		return NewPos(offset, index)
	case index < Height+Width:
		return NewPos(index-Height, offset)
	case index < 2*Width+2*Height-1:
		d := index - (Width + Height) - (Width - 1) // y - x
		x0 := max(0, -d)
		return NewPos(x0+offset, x0+d+offset)
	default:
		s := index - (2*Width + 2*Height - 1) // x + y
		y0 := max(0, s-(Width-1))
		return NewPos(s-y0-offset, y0+offset)
	}
}

// lineLength is the geometric length of the identified line.
func lineLength(index int) int {
	switch {
	case index < Height:
		return Width
	case index < Height+Width:
		return Height
	case index < 2*Width+2*Height-1:
		d := index - (Width + Height) - (Width - 1)
		return min(Width-1, Height-1-d) - max(0, -d) + 1
	default:
		s := index - (2*Width + 2*Height - 1)
		return min(Height-1, s) - max(0, s-(Width-1)) + 1
	}
}

// lineDirection is the direction family the identified line belongs to.
func lineDirection(index int) Direction {
	switch {
	case index < Height:
		return Horizontal
	case index < Height+Width:
		return Vertical
	case index < 2*Width+2*Height-1:
		return LeftDiag
	default:
		return RightDiag
	}
}

// LineView returns the TargetLen window of the relevant line centred on
// pose: wide enough to contain any supported pattern through pose, with
// border symbols standing in for cells beyond the edge. The slice aliases
// internal storage and is only valid until the next mutation.
func (m *BoardMap) LineView(pose Pos, dir Direction) []byte {
	index, offset := ParseIndex(pose, dir)
	center := linePad + offset
	return m.lines[index][center-TargetLen/2 : center+TargetLen/2+1]
}

// ApplyMove delegates to the board, then rewrites the one affected byte
// in each of the four touched line buffers and folds the move into the
// hash. A rejected board move leaves the map untouched.
func (m *BoardMap) ApplyMove(move Pos) Player {
	mover := m.board.current
	result := m.board.ApplyMove(move, true)
	if mover == None || result == mover {
		return result
	}
	m.setCell(move, mover)
	m.hash ^= getZobrist().stone(move, mover)
	m.moves = append(m.moves, move)
	return result
}

// RevertMove undoes the count most recent moves (LIFO) and returns the
// player to move afterwards. Reverting past the bottom of the recorded
// history is a no-op for the excess.
func (m *BoardMap) RevertMove(count int) Player {
	for ; count > 0 && len(m.moves) > 0; count-- {
		move := m.moves[len(m.moves)-1]
		owner := m.board.RevertMove(move)
		m.setCell(move, None)
		m.hash ^= getZobrist().stone(move, owner)
		m.moves = m.moves[:len(m.moves)-1]
	}
	return m.board.current
}

// LastMove reports the most recent applied move still on the board.
func (m *BoardMap) LastMove() (Pos, bool) {
	if len(m.moves) == 0 {
		return InvalidPos, false
	}
	return m.moves[len(m.moves)-1], true
}

// MoveCount reports how many applied moves are recorded for revert.
func (m *BoardMap) MoveCount() int {
	return len(m.moves)
}

// Reset clears the board and rebuilds all line buffers and the hash.
func (m *BoardMap) Reset() {
	m.board.Reset()
	m.rebuild()
}

// SyncWithBoard re-derives the whole map from an externally supplied
// position. The move history is discarded, so RevertMove afterwards only
// covers moves applied after the sync.
func (m *BoardMap) SyncWithBoard(board *Board) {
	*m.board = *board
	m.rebuild()
}

func (m *BoardMap) rebuild() {
	for index := range m.lines {
		length := lineLength(index)
		if m.lines[index] == nil {
			m.lines[index] = make([]byte, length+2*linePad)
		}
		buf := m.lines[index]
		for i := 0; i < linePad; i++ {
			buf[i] = symbolBorder
			buf[len(buf)-1-i] = symbolBorder
		}
		for i := 0; i < length; i++ {
			buf[linePad+i] = symbolEmpty
		}
	}
	m.hash = 0
	m.moves = m.moves[:0]
	for pose := Pos(0); pose < BoardCells; pose++ {
		player := m.board.stoneAt(pose)
		if player == None {
			continue
		}
		m.setCell(pose, player)
		m.hash ^= getZobrist().stone(pose, player)
	}
}

func (m *BoardMap) setCell(pose Pos, player Player) {
	symbol := playerSymbol(player)
	for _, dir := range Directions {
		index, offset := ParseIndex(pose, dir)
		m.lines[index][linePad+offset] = symbol
	}
}
