package gomoku

import (
	"errors"
	"math/rand"
)

// Status is the externally visible game state snapshot.
type Status struct {
	Ended   bool
	Current Player
	Winner  Player
}

// Board owns per-player occupancy and move counts and applies the
// alternation and win rules. It is a plain value: copying it copies the
// whole position, which keeps syncWithBoard and tests cheap.
//
// Invariants: the three occupancy arrays partition the grid (their counts
// always sum to BoardCells), current == None exactly when the game has
// ended, and winner stays None until then.
type Board struct {
	current Player
	winner  Player
	states  [3][BoardCells]bool
	counts  [3]int
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset restores the empty position with Black to move.
func (b *Board) Reset() {
	b.current = Black
	b.winner = None
	for i := range b.states {
		for j := range b.states[i] {
			b.states[i][j] = false
		}
		b.counts[i] = 0
	}
	for j := range b.states[None.index()] {
		b.states[None.index()][j] = true
	}
	b.counts[None.index()] = BoardCells
}

// ApplyMove places a stone for the player to move and returns the player
// expected to act next:
//   - the opponent: move accepted, play continues;
//   - the same player: move rejected (out of bounds, occupied, or game
//     already over) and the board is unchanged;
//   - None: move accepted and the game just ended; the winner is readable
//     through Status.
//
// checkVictory may be disabled by callers that run their own terminal
// detection.
func (b *Board) ApplyMove(move Pos, checkVictory bool) Player {
	if b.current == None || !b.CheckMove(move) {
		return b.current
	}
	b.states[None.index()][move] = false
	b.states[b.current.index()][move] = true
	b.counts[None.index()]--
	b.counts[b.current.index()]++
	if checkVictory && b.CheckGameEnd(move) {
		return b.current // now None
	}
	b.current = b.current.Negate()
	return b.current
}

// RevertMove undoes the most recent placement and returns the player to
// move afterwards (the owner of the removed stone). It fails, leaving the
// board unchanged and returning the current player, when move does not
// hold the stone of the last logical mover.
//
// Revert is defined for LIFO usage only: callers must undo moves in exact
// reverse application order. Reverting an arbitrary historical cell while
// later moves remain applied leaves the model in an unspecified state.
func (b *Board) RevertMove(move Pos) Player {
	if !move.InBounds() {
		return b.current
	}
	owner := b.stoneAt(move)
	if owner == None {
		return b.current
	}
	// While the game is running the last mover is always the opponent of
	// the player to move. After the game ended (current == None) the LIFO
	// contract guarantees move is the final placement, whoever made it.
	if b.current != None && owner != b.current.Negate() {
		return b.current
	}
	b.states[owner.index()][move] = false
	b.states[None.index()][move] = true
	b.counts[owner.index()]--
	b.counts[None.index()]++
	b.current = owner
	b.winner = None
	return b.current
}

// CheckMove reports whether move is on the board and unoccupied. Pure.
func (b *Board) CheckMove(move Pos) bool {
	return move.InBounds() && b.states[None.index()][move]
}

// CheckGameEnd runs terminal detection around the just-played cell: a run
// of MaxRenju or more through move wins for its owner, and a full board
// draws. The scan is bounded by MaxRenju per side per direction, so the
// cost is a small constant independent of board size.
func (b *Board) CheckGameEnd(move Pos) bool {
	player := b.stoneAt(move)
	if player == None {
		return false
	}
	for _, dir := range Directions {
		count := 1
		for offset := 1; offset < MaxRenju; offset++ {
			pose := Shift(move, offset, dir)
			if !pose.InBounds() || !b.states[player.index()][pose] {
				break
			}
			count++
		}
		for offset := 1; offset < MaxRenju; offset++ {
			pose := Shift(move, -offset, dir)
			if !pose.InBounds() || !b.states[player.index()][pose] {
				break
			}
			count++
		}
		if count >= MaxRenju {
			b.winner = player
			b.current = None
			return true
		}
	}
	if b.counts[None.index()] == 0 {
		b.winner = None
		b.current = None
		return true
	}
	return false
}

var ErrBoardFull = errors.New("gomoku: no empty cell left")

// RandomMove returns a uniformly chosen empty cell. A full board is the
// one genuine failure: there is no valid cell to return.
func (b *Board) RandomMove() (Pos, error) {
	empty := b.counts[None.index()]
	if empty == 0 {
		return InvalidPos, ErrBoardFull
	}
	nth := rand.Intn(empty)
	for pose := Pos(0); pose < BoardCells; pose++ {
		if !b.states[None.index()][pose] {
			continue
		}
		if nth == 0 {
			return pose, nil
		}
		nth--
	}
	return InvalidPos, ErrBoardFull
}

// Status reports whether the game has ended, the player to move and the
// winner (meaningful only once ended; None then means a draw).
func (b *Board) Status() Status {
	return Status{
		Ended:   b.current == None,
		Current: b.current,
		Winner:  b.winner,
	}
}

// MoveStates exposes the full occupancy array for player.
func (b *Board) MoveStates(player Player) *[BoardCells]bool {
	return &b.states[player.index()]
}

// MoveCounts reports how many cells hold player's state.
func (b *Board) MoveCounts(player Player) int {
	return b.counts[player.index()]
}

// stoneAt returns the owner of the stone at move, or None when empty.
func (b *Board) stoneAt(move Pos) Player {
	switch {
	case b.states[Black.index()][move]:
		return Black
	case b.states[White.index()][move]:
		return White
	default:
		return None
	}
}
