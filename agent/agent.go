// Package agent provides simple move-selection policies on top of an
// evaluator: enough to drive self-play and exercise the incremental
// signals, while real tree search stays out of process.
package agent

import (
	"errors"

	"github.com/kxvrh/GomokuAI/gomoku"
)

// ErrGameOver is returned when a move is requested on a finished game.
var ErrGameOver = errors.New("agent: game already ended")

// Agent picks the next move for the player to move on the evaluator's
// current position. Implementations read the evaluator, never mutate it.
type Agent interface {
	Name() string
	ChooseMove(ev *gomoku.Evaluator) (gomoku.Pos, error)
}

// Random plays a uniformly chosen legal move.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) ChooseMove(ev *gomoku.Evaluator) (gomoku.Pos, error) {
	if ev.Board().Status().Ended {
		return gomoku.InvalidPos, ErrGameOver
	}
	return ev.Board().RandomMove()
}

// Greedy plays the empty cell with the highest combined attack and
// defence score, breaking ties by local stone density so equal-scoring
// cells near the action win over remote ones.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) ChooseMove(ev *gomoku.Evaluator) (gomoku.Pos, error) {
	board := ev.Board()
	player := board.Status().Current
	if player == gomoku.None {
		return gomoku.InvalidPos, ErrGameOver
	}
	attack := ev.Scores(player, player)
	defence := ev.Scores(player.Negate(), player)
	ownDensity := ev.Density(player)
	oppDensity := ev.Density(player.Negate())

	best := gomoku.InvalidPos
	bestScore, bestTie := 0, 0
	for pose := gomoku.Pos(0); pose < gomoku.BoardCells; pose++ {
		if !board.CheckMove(pose) {
			continue
		}
		score := attack[pose] + defence[pose]
		tie := ownDensity[pose] + oppDensity[pose]
		if best == gomoku.InvalidPos || score > bestScore ||
			(score == bestScore && tie > bestTie) {
			best, bestScore, bestTie = pose, score, tie
		}
	}
	if best == gomoku.InvalidPos {
		return gomoku.InvalidPos, gomoku.ErrBoardFull
	}
	return best, nil
}
