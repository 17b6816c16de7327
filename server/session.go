// Package server exposes one evaluator over HTTP and websocket: a
// spectator surface for inspecting live positions and their tactical
// signals, not a multiplayer protocol.
package server

import (
	"fmt"
	"sync"

	"github.com/kxvrh/GomokuAI/gomoku"
)

// StatusResponse is the externally visible position snapshot.
type StatusResponse struct {
	Board      [][]int `json:"board"`
	NextPlayer int     `json:"next_player"`
	Winner     int     `json:"winner"`
	Status     string  `json:"status"`
	MoveCount  int     `json:"move_count"`
	Hash       string  `json:"hash"`
}

type moveResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
	StatusResponse
}

type vectorResponse struct {
	Player      int   `json:"player"`
	Perspective int   `json:"perspective,omitempty"`
	Values      []int `json:"values"`
}

// Session serializes access to one Evaluator. The core structures are
// strictly single threaded; the session mutex is that single-mutator
// discipline stretched over concurrent HTTP handlers.
type Session struct {
	mu sync.Mutex
	ev *gomoku.Evaluator
}

// NewSession wraps a fresh evaluator. A nil cfg selects the default
// tactics.
func NewSession(cfg *gomoku.TacticalConfig) *Session {
	return &Session{ev: gomoku.NewEvaluator(nil, cfg)}
}

// Status reports the current position.
func (s *Session) Status() StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Move plays (x, y) for the player to move.
func (s *Session) Move(x, y int) (StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || x >= gomoku.Width || y < 0 || y >= gomoku.Height {
		return StatusResponse{}, fmt.Errorf("move %d,%d out of bounds", x, y)
	}
	mover := s.ev.Board().Status().Current
	if mover == gomoku.None {
		return StatusResponse{}, fmt.Errorf("game already ended")
	}
	if result := s.ev.ApplyMove(gomoku.NewPos(x, y)); result == mover {
		return StatusResponse{}, fmt.Errorf("cell %d,%d occupied", x, y)
	}
	return s.statusLocked(), nil
}

// Revert undoes the count most recent moves (at least one).
func (s *Session) Revert(count int) StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if count < 1 {
		count = 1
	}
	s.ev.RevertMove(count)
	return s.statusLocked()
}

// Random plays a uniformly chosen legal move and reports it.
func (s *Session) Random() (moveResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ev.Board().Status().Ended {
		return moveResponse{}, fmt.Errorf("game already ended")
	}
	move, err := s.ev.Board().RandomMove()
	if err != nil {
		return moveResponse{}, err
	}
	s.ev.ApplyMove(move)
	return moveResponse{X: move.X(), Y: move.Y(), StatusResponse: s.statusLocked()}, nil
}

// Reset restores the empty position.
func (s *Session) Reset() StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ev.Reset()
	return s.statusLocked()
}

// Scores copies player's per-cell scores as seen from perspective.
func (s *Session) Scores(player, perspective gomoku.Player) vectorResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return vectorResponse{
		Player:      playerToInt(player),
		Perspective: playerToInt(perspective),
		Values:      append([]int(nil), s.ev.Scores(player, perspective)...),
	}
}

// Density copies player's per-cell stone density.
func (s *Session) Density(player gomoku.Player) vectorResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return vectorResponse{
		Player: playerToInt(player),
		Values: append([]int(nil), s.ev.Density(player)...),
	}
}

func (s *Session) statusLocked() StatusResponse {
	board := s.ev.Board()
	status := board.Status()
	return StatusResponse{
		Board:      boardToGrid(board),
		NextPlayer: playerToInt(status.Current),
		Winner:     playerToInt(status.Winner),
		Status:     statusToString(status),
		MoveCount:  board.MoveCounts(gomoku.Black) + board.MoveCounts(gomoku.White),
		Hash:       fmt.Sprintf("0x%016x", s.ev.BoardMap().Hash()),
	}
}

func boardToGrid(board *gomoku.Board) [][]int {
	black := board.MoveStates(gomoku.Black)
	white := board.MoveStates(gomoku.White)
	rows := make([][]int, gomoku.Height)
	for y := 0; y < gomoku.Height; y++ {
		row := make([]int, gomoku.Width)
		for x := 0; x < gomoku.Width; x++ {
			switch pose := gomoku.NewPos(x, y); {
			case black[pose]:
				row[x] = 1
			case white[pose]:
				row[x] = 2
			}
		}
		rows[y] = row
	}
	return rows
}

func playerToInt(player gomoku.Player) int {
	switch player {
	case gomoku.Black:
		return 1
	case gomoku.White:
		return 2
	default:
		return 0
	}
}

func intToPlayer(value int) (gomoku.Player, bool) {
	switch value {
	case 1:
		return gomoku.Black, true
	case 2:
		return gomoku.White, true
	default:
		return gomoku.None, false
	}
}

func statusToString(status gomoku.Status) string {
	switch {
	case !status.Ended:
		return "running"
	case status.Winner == gomoku.Black:
		return "black_won"
	case status.Winner == gomoku.White:
		return "white_won"
	default:
		return "draw"
	}
}
