package gomoku

// Player identifies a side of the game. The zero value None doubles as
// "game ended" when stored as the player to move, and as "no winner yet"
// when stored as the winner.
type Player int8

const (
	White Player = -1
	None  Player = 0
	Black Player = 1
)

// Negate returns the opponent. The opponent of None is still None.
func (p Player) Negate() Player {
	return -p
}

// FinalScore reports the game outcome from player's point of view:
// +1 when player and winner are the same non-None side, -1 when both are
// non-None and differ, 0 when either is None. Signed multiplication of
// the encodings is exactly that law.
func FinalScore(player, winner Player) float64 {
	return float64(player) * float64(winner)
}

// index maps White/None/Black onto 0/1/2 for state arrays.
func (p Player) index() int {
	return int(p) + 1
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}
