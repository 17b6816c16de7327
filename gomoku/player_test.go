package gomoku

import "testing"

func TestNegate(t *testing.T) {
	if Black.Negate() != White {
		t.Fatalf("negate(Black) = %v, want White", Black.Negate())
	}
	if White.Negate() != Black {
		t.Fatalf("negate(White) = %v, want Black", White.Negate())
	}
	if None.Negate() != None {
		t.Fatalf("negate(None) = %v, want None", None.Negate())
	}
}

func TestFinalScoreLaw(t *testing.T) {
	players := []Player{White, None, Black}
	for _, player := range players {
		for _, winner := range players {
			var want float64
			switch {
			case player == None || winner == None:
				want = 0
			case player == winner:
				want = 1
			default:
				want = -1
			}
			if got := FinalScore(player, winner); got != want {
				t.Fatalf("FinalScore(%v, %v) = %v, want %v", player, winner, got, want)
			}
		}
	}
}
