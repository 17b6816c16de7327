package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/muesli/termenv"

	"github.com/kxvrh/GomokuAI/agent"
	"github.com/kxvrh/GomokuAI/gomoku"
)

func main() {
	blackName := flag.String("black", "greedy", "black policy: greedy or random")
	whiteName := flag.String("white", "random", "white policy: greedy or random")
	quiet := flag.Bool("quiet", false, "only print the result")
	flag.Parse()

	black, err := policyByName(*blackName)
	if err != nil {
		log.Fatal(err)
	}
	white, err := policyByName(*whiteName)
	if err != nil {
		log.Fatal(err)
	}

	ev := gomoku.NewEvaluator(nil, nil)
	for !ev.CheckGameEnd() {
		policy := black
		if ev.Board().Status().Current == gomoku.White {
			policy = white
		}
		move, err := policy.ChooseMove(ev)
		if err != nil {
			log.Fatalf("%s: %v", policy.Name(), err)
		}
		mover := ev.Board().Status().Current
		if result := ev.ApplyMove(move); result == mover {
			log.Fatalf("%s picked illegal move %v", policy.Name(), move)
		}
		if !*quiet {
			fmt.Printf("%s (%s) plays %v\n", mover, policy.Name(), move)
			fmt.Println(renderBoard(ev.Board()))
		}
	}

	status := ev.Board().Status()
	switch status.Winner {
	case gomoku.Black:
		fmt.Printf("black (%s) wins after %d moves\n", black.Name(), ev.BoardMap().MoveCount())
	case gomoku.White:
		fmt.Printf("white (%s) wins after %d moves\n", white.Name(), ev.BoardMap().MoveCount())
	default:
		fmt.Println("draw")
	}
}

func policyByName(name string) (agent.Agent, error) {
	switch name {
	case "greedy":
		return agent.Greedy{}, nil
	case "random":
		return agent.Random{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func renderBoard(board *gomoku.Board) string {
	blackStone := termenv.String("●").Foreground(termenv.ANSIRed).String()
	whiteStone := termenv.String("●").Foreground(termenv.ANSICyan).String()
	grid := termenv.String("·").Faint().String()

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < gomoku.Width; x++ {
		fmt.Fprintf(&sb, "%2d", x)
	}
	sb.WriteByte('\n')
	blacks := board.MoveStates(gomoku.Black)
	whites := board.MoveStates(gomoku.White)
	for y := 0; y < gomoku.Height; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < gomoku.Width; x++ {
			sb.WriteByte(' ')
			switch pose := gomoku.NewPos(x, y); {
			case blacks[pose]:
				sb.WriteString(blackStone)
			case whites[pose]:
				sb.WriteString(whiteStone)
			default:
				sb.WriteString(grid)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
