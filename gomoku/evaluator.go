package gomoku

import "math/bits"

// CompoundType names the derived multi-direction tactical facts.
type CompoundType int

const (
	DoubleThree CompoundType = iota
	FourThree
	DoubleFour
	compoundTypeCount
)

// recordReach is how far along a line a move can change a cell's
// direction bits: any instance covering both the move and the cell fits
// inside a single pattern span.
const recordReach = MaxPatternLen - 1

// Evaluator owns a BoardMap and converts each move into incremental
// tactical signals: per-cell pattern records, per-cell score vectors for
// the four (favour, perspective) groups, per-player density vectors, and
// compound (double-three / four-three / double-four) bookkeeping.
//
// Like the structures beneath it, an Evaluator is strictly single
// threaded: one mutator, no sharing. Parallel consumers each own an
// independent instance.
type Evaluator struct {
	boardMap *BoardMap
	cfg      *TacticalConfig

	// One record array per pattern type, direction-bit view. Five is
	// excluded: the board's O(1) scan is already authoritative for wins.
	patternDist [patternTypeCount - 1][]Record
	// One record array per compound type, counter view.
	compoundDist [compoundTypeCount][]Record

	density [2][]int
	scores  [4][]int
}

// NewEvaluator wraps board (nil for a fresh one), taking exclusive
// ownership, and derives all tactical state from its current position.
// A nil cfg selects the process-wide default tactics.
func NewEvaluator(board *Board, cfg *TacticalConfig) *Evaluator {
	if cfg == nil {
		cfg = DefaultTactics()
	}
	ev := &Evaluator{boardMap: NewBoardMap(board), cfg: cfg}
	for i := range ev.patternDist {
		ev.patternDist[i] = make([]Record, BoardCells)
	}
	for i := range ev.compoundDist {
		ev.compoundDist[i] = make([]Record, BoardCells)
	}
	for i := range ev.density {
		ev.density[i] = make([]int, BoardCells)
	}
	for i := range ev.scores {
		ev.scores[i] = make([]int, BoardCells)
	}
	ev.rebuildState()
	return ev
}

// Board exposes the wrapped board for reads. Mutate only through the
// evaluator.
func (ev *Evaluator) Board() *Board {
	return ev.boardMap.Board()
}

// BoardMap exposes the wrapped map (line views, hash).
func (ev *Evaluator) BoardMap() *BoardMap {
	return ev.boardMap
}

// Scores returns the accumulated per-cell scores of player's patterns as
// seen from perspective. The slice is a live view into evaluator state:
// read it, do not hold it across moves or mutate it.
func (ev *Evaluator) Scores(player, perspective Player) []int {
	return ev.scores[Group(player, perspective)]
}

// Density returns player's per-cell local stone density. Live view, same
// caveats as Scores.
func (ev *Evaluator) Density(player Player) []int {
	return ev.density[densityIndex(player)]
}

// ApplyMove plays move for the player to move, with the same tri-state
// return as Board.ApplyMove. On success the four directional windows
// around the move are rescanned: scores of instances present before the
// stone are retracted, scores of instances present after it are applied,
// and the direction bits of every cell the move can reach are re-derived
// from the new line contents.
func (ev *Evaluator) ApplyMove(move Pos) Player {
	board := ev.boardMap.Board()
	if board.current == None || !board.CheckMove(move) {
		return board.current
	}
	mover := board.current
	ev.updateMove(move, -1)
	result := ev.boardMap.ApplyMove(move)
	ev.updateMove(move, +1)
	ev.refreshRecords(move)
	ev.updateBlock(+1, move, mover)
	return result
}

// RevertMove undoes the count most recent moves, exactly inverting their
// ApplyMove updates. LIFO only, like everything below it.
func (ev *Evaluator) RevertMove(count int) Player {
	for ; count > 0; count-- {
		move, ok := ev.boardMap.LastMove()
		if !ok {
			break
		}
		mover := ev.boardMap.Board().stoneAt(move)
		ev.updateMove(move, -1)
		ev.boardMap.RevertMove(1)
		ev.updateMove(move, +1)
		ev.refreshRecords(move)
		ev.updateBlock(-1, move, mover)
	}
	return ev.boardMap.Board().current
}

// CheckGameEnd delegates terminal detection to the wrapped board.
func (ev *Evaluator) CheckGameEnd() bool {
	return ev.boardMap.Board().Status().Ended
}

// SyncWithBoard realigns the evaluator to an externally mutated position:
// the board map and every record, density and score vector are rebuilt
// from scratch. The revert history is discarded.
func (ev *Evaluator) SyncWithBoard(board *Board) {
	ev.boardMap.SyncWithBoard(board)
	ev.rebuildState()
}

// Reset restores the empty position.
func (ev *Evaluator) Reset() {
	ev.boardMap.Reset()
	ev.rebuildState()
}

// updateMove rescans the four directional windows around move, applying
// delta times the score of every matched instance whose span covers the
// move. Instance lifetimes pair up exactly: an instance is retracted with
// the same empty cells it was applied with, so scores stay the sum over
// instances currently on the board.
func (ev *Evaluator) updateMove(move Pos, delta int) {
	for _, dir := range Directions {
		target := ev.boardMap.LineView(move, dir)
		ev.updateLine(target, delta, move, TargetLen/2, dir, true)
	}
}

// updateLine applies delta times the score of every pattern instance
// found in target to the cells the instance names empty. base is the
// board cell at target[baseIdx]; with coverOnly set, only instances whose
// span includes baseIdx count (the others exist identically before and
// after the move). Both perspectives of the favour carry the same weight;
// consumers weight attack against defence by combining groups.
func (ev *Evaluator) updateLine(target []byte, delta int, base Pos, baseIdx int, dir Direction, coverOnly bool) {
	gen := ev.cfg.Search.Execute(target)
	for {
		entry, ok := gen.Next()
		if !ok {
			return
		}
		pattern := entry.Pattern
		if pattern.Type == Five {
			continue
		}
		start := entry.Offset - len(pattern.Str) + 1
		if coverOnly && (start > baseIdx || entry.Offset < baseIdx) {
			continue
		}
		score := delta * pattern.Score
		for i := 0; i < len(pattern.Str); i++ {
			if pattern.Str[i] != symbolEmpty {
				continue
			}
			pose := Shift(base, start+i-baseIdx, dir)
			if !pose.InBounds() {
				continue
			}
			ev.scores[Group(pattern.Favour, Black)][pose] += score
			ev.scores[Group(pattern.Favour, White)][pose] += score
		}
	}
}

// refreshRecords re-derives the direction bits of every cell within
// recordReach of move along each direction, then settles the compound
// counters of those cells against the fresh bits. Bits are a function of
// the position, never of the move history: toggling them per instance
// would lose the bit of a surviving instance that shares an empty cell
// with a destroyed one, so they are recomputed from the line contents
// instead. Cells further out keep their instance sets unchanged.
func (ev *Evaluator) refreshRecords(move Pos) {
	for _, dir := range Directions {
		for off := -recordReach; off <= recordReach; off++ {
			pose := Shift(move, off, dir)
			if !pose.InBounds() {
				continue
			}
			for i := range ev.patternDist {
				ev.patternDist[i][pose].clearDir(dir)
			}
		}
		// Rescan wide enough to see any instance touching the cleared
		// cells: their own spans extend another recordReach outward.
		index, offset := ParseIndex(move, dir)
		buf := ev.boardMap.lines[index]
		center := linePad + offset
		lo := max(0, center-2*recordReach)
		hi := min(len(buf), center+2*recordReach+1)
		ev.refreshLineRecords(buf[lo:hi], move, center-lo, dir, recordReach)
	}
	for _, dir := range Directions {
		for off := -recordReach; off <= recordReach; off++ {
			pose := Shift(move, off, dir)
			if !pose.InBounds() {
				continue
			}
			ev.updateCompound(pose, Black)
			ev.updateCompound(pose, White)
		}
	}
}

// refreshLineRecords sets the direction bits derivable from target: for
// every non-terminal instance, every cell it names empty within reach of
// base gets the instance's (type, favour) bit in dir, both perspectives.
// Callers clear the affected bits first.
func (ev *Evaluator) refreshLineRecords(target []byte, base Pos, baseIdx int, dir Direction, reach int) {
	gen := ev.cfg.Search.Execute(target)
	for {
		entry, ok := gen.Next()
		if !ok {
			return
		}
		pattern := entry.Pattern
		if pattern.Type == Five {
			continue
		}
		start := entry.Offset - len(pattern.Str) + 1
		for i := 0; i < len(pattern.Str); i++ {
			if pattern.Str[i] != symbolEmpty {
				continue
			}
			off := start + i - baseIdx
			if off < -reach || off > reach {
				continue
			}
			pose := Shift(base, off, dir)
			if !pose.InBounds() {
				continue
			}
			rec := &ev.patternDist[pattern.Type][pose]
			rec.SetDir(true, pattern.Favour, Black, dir)
			rec.SetDir(true, pattern.Favour, White, dir)
		}
	}
}

// updateCompound recomputes the compound facts at pose for player from the
// component records and settles the stored counters against them. A dead
// four counts as a forcing component exactly like a live one: two dead
// fours, or a dead four with a live three, still win by force.
func (ev *Evaluator) updateCompound(pose Pos, player Player) {
	threes := ev.patternDist[LiveThree][pose].DirMask(player, player)
	fours := ev.patternDist[DeadFour][pose].DirMask(player, player) |
		ev.patternDist[LiveFour][pose].DirMask(player, player)
	var want [compoundTypeCount]bool
	want[DoubleThree] = bits.OnesCount8(threes) >= 2
	want[FourThree] = fours != 0 && threes != 0 && bits.OnesCount8(fours|threes) >= 2
	want[DoubleFour] = bits.OnesCount8(fours) >= 2
	for ct := CompoundType(0); ct < compoundTypeCount; ct++ {
		rec := &ev.compoundDist[ct][pose]
		have := rec.Count(player) > 0
		if want[ct] == have {
			continue
		}
		delta := 1
		if !want[ct] {
			delta = -1
		}
		rec.AddCount(delta, player)
		score := delta * ev.cfg.CompoundScore
		ev.scores[Group(player, Black)][pose] += score
		ev.scores[Group(player, White)][pose] += score
	}
}

// updateBlock folds the density kernel centred on move into the mover's
// density vector: a fixed elementwise multiply-accumulate over the block,
// never a board-wide rescan.
func (ev *Evaluator) updateBlock(delta int, move Pos, mover Player) {
	half := BlockSize / 2
	vec := ev.density[densityIndex(mover)]
	for dy := -half; dy <= half; dy++ {
		y := move.Y() + dy
		if y < 0 || y >= Height {
			continue
		}
		for dx := -half; dx <= half; dx++ {
			x := move.X() + dx
			if x < 0 || x >= Width {
				continue
			}
			vec[NewPos(x, y)] += delta * ev.cfg.BlockWeights[dy+half][dx+half]
		}
	}
}

// rebuildState derives all records, densities and scores from the board
// map's current position by scanning every full line once.
func (ev *Evaluator) rebuildState() {
	for i := range ev.patternDist {
		clearRecords(ev.patternDist[i])
	}
	for i := range ev.compoundDist {
		clearRecords(ev.compoundDist[i])
	}
	for i := range ev.density {
		clearInts(ev.density[i])
	}
	for i := range ev.scores {
		clearInts(ev.scores[i])
	}
	for index := 0; index < lineCount; index++ {
		dir := lineDirection(index)
		base := linePos(index, 0)
		ev.updateLine(ev.boardMap.lines[index], +1, base, linePad, dir, false)
		ev.refreshLineRecords(ev.boardMap.lines[index], base, linePad, dir, BoardCells)
	}
	board := ev.boardMap.Board()
	for pose := Pos(0); pose < BoardCells; pose++ {
		ev.updateCompound(pose, Black)
		ev.updateCompound(pose, White)
		if player := board.stoneAt(pose); player != None {
			ev.updateBlock(+1, pose, player)
		}
	}
}

func densityIndex(player Player) int {
	if player == Black {
		return 1
	}
	return 0
}

func clearRecords(records []Record) {
	for i := range records {
		records[i] = Record{}
	}
}

func clearInts(values []int) {
	for i := range values {
		values[i] = 0
	}
}
