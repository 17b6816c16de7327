package gomoku

import (
	"reflect"
	"testing"
)

func TestParseIndexBijection(t *testing.T) {
	for _, dir := range Directions {
		seen := make(map[[2]int]Pos, BoardCells)
		for pose := Pos(0); pose < BoardCells; pose++ {
			index, offset := ParseIndex(pose, dir)
			if index < 0 || index >= lineCount {
				t.Fatalf("dir %d pos %v: line index %d out of range", dir, pose, index)
			}
			if lineDirection(index) != dir {
				t.Fatalf("dir %d pos %v: index %d belongs to direction %d", dir, pose, index, lineDirection(index))
			}
			if offset < 0 || offset >= lineLength(index) {
				t.Fatalf("dir %d pos %v: offset %d outside line length %d", dir, pose, offset, lineLength(index))
			}
			key := [2]int{index, offset}
			if prev, ok := seen[key]; ok {
				t.Fatalf("dir %d: positions %v and %v map to the same (index, offset) %v", dir, prev, pose, key)
			}
			seen[key] = pose
			if back := linePos(index, offset); back != pose {
				t.Fatalf("dir %d: linePos(%d, %d) = %v, want %v", dir, index, offset, back, pose)
			}
		}
	}
}

func TestLineLengthsSumToBoard(t *testing.T) {
	perDirection := map[Direction]int{}
	for index := 0; index < lineCount; index++ {
		perDirection[lineDirection(index)] += lineLength(index)
	}
	for _, dir := range Directions {
		if perDirection[dir] != BoardCells {
			t.Fatalf("direction %d line lengths sum to %d, want %d", dir, perDirection[dir], BoardCells)
		}
	}
}

func TestLineBuffersTrackBoard(t *testing.T) {
	m := NewBoardMap(nil)
	moves := []Pos{NewPos(7, 7), NewPos(0, 0), NewPos(8, 8), NewPos(14, 14), NewPos(7, 8)}
	for _, move := range moves {
		if result := m.ApplyMove(move); result == None {
			t.Fatalf("unexpected game end at %v", move)
		}
	}
	board := m.Board()
	for pose := Pos(0); pose < BoardCells; pose++ {
		want := playerSymbol(board.stoneAt(pose))
		for _, dir := range Directions {
			index, offset := ParseIndex(pose, dir)
			if got := m.lines[index][linePad+offset]; got != want {
				t.Fatalf("pos %v dir %d: line byte %q, want %q", pose, dir, got, want)
			}
		}
	}
}

func TestLineViewShape(t *testing.T) {
	m := NewBoardMap(nil)
	m.ApplyMove(NewPos(7, 7))
	view := m.LineView(NewPos(7, 7), Horizontal)
	if len(view) != TargetLen {
		t.Fatalf("view length %d, want %d", len(view), TargetLen)
	}
	if view[TargetLen/2] != symbolBlack {
		t.Fatalf("view centre %q, want %q", view[TargetLen/2], byte(symbolBlack))
	}
	corner := m.LineView(NewPos(0, 0), Horizontal)
	for i := 0; i < TargetLen/2; i++ {
		if corner[i] != symbolBorder {
			t.Fatalf("corner view[%d] = %q, want border", i, corner[i])
		}
	}
	if corner[TargetLen/2] != symbolEmpty {
		t.Fatalf("corner view centre %q, want empty", corner[TargetLen/2])
	}
}

func TestHashApplyRevert(t *testing.T) {
	m := NewBoardMap(nil)
	if m.Hash() != 0 {
		t.Fatalf("empty position hash %d, want 0", m.Hash())
	}
	m.ApplyMove(NewPos(7, 7))
	hashOne := m.Hash()
	if hashOne == 0 {
		t.Fatalf("hash unchanged after move")
	}
	m.ApplyMove(NewPos(8, 8))
	m.RevertMove(1)
	if m.Hash() != hashOne {
		t.Fatalf("hash %d after revert, want %d", m.Hash(), hashOne)
	}
	m.RevertMove(1)
	if m.Hash() != 0 {
		t.Fatalf("hash %d after full revert, want 0", m.Hash())
	}
}

func TestHashIsPositional(t *testing.T) {
	// Two move orders reaching the same stone placement hash identically.
	a := NewBoardMap(nil)
	a.ApplyMove(NewPos(3, 3)) // black
	a.ApplyMove(NewPos(5, 5)) // white
	a.ApplyMove(NewPos(4, 4)) // black

	b := NewBoardMap(nil)
	b.ApplyMove(NewPos(4, 4)) // black
	b.ApplyMove(NewPos(5, 5)) // white
	b.ApplyMove(NewPos(3, 3)) // black

	if a.Hash() != b.Hash() {
		t.Fatalf("transposed orders hash differently: %d vs %d", a.Hash(), b.Hash())
	}
}

func TestRejectedMoveLeavesMapUnchanged(t *testing.T) {
	m := NewBoardMap(nil)
	m.ApplyMove(NewPos(7, 7))
	hash := m.Hash()
	lines := deepCopyLines(m)
	if result := m.ApplyMove(NewPos(7, 7)); result != m.Board().Status().Current {
		t.Fatalf("occupied apply returned %v", result)
	}
	if m.Hash() != hash {
		t.Fatalf("hash changed by rejected move")
	}
	if !reflect.DeepEqual(lines, deepCopyLines(m)) {
		t.Fatalf("line buffers changed by rejected move")
	}
}

func TestSyncWithBoard(t *testing.T) {
	board := NewBoard()
	board.ApplyMove(NewPos(7, 7), true)
	board.ApplyMove(NewPos(0, 14), true)

	m := NewBoardMap(nil)
	m.SyncWithBoard(board)

	replay := NewBoardMap(nil)
	replay.ApplyMove(NewPos(7, 7))
	replay.ApplyMove(NewPos(0, 14))

	if m.Hash() != replay.Hash() {
		t.Fatalf("synced hash %d, want %d", m.Hash(), replay.Hash())
	}
	if !reflect.DeepEqual(deepCopyLines(m), deepCopyLines(replay)) {
		t.Fatalf("synced line buffers differ from incremental ones")
	}
}

func deepCopyLines(m *BoardMap) [][]byte {
	lines := make([][]byte, lineCount)
	for i := range m.lines {
		lines[i] = append([]byte(nil), m.lines[i]...)
	}
	return lines
}
