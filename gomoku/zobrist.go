package gomoku

import "sync"

// Zobrist keys for every (cell, colour) pair. XOR-ing a key in is its own
// inverse, which is what lets BoardMap fold moves into its hash on apply
// and fold them back out on revert.
type zobristTable struct {
	cells [BoardCells * 2]uint64
}

var (
	zobristOnce sync.Once
	zobrist     *zobristTable
)

func getZobrist() *zobristTable {
	zobristOnce.Do(func() {
		rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(BoardCells)}
		table := &zobristTable{}
		for i := range table.cells {
			table.cells[i] = rng.next()
		}
		zobrist = table
	})
	return zobrist
}

func (z *zobristTable) stone(pose Pos, player Player) uint64 {
	idx := int(pose) * 2
	if player == White {
		idx++
	}
	return z.cells[idx]
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
