package gomoku

// Group buckets a (favour, perspective) pair into 0..3:
// group = (favour==Black)<<1 | (perspective==Black).
func Group(favour, perspective Player) int {
	group := 0
	if favour == Black {
		group |= 2
	}
	if perspective == Black {
		group |= 1
	}
	return group
}

// Record is the packed per-cell tactical field. The 16 bits carry two
// alternative encodings, mirroring the two kinds of distribution arrays
// that hold records:
//
//   - direction view (pattern distributions): 4 groups x 4 direction bits,
//     bit index = Group(favour, perspective)*4 + direction;
//   - counter view (compound distributions): 2 players x 8-bit running
//     count, White in the low byte, Black in the high byte.
//
// A given record array uses exactly one of the views; they are never
// mixed on the same record.
type Record struct {
	field uint16
}

func dirBit(favour, perspective Player, dir Direction) uint16 {
	return 1 << (uint(Group(favour, perspective)*directionCount) + uint(dir))
}

// SetDir sets or clears the presence bit for a live tactical pattern of
// the given favour at this cell in dir. Setting an already-set bit is
// idempotent, not counting.
func (r *Record) SetDir(on bool, favour, perspective Player, dir Direction) {
	if on {
		r.field |= dirBit(favour, perspective, dir)
	} else {
		r.field &^= dirBit(favour, perspective, dir)
	}
}

// clearDir clears the dir presence bit in all four (favour, perspective)
// groups at once.
func (r *Record) clearDir(dir Direction) {
	r.field &^= 0x1111 << uint(dir)
}

// Dir reports the presence bit for one direction.
func (r *Record) Dir(favour, perspective Player, dir Direction) bool {
	return r.field&dirBit(favour, perspective, dir) != 0
}

// DirMask packs the four direction bits of one group.
func (r *Record) DirMask(favour, perspective Player) uint8 {
	return uint8(r.field >> (uint(Group(favour, perspective)) * directionCount) & 0xf)
}

func countShift(player Player) uint {
	if player == Black {
		return 8
	}
	return 0
}

// AddCount adjusts the 8-bit running count for player.
func (r *Record) AddCount(delta int, player Player) {
	shift := countShift(player)
	count := int(r.field>>shift&0xff) + delta
	r.field = r.field&^(0xff<<shift) | uint16(count&0xff)<<shift
}

// Count reads the 8-bit running count for player.
func (r *Record) Count(player Player) uint8 {
	return uint8(r.field >> countShift(player) & 0xff)
}
