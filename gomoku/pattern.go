package gomoku

import "github.com/pkg/errors"

// PatternType classifies a tactical shape. Five is terminal; it stays in
// the catalogue for matching completeness but the evaluator leaves its
// bookkeeping to the board's direct win scan.
type PatternType int

const (
	DeadOne PatternType = iota
	LiveOne
	DeadTwo
	LiveTwo
	DeadThree
	LiveThree
	DeadFour
	LiveFour
	Five
	patternTypeCount
)

var patternTypeNames = [patternTypeCount]string{
	"DeadOne", "LiveOne", "DeadTwo", "LiveTwo",
	"DeadThree", "LiveThree", "DeadFour", "LiveFour", "Five",
}

func (t PatternType) String() string {
	if t < 0 || t >= patternTypeCount {
		return "Unknown"
	}
	return patternTypeNames[t]
}

// Template alphabet for prototypes, written from the favoured player's
// point of view: 'x' own stone, 'o' opponent stone, '-' empty cell,
// '~' empty-or-border (matched but never bookkept).
const protoWildcard = '~'

// Prototype is one declarative catalogue entry. The builder derives the
// concrete automaton patterns from it: a colour flip for the white-favour
// variants, a reversal for the mirror orientation, and border
// substitutions for blocking stones at either end.
type Prototype struct {
	Proto string
	Type  PatternType
	Score int
}

// Pattern is an immutable matched shape: a concrete template over the
// line alphabet, its tactical type, the player it favours, and its fixed
// heuristic score.
type Pattern struct {
	Str    string
	Type   PatternType
	Favour Player
	Score  int
}

func (p Prototype) validate() error {
	if len(p.Proto) == 0 || len(p.Proto) > MaxPatternLen {
		return errors.Errorf("template %q: length %d not in [1,%d]", p.Proto, len(p.Proto), MaxPatternLen)
	}
	if p.Type < 0 || p.Type >= patternTypeCount {
		return errors.Errorf("template %q: unknown pattern type %d", p.Proto, int(p.Type))
	}
	if p.Score < 0 {
		return errors.Errorf("template %q: negative score %d", p.Proto, p.Score)
	}
	hasSelf := false
	for i := 0; i < len(p.Proto); i++ {
		switch p.Proto[i] {
		case symbolBlack:
			hasSelf = true
		case symbolWhite, symbolEmpty, protoWildcard:
		default:
			return errors.Errorf("template %q: symbol %q outside alphabet \"xo-~\"", p.Proto, p.Proto[i])
		}
	}
	if !hasSelf {
		return errors.Errorf("template %q: no own stone", p.Proto)
	}
	return nil
}

// derive expands the prototype into the concrete favour-specific patterns
// inserted into the automaton, deduplicating symmetric shapes.
func (p Prototype) derive() []Pattern {
	seen := make(map[string]struct{}, 8)
	var out []Pattern
	add := func(str string, favour Player) {
		key := string(playerSymbol(favour)) + str
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, Pattern{Str: str, Type: p.Type, Favour: favour, Score: p.Score})
	}
	for _, favour := range [2]Player{Black, White} {
		self, opp := byte(symbolBlack), byte(symbolWhite)
		if favour == White {
			self, opp = opp, self
		}
		rendered := make([]byte, len(p.Proto))
		for i := 0; i < len(p.Proto); i++ {
			switch p.Proto[i] {
			case symbolBlack:
				rendered[i] = self
			case symbolWhite:
				rendered[i] = opp
			default:
				rendered[i] = p.Proto[i]
			}
		}
		for _, oriented := range orientations(rendered) {
			for _, variant := range borderVariants(oriented, opp) {
				add(variant, favour)
			}
		}
	}
	return out
}

// orientations returns the template and its mirror. The automaton scans
// lines in one fixed order, so asymmetric shapes need both.
func orientations(str []byte) []string {
	fwd := string(str)
	rev := make([]byte, len(str))
	for i := range str {
		rev[i] = str[len(str)-1-i]
	}
	if bwd := string(rev); bwd != fwd {
		return []string{fwd, bwd}
	}
	return []string{fwd}
}

// borderVariants substitutes the border symbol for a blocking opponent
// stone at either end: the wall blocks a shape exactly like a stone does.
func borderVariants(str string, opp byte) []string {
	variants := []string{str}
	if str[0] == opp {
		variants = append(variants, string(symbolBorder)+str[1:])
	}
	if str[len(str)-1] == opp {
		n := len(variants)
		for i := 0; i < n; i++ {
			variants = append(variants, variants[i][:len(str)-1]+string(symbolBorder))
		}
	}
	return variants
}
