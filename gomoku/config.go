package gomoku

import "sync"

// TacticalConfig is the process-wide declarative configuration of the
// evaluator: the compiled pattern catalogue, the density kernel, and the
// shared compound base score. It is built once and never mutated; share
// one instance across evaluators freely.
type TacticalConfig struct {
	Search        *PatternSearch
	BlockWeights  [BlockSize][BlockSize]int
	CompoundScore int
}

// NewTacticalConfig compiles a catalogue into a config. Malformed
// prototypes fail here, at construction, never at match time.
func NewTacticalConfig(protos []Prototype, weights [BlockSize][BlockSize]int, compoundScore int) (*TacticalConfig, error) {
	search, err := NewPatternSearch(protos)
	if err != nil {
		return nil, err
	}
	return &TacticalConfig{
		Search:        search,
		BlockWeights:  weights,
		CompoundScore: compoundScore,
	}, nil
}

// The built-in catalogue, written from the favoured player's view
// ('x' self, 'o' opponent, '-' empty). Mirrors, colour flips and border
// variants are derived by the builder; only canonical shapes are listed.
// Scores are the shape weights, on the scale the greedy consumers expect.
var defaultPrototypes = []Prototype{
	{"xxxxx", Five, 10000},

	{"-xxxx-", LiveFour, 9000},

	{"oxxxx-", DeadFour, 2500},
	{"xxx-x", DeadFour, 3000},
	{"xx-xx", DeadFour, 2600},

	{"-xxx--", LiveThree, 3000},
	{"-xx-x-", LiveThree, 2800},

	{"oxxx--", DeadThree, 500},
	{"oxx-x-", DeadThree, 400},
	{"ox-xx-", DeadThree, 380},

	{"--xx--", LiveTwo, 650},
	{"-x-x-", LiveTwo, 600},
	{"-x--x-", LiveTwo, 550},

	{"oxx---", DeadTwo, 150},
	{"ox-x--", DeadTwo, 140},
	{"ox--x-", DeadTwo, 120},

	{"--x--", LiveOne, 40},

	{"ox---", DeadOne, 15},
}

// Density kernel: weights halve per Chebyshev ring around the move.
var defaultBlockWeights = [BlockSize][BlockSize]int{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 2, 2, 2, 2, 2, 1},
	{1, 2, 4, 4, 4, 2, 1},
	{1, 2, 4, 8, 4, 2, 1},
	{1, 2, 4, 4, 4, 2, 1},
	{1, 2, 2, 2, 2, 2, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

// Double-three, four-three and double-four share one base score.
const defaultCompoundScore = 8000

var (
	defaultTacticsOnce sync.Once
	defaultTactics     *TacticalConfig
)

// DefaultTactics returns the built-in configuration, compiled lazily on
// first use. The built-in catalogue failing to compile is a programming
// error, hence the panic.
func DefaultTactics() *TacticalConfig {
	defaultTacticsOnce.Do(func() {
		cfg, err := NewTacticalConfig(defaultPrototypes, defaultBlockWeights, defaultCompoundScore)
		if err != nil {
			panic("gomoku: built-in pattern catalogue is invalid: " + err.Error())
		}
		defaultTactics = cfg
	})
	return defaultTactics
}
