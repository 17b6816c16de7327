package gomoku

import (
	"math/rand"
	"testing"
)

func TestBuilderRejectsMalformedPrototypes(t *testing.T) {
	cases := []Prototype{
		{Proto: "", Type: LiveTwo, Score: 10},
		{Proto: "xxxxxxxx", Type: LiveFour, Score: 10}, // longer than MaxPatternLen
		{Proto: "xxQxx", Type: DeadFour, Score: 10},    // symbol outside alphabet
		{Proto: "oo---", Type: LiveTwo, Score: 10},     // no own stone
		{Proto: "xx-xx", Type: patternTypeCount, Score: 10},
		{Proto: "xx-xx", Type: DeadFour, Score: -1},
	}
	for _, proto := range cases {
		if _, err := NewPatternSearch([]Prototype{proto}); err == nil {
			t.Fatalf("prototype %+v accepted, want error", proto)
		}
	}
}

func TestBuilderRejectsCollidingCatalogue(t *testing.T) {
	cases := [][]Prototype{
		// Verbatim duplicate.
		{{"xxx", DeadThree, 30}, {"xxx", DeadThree, 30}},
		// Distinct templates whose mirrors coincide.
		{{"oxx---", DeadTwo, 150}, {"---xxo", DeadTwo, 150}},
	}
	for _, protos := range cases {
		if _, err := NewPatternSearch(protos); err == nil {
			t.Fatalf("catalogue %+v accepted, want duplicate-pattern error", protos)
		}
	}
	// An entry's own symmetries are merged, not rejected.
	if _, err := NewPatternSearch([]Prototype{{"xx-xx", DeadFour, 2600}}); err != nil {
		t.Fatalf("palindrome template rejected: %v", err)
	}
}

func TestDeriveColourFlipAndMirror(t *testing.T) {
	search, err := NewPatternSearch([]Prototype{{Proto: "oxxx--", Type: DeadThree, Score: 100}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var black, white, border int
	for _, pattern := range search.Patterns() {
		if pattern.Type != DeadThree {
			t.Fatalf("derived pattern has type %v", pattern.Type)
		}
		switch pattern.Favour {
		case Black:
			black++
		case White:
			white++
		default:
			t.Fatalf("derived pattern favours None")
		}
		if pattern.Str[0] == symbolBorder || pattern.Str[len(pattern.Str)-1] == symbolBorder {
			border++
		}
	}
	// Forward + mirrored orientations, each with a border variant, per colour.
	if black != 4 || white != 4 {
		t.Fatalf("derived %d black / %d white variants, want 4 / 4", black, white)
	}
	if border != 4 {
		t.Fatalf("derived %d border variants, want 4", border)
	}
}

func TestMatchesFive(t *testing.T) {
	search := DefaultTactics().Search
	entries := search.Matches([]byte("oxxxxxo"))
	if len(entries) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(entries), entries)
	}
	entry := entries[0]
	if entry.Pattern.Type != Five || entry.Pattern.Favour != Black {
		t.Fatalf("matched %+v, want black Five", entry.Pattern)
	}
	if entry.Offset != 5 {
		t.Fatalf("match ends at %d, want 5", entry.Offset)
	}
}

func TestSuffixPatternsAllReported(t *testing.T) {
	search, err := NewPatternSearch([]Prototype{
		{Proto: "xxx", Type: DeadThree, Score: 30},
		{Proto: "xx", Type: DeadTwo, Score: 20},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	entries := search.Matches([]byte("xxxx"))
	type match struct {
		t      PatternType
		offset int
	}
	got := make([]match, len(entries))
	for i, entry := range entries {
		got[i] = match{entry.Pattern.Type, entry.Offset}
	}
	// Scan order first; at a shared offset the deeper match precedes the
	// suffix reached through the failure link.
	want := []match{
		{DeadTwo, 1},
		{DeadThree, 2}, {DeadTwo, 2},
		{DeadThree, 3}, {DeadTwo, 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matches %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGeneratorMatchesEagerCollection(t *testing.T) {
	search := DefaultTactics().Search
	target := []byte("^^----x-xx--ooo--x----^^")
	want := search.Matches(target)
	gen := search.Execute(target)
	for i := range want {
		entry, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted at %d, want %d entries", i, len(want))
		}
		if entry != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, entry, want[i])
		}
	}
	if entry, ok := gen.Next(); ok {
		t.Fatalf("generator yielded extra entry %+v", entry)
	}
}

// Matching over the full line must equal the union of matching over every
// window that fully contains a pattern's span. The evaluator's
// incremental rescans rely on this locality.
func TestWindowLocality(t *testing.T) {
	search := DefaultTactics().Search
	rng := rand.New(rand.NewSource(7))
	symbols := []byte{symbolBlack, symbolWhite, symbolEmpty, symbolEmpty}
	for trial := 0; trial < 50; trial++ {
		line := make([]byte, Width+2*linePad)
		for i := range line {
			line[i] = symbolBorder
		}
		for i := 0; i < Width; i++ {
			line[linePad+i] = symbols[rng.Intn(len(symbols))]
		}

		type span struct {
			pattern *Pattern
			offset  int
		}
		full := make(map[span]bool)
		for _, entry := range search.Matches(line) {
			full[span{entry.Pattern, entry.Offset}] = true
		}
		windowed := make(map[span]bool)
		for start := 0; start+TargetLen <= len(line); start++ {
			for _, entry := range search.Matches(line[start : start+TargetLen]) {
				windowed[span{entry.Pattern, start + entry.Offset}] = true
			}
		}
		if len(full) != len(windowed) {
			t.Fatalf("trial %d: %d full matches, %d windowed", trial, len(full), len(windowed))
		}
		for key := range full {
			if !windowed[key] {
				t.Fatalf("trial %d: match %+v missing from windows", trial, key)
			}
		}
	}
}

func TestBorderBlocksLikeStone(t *testing.T) {
	search := DefaultTactics().Search
	// Four against the wall, open on the other side: a dead four.
	entries := search.Matches([]byte("^xxxx------"))
	foundDeadFour := false
	for _, entry := range entries {
		if entry.Pattern.Type == LiveFour {
			t.Fatalf("wall-blocked four reported live: %+v", entry.Pattern)
		}
		if entry.Pattern.Type == DeadFour && entry.Pattern.Favour == Black {
			foundDeadFour = true
		}
	}
	if !foundDeadFour {
		t.Fatalf("wall-blocked four not recognised in %+v", entries)
	}
}
