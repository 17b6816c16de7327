package gomoku

import "github.com/pkg/errors"

// Runtime matching alphabet: the three cell symbols plus the border.
const alphabetSize = 4

func symbolCode(c byte) int {
	switch c {
	case symbolBlack:
		return 0
	case symbolWhite:
		return 1
	case symbolEmpty:
		return 2
	case symbolBorder:
		return 3
	default:
		return -1
	}
}

// Entry is one reported match: the pattern and the index of its last byte
// in the scanned target.
type Entry struct {
	Pattern *Pattern
	Offset  int
}

// PatternSearch is the immutable multi-pattern matcher built once from a
// prototype catalogue. Matching never mutates it, so a single instance is
// safely shared by any number of evaluators.
type PatternSearch struct {
	next     [][alphabetSize]int32
	outputs  [][]int32
	patterns []Pattern
}

// NewPatternSearch validates the catalogue and constructs the automaton.
// Malformed prototypes are a configuration-time error: nothing downstream
// tolerates them.
func NewPatternSearch(protos []Prototype) (*PatternSearch, error) {
	builder := newAhoCorasickBuilder()
	return builder.Build(protos)
}

// Execute starts a lazy left-to-right scan of target. Each call returns an
// independent generator; pulling from one does not disturb another.
func (s *PatternSearch) Execute(target []byte) *Generator {
	return &Generator{search: s, target: target}
}

// Matches eagerly collects everything Execute would yield, in the same
// order: scan position first, then deeper (more specific) patterns before
// the shorter suffixes reached through failure links.
func (s *PatternSearch) Matches(target []byte) []Entry {
	var entries []Entry
	gen := s.Execute(target)
	for {
		entry, ok := gen.Next()
		if !ok {
			return entries
		}
		entries = append(entries, entry)
	}
}

// Patterns exposes the concrete derived patterns, mostly for inspection.
func (s *PatternSearch) Patterns() []Pattern {
	return s.patterns
}

// Generator walks one target string, yielding matches on demand.
type Generator struct {
	search  *PatternSearch
	target  []byte
	state   int32
	index   int
	pending []int32
}

// Next returns the next match in scan order, or ok=false when the target
// is exhausted.
func (g *Generator) Next() (Entry, bool) {
	for {
		if len(g.pending) > 0 {
			id := g.pending[0]
			g.pending = g.pending[1:]
			return Entry{Pattern: &g.search.patterns[id], Offset: g.index - 1}, true
		}
		if g.index >= len(g.target) {
			return Entry{}, false
		}
		if code := symbolCode(g.target[g.index]); code < 0 {
			g.state = 0
		} else {
			g.state = g.search.next[g.state][code]
		}
		g.index++
		g.pending = g.search.outputs[g.state]
	}
}

// AhoCorasickBuilder performs trie and failure-link construction and
// produces the immutable PatternSearch. Construction-time mutability
// never leaks into the matching API.
type AhoCorasickBuilder struct {
	nodes    []acNode
	patterns []Pattern
}

type acNode struct {
	children [alphabetSize]int32
	fail     int32
	output   []int32
}

func newAhoCorasickBuilder() *AhoCorasickBuilder {
	b := &AhoCorasickBuilder{}
	b.nodes = append(b.nodes, newACNode()) // root
	return b
}

func newACNode() acNode {
	node := acNode{}
	for i := range node.children {
		node.children[i] = -1
	}
	return node
}

// Build derives the concrete patterns from the catalogue, inserts them
// into the trie (wildcards branch into every symbol they stand for), and
// computes failure links breadth-first so a mismatch falls back to the
// longest proper suffix that is itself a valid prefix.
//
// Two catalogue entries deriving the same concrete pattern is a
// configuration error: the duplicate would be reported, and scored, once
// per entry. derive already merges an entry's own symmetric shapes, so
// any collision seen here is between distinct entries.
func (b *AhoCorasickBuilder) Build(protos []Prototype) (*PatternSearch, error) {
	derivedFrom := make(map[string]int)
	for i, proto := range protos {
		if err := proto.validate(); err != nil {
			return nil, errors.Wrapf(err, "prototype %d", i)
		}
		for _, pattern := range proto.derive() {
			key := string(playerSymbol(pattern.Favour)) + pattern.Str
			if from, ok := derivedFrom[key]; ok {
				return nil, errors.Errorf("prototype %d: template %q derives %q, already derived by prototype %d (%q)",
					i, proto.Proto, pattern.Str, from, protos[from].Proto)
			}
			derivedFrom[key] = i
			id := int32(len(b.patterns))
			b.patterns = append(b.patterns, pattern)
			b.insert(0, pattern.Str, id)
		}
	}
	return b.compile(), nil
}

// insert adds str below the root, expanding the wildcard into each of the
// symbols it stands for, so one template can own several trie paths.
func (b *AhoCorasickBuilder) insert(node int32, str string, id int32) {
	b.insertFrom(node, str, 0, id)
}

func (b *AhoCorasickBuilder) insertFrom(node int32, str string, depth int, id int32) {
	if depth == len(str) {
		b.nodes[node].output = append(b.nodes[node].output, id)
		return
	}
	var codes []int
	if str[depth] == protoWildcard {
		codes = []int{symbolCode(symbolEmpty), symbolCode(symbolBorder)}
	} else {
		codes = []int{symbolCode(str[depth])}
	}
	for _, code := range codes {
		child := b.nodes[node].children[code]
		if child < 0 {
			child = int32(len(b.nodes))
			b.nodes = append(b.nodes, newACNode())
			b.nodes[node].children[code] = child
		}
		b.insertFrom(child, str, depth+1, id)
	}
}

// compile runs the breadth-first failure-link pass, merges each node's
// output list with its failure chain (own, deeper matches first), and
// flattens the goto function into a dense transition table.
func (b *AhoCorasickBuilder) compile() *PatternSearch {
	count := len(b.nodes)
	search := &PatternSearch{
		next:     make([][alphabetSize]int32, count),
		outputs:  make([][]int32, count),
		patterns: b.patterns,
	}
	queue := make([]int32, 0, count)
	for c := 0; c < alphabetSize; c++ {
		child := b.nodes[0].children[c]
		if child < 0 {
			search.next[0][c] = 0
			continue
		}
		b.nodes[child].fail = 0
		search.next[0][c] = child
		queue = append(queue, child)
	}
	search.outputs[0] = b.nodes[0].output
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		fail := b.nodes[node].fail
		search.outputs[node] = append(append([]int32(nil), b.nodes[node].output...), search.outputs[fail]...)
		for c := 0; c < alphabetSize; c++ {
			child := b.nodes[node].children[c]
			if child < 0 {
				search.next[node][c] = search.next[fail][c]
				continue
			}
			b.nodes[child].fail = search.next[fail][c]
			search.next[node][c] = child
			queue = append(queue, child)
		}
	}
	return search
}
