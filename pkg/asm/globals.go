package asm

import "fmt"

// Globals is the interned-string and global-variable-layout table of
// spec §4.7: a map from string-literal text to its label (so identical
// literals share one label), and an ordered sequence of (label, size)
// pairs for global variables, including arrays.
type Globals struct {
	labels *Labels

	stringOrder []string          // interning order, for deterministic emission
	strings     map[string]string // literal text -> label

	vars []globalVar
}

type globalVar struct {
	label string
	size  int
}

// NewGlobals builds an empty Globals table backed by labels for minting
// fresh string/variable labels.
func NewGlobals(labels *Labels) *Globals {
	return &Globals{
		labels:  labels,
		strings: make(map[string]string),
	}
}

// EnterString interns text, returning its existing label if this literal
// has already been seen, or allocating and recording a fresh one.
func (g *Globals) EnterString(text string) string {
	if lbl, ok := g.strings[text]; ok {
		return lbl
	}
	lbl := g.labels.New("str")
	g.strings[text] = lbl
	g.stringOrder = append(g.stringOrder, text)
	return lbl
}

// EnterVariable allocates a fresh label for a global variable (or array) of
// the given byte size and records it for later emission.
func (g *Globals) EnterVariable(size int) string {
	lbl := g.labels.New("var")
	g.vars = append(g.vars, globalVar{label: lbl, size: size})
	return lbl
}

// WriteTo appends ".data" declarations to the top stream: interned strings
// in their interning order, then global variables in declaration order
// (spec §5: "Ordering guarantees").
func (g *Globals) WriteTo(emit func(line string)) {
	for _, text := range g.stringOrder {
		lbl := g.strings[text]
		emit(fmt.Sprintf("%s: .asciiz %q", lbl, text))
	}
	for _, v := range g.vars {
		emit(fmt.Sprintf("%s: .space %d", v.label, v.size))
	}
}
