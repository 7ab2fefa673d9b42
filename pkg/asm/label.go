package asm

import "fmt"

// Labels is a monotonically increasing counter used to mint unique,
// printable assembly labels. It is never reset and never reuses a serial
// number; each factory (one per Sink) counts independently.
type Labels struct {
	next int
}

// NewLabels returns a fresh label factory.
func NewLabels() *Labels {
	return &Labels{}
}

// New mints a label composed of tag and the next serial number, e.g.
// New("L") -> "L0", New("L") -> "L1".
func (l *Labels) New(tag string) string {
	lbl := fmt.Sprintf("%s%d", tag, l.next)
	l.next++
	return lbl
}
