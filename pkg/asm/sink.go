// Package asm implements the assembler sink of spec §4.6: a buffered
// collector of MIPS instruction/text lines plus the ".data" preamble, and
// the label factory and global table that feed it. It is grounded on the
// teacher's pkg/asm two-pass assembler — the pattern of resolving labels
// before emitting final output carries over even though this sink never
// encodes to machine words, only textual MIPS.
package asm

import (
	"fmt"
	"strings"

	"snarlc/pkg/regpool"
)

// Sink collects two ordered streams of lines: text (instructions and
// in-text labels, in emission order) and top (the .data preamble content,
// written by Globals). Close is idempotent; Finalize only renders the
// output and does not mark the sink closed.
type Sink struct {
	text   []string
	closed bool

	Labels  *Labels
	Globals *Globals
}

// NewSink builds an empty Sink with its own label factory and global table.
func NewSink() *Sink {
	labels := NewLabels()
	return &Sink{
		Labels:  labels,
		Globals: NewGlobals(labels),
	}
}

// Close marks the sink closed. It is idempotent and is the method the
// source reader calls on a fatal-error path (reader.Closer) so that no
// partial assembly is left open; it does not discard already-emitted text,
// since a fatal error terminates the process immediately afterward.
func (s *Sink) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Sink) Closed() bool {
	return s.closed
}

func (s *Sink) appendText(line string) {
	s.text = append(s.text, line)
}

// EmitLabel appends a bare "label:" line to the text stream, used for
// global-procedure entry points and intra-procedure control-flow targets.
func (s *Sink) EmitLabel(label string) {
	s.appendText(label + ":")
}

// Emit appends an instruction line with 0-3 operands (registers,
// immediates, labels, or "offset(register)" addresses — all passed as
// pre-formatted strings) to the text stream.
func (s *Sink) Emit(op string, operands ...string) {
	if len(operands) == 0 {
		s.appendText("\t" + op)
		return
	}
	s.appendText(fmt.Sprintf("\t%s %s", op, strings.Join(operands, ", ")))
}

// EmitRaw injects a line verbatim into the text stream, unescaped and
// unvalidated — the mechanism behind the `code "..."` inline-assembly
// escape hatch (spec §4.9, "Statements").
func (s *Sink) EmitRaw(line string) {
	s.appendText(line)
}

// Reg formats a register operand.
func Reg(r regpool.Register) string { return string(r) }

// Imm formats a decimal immediate operand.
func Imm(n int) string { return fmt.Sprintf("%d", n) }

// Addr formats an "offset(register)" address operand, e.g. "-4($fp)".
func Addr(offset int, base regpool.Register) string {
	return fmt.Sprintf("%d(%s)", offset, base)
}

// Finalize renders the complete assembly text: ".data", the top stream
// (interned strings then global variables), ".text", then every emitted
// text-stream line, in insertion order.
func (s *Sink) Finalize() string {
	var sb strings.Builder
	sb.WriteString(".data\n")
	s.Globals.WriteTo(func(line string) {
		sb.WriteString(line)
		sb.WriteString("\n")
	})
	sb.WriteString(".text\n")
	for _, line := range s.text {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
