// Package compiler implements the two-pass recursive-descent parser and
// MIPS code generator that is the heart of the SNARL compiler (spec §4.9).
// It is grounded on the teacher's pkg/compiler (lexer/parser/codegen split,
// symbol table, table-driven tests) generalized from a C-like language
// targeting a custom byte-code assembler to SNARL targeting textual MIPS.
package compiler

import (
	"errors"
	"strings"

	"snarlc/pkg/asm"
	"snarlc/pkg/reader"
	"snarlc/pkg/regpool"
	"snarlc/pkg/scanner"
	"snarlc/pkg/symtab"
	"snarlc/pkg/token"
	"snarlc/pkg/types"
)

// Compiler bundles every collaborator the parser and code generator share:
// the token stream, the symbol table, the register pool, and the assembler
// sink (spec §2: "Parser + codegen... drives all of the above").
type Compiler struct {
	rdr  *reader.Reader
	scan *scanner.Scanner
	syms *symtab.Table
	sink *asm.Sink
	pool *regpool.Pool

	// per-procedure state, valid only while compiling a procedure body.
	curReturn types.Type
	curArity  int
	curLocal  int // lowest frame offset handed out so far; starts at -frameOverhead, decreases

	readerOpts []reader.Option // preserved across the pass-1 -> pass-2 re-scan
}

// fatalSignal is the sentinel panicked by the reader's injected exit
// function; Compile recovers it and turns it into a returned error so that
// "fatal-on-first" (spec §7) never actually kills the calling process —
// only snarlc's main() does that, after Compile returns.
type fatalSignal struct{}

// Compile translates src into MIPS assembly text. On any fatal error (spec
// §7: lex/syntax/name/type/capacity/internal) it returns a non-nil error
// whose message is exactly the diagnostic spec §4.1/§6 describes: a
// five-digit line number, the source line, a caret, and the message.
func Compile(src string) (string, error) {
	sink := asm.NewSink()
	var diag strings.Builder

	opts := []reader.Option{
		reader.WithOutput(&diag),
		reader.WithExit(func(int) { panic(fatalSignal{}) }),
	}

	c := &Compiler{
		rdr:        reader.New(src, sink, opts...),
		syms:       symtab.New(),
		sink:       sink,
		pool:       regpool.New(),
		readerOpts: opts,
	}

	var outerErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(fatalSignal); ok {
					outerErr = errors.New(strings.TrimRight(diag.String(), "\n"))
					return
				}
				panic(r) // a genuine programmer bug: do not swallow it
			}
		}()
		c.compileProgram(src)
	}()

	if outerErr != nil {
		return "", outerErr
	}
	return sink.Finalize(), nil
}

// fail routes a fatal error through the source reader. It never returns in
// normal operation (Compile's recover converts the resulting panic into an
// error); callers write code as if fail does not return.
func (c *Compiler) fail(format string, args ...any) {
	c.rdr.Errorf(format, args...)
}

// request obtains a scratch register, failing (fatal, "expression too
// complex") if the pool is exhausted.
func (c *Compiler) request() regpool.Register {
	r, err := c.pool.Request()
	if err != nil {
		c.fail("%s", err.Error())
	}
	return r
}

// release returns a scratch register to the pool.
func (c *Compiler) release(r regpool.Register) {
	c.pool.Release(r)
}

// cur returns the parser's current lookahead token.
func (c *Compiler) cur() token.Token {
	return c.scan.Current()
}

// advance consumes and returns the current token.
func (c *Compiler) advance() token.Token {
	return c.scan.Next()
}

// expect consumes the current token if it has kind k, else fails with a
// message naming the expected token.
func (c *Compiler) expect(k token.Kind) token.Token {
	t := c.cur()
	if t.Kind != k {
		c.fail("expected %s, found %s", k, describe(t))
	}
	return c.advance()
}

// expectMsg is expect with a caller-supplied message (spec §4.9: "callers
// may provide a custom message").
func (c *Compiler) expectMsg(k token.Kind, msg string) token.Token {
	t := c.cur()
	if t.Kind != k {
		c.fail("%s", msg)
	}
	return c.advance()
}

func describe(t token.Token) string {
	if t.Str != "" {
		return t.Str
	}
	return t.Kind.String()
}

// rescan rebuilds the reader and scanner from scratch over src, for pass
// 2's "re-opens the source from scratch" requirement (spec §4.9, §9
// "Two-pass source re-read").
func (c *Compiler) rescan(src string) {
	c.rdr = reader.New(src, c.sink, c.readerOpts...)
	c.scan = scanner.New(c.rdr)
}
