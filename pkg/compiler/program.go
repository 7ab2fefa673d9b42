package compiler

import (
	"snarlc/pkg/token"
	"snarlc/pkg/types"
)

// compileProgram runs the full two-pass pipeline of spec §4.9 "Program
// compilation": pass 1 installs every procedure signature in the global
// scope; pass 2 re-opens the source and compiles every program part.
func (c *Compiler) compileProgram(src string) {
	c.rescan(src)
	c.pass1()

	c.rescan(src)
	c.pass2(src)
}

// pass1 scans top-level tokens once, recording a global procedure
// descriptor for every `proc` declaration it finds and lexically skipping
// bodies, so that pass 2 can compile mutually-recursive and forward
// references without a separate prototype system (spec §4.9).
func (c *Compiler) pass1() {
	for c.cur().Kind != token.EOF {
		if c.cur().Kind == token.PROC {
			name, procType := c.parseProcSignature()
			label := c.sink.Labels.New("proc_" + name + "_")
			if !c.syms.Define(name, &GlobalProc{Type: procType, Label: label}) {
				c.fail("%q already declared", name)
			}
			c.skipProcBody()
			continue
		}
		c.advance()
	}
}

// skipProcBody advances tokens until the next top-level `proc` or
// end-of-file, per spec §4.9: pass 1 does not parse procedure bodies.
func (c *Compiler) skipProcBody() {
	for c.cur().Kind != token.PROC && c.cur().Kind != token.EOF {
		c.advance()
	}
}

// parseProcSignature parses "proc NAME ( paramTypes ) returnType :" far
// enough to build the procedure's type, without installing parameter
// descriptors (pass 1 has no body scope to install them into). It leaves
// the scanner positioned just after the ':'.
func (c *Compiler) parseProcSignature() (string, *types.Procedure) {
	c.expect(token.PROC)
	name := c.expect(token.NAME).Str

	c.expect(token.LPAREN)
	pt := types.NewProcedure()
	if c.cur().Kind != token.RPAREN {
		pt.AddParameter(c.parseType())
		c.expect(token.NAME)
		for c.cur().Kind == token.COMMA {
			c.advance()
			pt.AddParameter(c.parseType())
			c.expect(token.NAME)
		}
	}
	c.expect(token.RPAREN)
	retType := c.parseType()
	c.checkBasicReturn(retType)
	pt.SetReturn(retType)
	c.expect(token.COLON)
	return name, pt
}

// pass2 re-walks the grammar, consulting the symbol table, allocating
// registers, and emitting instructions. Program parts are separated by
// ';'; each is a global declaration or a procedure; a final EOF is
// asserted (spec §4.9 "Program compilation").
func (c *Compiler) pass2(src string) {
	for {
		switch c.cur().Kind {
		case token.PROC:
			c.compileProcedure()
		case token.INT, token.STRING_KW, token.LBRACKET:
			c.compileGlobalDecl()
		default:
			c.fail("expected a declaration or procedure, found %s", describe(c.cur()))
		}

		if c.cur().Kind == token.SEMI {
			c.advance()
			continue
		}
		break
	}
	c.expect(token.EOF)
}
