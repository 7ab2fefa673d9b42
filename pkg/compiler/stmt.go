package compiler

import (
	"snarlc/pkg/asm"
	"snarlc/pkg/regpool"
	"snarlc/pkg/token"
)

// compileBlock parses "begin" (statement (";" statement)*)? "end", the
// compound-statement form used for procedure bodies and for any statement
// position that needs more than one statement (spec §4.9 "Statements").
func (c *Compiler) compileBlock() {
	c.expect(token.BEGIN)
	if c.cur().Kind != token.END {
		c.compileStatement()
		for c.cur().Kind == token.SEMI {
			c.advance()
			c.compileStatement()
		}
	}
	c.expect(token.END)
}

// compileStatement dispatches on the lookahead token to one of the
// statement forms of spec §4.9 "Statements".
func (c *Compiler) compileStatement() {
	switch c.cur().Kind {
	case token.BEGIN:
		c.compileBlock()
	case token.IF:
		c.compileIf()
	case token.WHILE:
		c.compileWhile()
	case token.VALUE:
		c.compileValueStmt()
	case token.CODE:
		c.compileCodeStmt()
	case token.NAME:
		c.compileNameStatement()
	default:
		c.fail("expected a statement, found %s", describe(c.cur()))
	}
}

// compileNameStatement disambiguates the three statement forms that begin
// with a name: scalar assignment, array-element assignment, and a
// statement-position call (spec §9: the name must be resolved before any
// following '[' or '(' is consumed).
func (c *Compiler) compileNameStatement() {
	name := c.advance().Str

	switch c.cur().Kind {
	case token.ASSIGN:
		c.advance()
		desc := c.lookupDescriptor(name)
		addr, err := desc.Lvalue(c)
		if err != nil {
			c.fail("%s", err.Error())
		}
		v := c.compileExpression()
		if !v.Type.IsSubtype(desc.TypeOf()) {
			c.fail("cannot assign %s to %q of type %s", v.Type, name, desc.TypeOf())
		}
		c.sink.Emit("sw", asm.Reg(v.Reg), asm.Addr(0, addr))
		c.release(v.Reg)
		c.release(addr)

	case token.LBRACKET:
		addr, elem := c.compileArrayAddress(name)
		c.expect(token.ASSIGN)
		v := c.compileExpression()
		if !v.Type.IsSubtype(elem) {
			c.fail("cannot assign %s to element of type %s", v.Type, elem)
		}
		c.sink.Emit("sw", asm.Reg(v.Reg), asm.Addr(0, addr))
		c.release(v.Reg)
		c.release(addr)

	case token.LPAREN:
		v := c.compileCall(name)
		c.release(v.Reg)

	default:
		c.fail("expected ':=', '[', or '(' after %q, found %s", name, describe(c.cur()))
	}
}

// compileIf parses "if" expression "then" statement ("else" statement)?.
// An else-branch that is itself another if chains naturally through
// recursion, so there is no separate "else if" production.
func (c *Compiler) compileIf() {
	c.expect(token.IF)
	cond := c.compileExpression()
	c.expect(token.THEN)

	lelse := c.sink.Labels.New("Lelse")
	c.sink.Emit("beq", asm.Reg(cond.Reg), asm.Reg(regpool.Zero), lelse)
	c.release(cond.Reg)

	c.compileStatement()

	if c.cur().Kind == token.ELSE {
		lend := c.sink.Labels.New("Lend")
		c.sink.Emit("j", lend)
		c.sink.EmitLabel(lelse)
		c.advance()
		c.compileStatement()
		c.sink.EmitLabel(lend)
		return
	}
	c.sink.EmitLabel(lelse)
}

// compileWhile parses "while" expression "do" statement, re-testing the
// condition before every iteration.
func (c *Compiler) compileWhile() {
	c.expect(token.WHILE)
	lstart := c.sink.Labels.New("Lwhile")
	c.sink.EmitLabel(lstart)

	cond := c.compileExpression()
	c.expect(token.DO)

	lend := c.sink.Labels.New("Lend")
	c.sink.Emit("beq", asm.Reg(cond.Reg), asm.Reg(regpool.Zero), lend)
	c.release(cond.Reg)

	c.compileStatement()
	c.sink.Emit("j", lstart)
	c.sink.EmitLabel(lend)
}

// compileValueStmt parses "value" expression: the expression's value is
// moved into $v0 and the enclosing procedure's epilogue is emitted inline,
// so a procedure body may contain more than one `value` statement, each
// returning directly from where it appears (spec §4.9 "Statements").
func (c *Compiler) compileValueStmt() {
	c.expect(token.VALUE)
	v := c.compileExpression()
	if !v.Type.IsSubtype(c.curReturn) {
		c.fail("cannot return %s, procedure declares %s", v.Type, c.curReturn)
	}
	c.sink.Emit("move", asm.Reg(regpool.V0), asm.Reg(v.Reg))
	c.release(v.Reg)
	c.emitEpilogue(-c.curLocal)
}

// compileCodeStmt parses `code "..."`, injecting the string's contents
// verbatim into the instruction stream (spec §4.9, the inline-assembly
// escape hatch).
func (c *Compiler) compileCodeStmt() {
	c.expect(token.CODE)
	t := c.expect(token.STRING)
	c.sink.EmitRaw(t.Str)
}
