package compiler

import (
	"snarlc/pkg/token"
	"snarlc/pkg/types"
)

// parseType parses one of the three type forms the grammar allows:
// "int", "string", or "[" INTEGER "]" "int" (spec §4.3, §4.9 "Declarations").
// A non-positive array length is accepted unchanged (spec §4.3: "the
// scanner ensures only natural-number literals reach it").
func (c *Compiler) parseType() types.Type {
	switch c.cur().Kind {
	case token.INT:
		c.advance()
		return types.Int
	case token.STRING_KW:
		c.advance()
		return types.Str
	case token.LBRACKET:
		c.advance()
		n := c.expect(token.INTEGER).Int
		c.expect(token.RBRACKET)
		c.expect(token.INT)
		return &types.Array{Length: n, Elem: types.Int}
	default:
		c.fail("expected a type, found %s", describe(c.cur()))
		return nil
	}
}

// checkBasicReturn fails unless t is a basic type: spec §3 defines a
// procedure's return type as "a single return type (basic only)", so an
// array return (or any other non-basic type) is a type error, not a silent
// acceptance.
func (c *Compiler) checkBasicReturn(t types.Type) {
	if _, ok := t.(*types.Basic); !ok {
		c.fail("procedure return type must be basic, found %s", t)
	}
}

// compileGlobalDecl parses "type name" and installs a global descriptor,
// allocating storage via the assembler sink's global table (spec §4.9
// "Declarations", "At program scope...").
func (c *Compiler) compileGlobalDecl() {
	t := c.parseType()
	name := c.expect(token.NAME).Str

	var desc Descriptor
	if arr, ok := t.(*types.Array); ok {
		label := c.sink.Globals.EnterVariable(arr.Size())
		desc = &GlobalArray{Type: arr, Label: label}
	} else {
		label := c.sink.Globals.EnterVariable(t.Size())
		desc = &GlobalVar{Type: t, Label: label}
	}

	if !c.syms.Define(name, desc) {
		c.fail("%q already declared", name)
	}
}

// compileLocalDecl parses "type name" inside a procedure body and installs
// a local descriptor at a negative frame offset, growing curLocal downward
// (spec §4.9 "Declarations", "At procedure scope...").
func (c *Compiler) compileLocalDecl() {
	t := c.parseType()
	name := c.expect(token.NAME).Str

	c.curLocal -= t.Size()
	offset := c.curLocal

	var desc Descriptor
	if arr, ok := t.(*types.Array); ok {
		desc = &LocalArray{Type: arr, Offset: offset}
	} else {
		desc = &LocalVar{Type: t, Offset: offset}
	}

	if !c.syms.Define(name, desc) {
		c.fail("%q already declared", name)
	}
}

// atTypeStart reports whether the current token can begin a type, used to
// recognize the leading run of local declarations in a procedure body.
func (c *Compiler) atTypeStart() bool {
	switch c.cur().Kind {
	case token.INT, token.STRING_KW, token.LBRACKET:
		return true
	default:
		return false
	}
}
