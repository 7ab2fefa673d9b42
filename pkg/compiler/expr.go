package compiler

import (
	"snarlc/pkg/asm"
	"snarlc/pkg/regpool"
	"snarlc/pkg/token"
	"snarlc/pkg/types"
)

// value pairs an expression's static type with the register holding its
// runtime result, the unit of currency threaded through the whole
// expression grammar (spec §4.9 "Expressions").
type value struct {
	Type types.Type
	Reg  regpool.Register
}

// lookupDescriptor resolves name in the symbol table, failing with "not
// declared" if it is absent anywhere in scope.
func (c *Compiler) lookupDescriptor(name string) Descriptor {
	d, ok := c.syms.Lookup(name)
	if !ok {
		c.fail("%q is not declared", name)
	}
	desc, ok := d.(Descriptor)
	if !ok {
		c.fail("internal error: %q has no code-generation descriptor", name)
	}
	return desc
}

// compileExpression parses the full precedence chain: expression ->
// conjunction ("or" conjunction)* (spec §4.9 "Expressions"). A multi-operand
// "or" chain shares exactly one join label and its result is normalized to
// canonical 0/1 at that label.
func (c *Compiler) compileExpression() value {
	v := c.compileConjunction()
	if c.cur().Kind != token.OR {
		return v
	}
	join := c.sink.Labels.New("Lor")
	for c.cur().Kind == token.OR {
		c.advance()
		c.sink.Emit("bne", asm.Reg(v.Reg), asm.Reg(regpool.Zero), join)
		c.release(v.Reg)
		v = c.compileConjunction()
	}
	c.sink.EmitLabel(join)
	c.sink.Emit("sne", asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(regpool.Zero))
	v.Type = types.Int
	return v
}

// compileConjunction is "comparison ("and" comparison)*", the mirror image
// of compileExpression's short-circuit "or" handling.
func (c *Compiler) compileConjunction() value {
	v := c.compileComparison()
	if c.cur().Kind != token.AND {
		return v
	}
	join := c.sink.Labels.New("Land")
	for c.cur().Kind == token.AND {
		c.advance()
		c.sink.Emit("beq", asm.Reg(v.Reg), asm.Reg(regpool.Zero), join)
		c.release(v.Reg)
		v = c.compileComparison()
	}
	c.sink.EmitLabel(join)
	c.sink.Emit("sne", asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(regpool.Zero))
	v.Type = types.Int
	return v
}

// compareOps maps a relational token to the MIPS/SPIM pseudo-op that
// computes it directly into the left operand register.
var compareOps = map[token.Kind]string{
	token.EQ: "seq",
	token.LT: "slt",
	token.LE: "sle",
	token.NE: "sne",
	token.GT: "sgt",
	token.GE: "sge",
}

// compileComparison is "sum (relop sum)?": relational operators do not
// associate, so at most one is consumed (spec §4.9 "Expressions").
func (c *Compiler) compileComparison() value {
	v := c.compileSum()
	op, ok := compareOps[c.cur().Kind]
	if !ok {
		return v
	}
	c.advance()
	rhs := c.compileSum()
	c.sink.Emit(op, asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(rhs.Reg))
	c.release(rhs.Reg)
	v.Type = types.Int
	return v
}

// compileSum is "product ((+|-) product)*", left-associative.
func (c *Compiler) compileSum() value {
	v := c.compileProduct()
	for c.cur().Kind == token.PLUS || c.cur().Kind == token.MINUS {
		op := "add"
		if c.cur().Kind == token.MINUS {
			op = "sub"
		}
		c.advance()
		rhs := c.compileProduct()
		c.sink.Emit(op, asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(rhs.Reg))
		c.release(rhs.Reg)
	}
	return v
}

// compileProduct is "term ((*|/) term)*", left-associative.
func (c *Compiler) compileProduct() value {
	v := c.compileUnary()
	for c.cur().Kind == token.STAR || c.cur().Kind == token.SLASH {
		op := "mul"
		if c.cur().Kind == token.SLASH {
			op = "div"
		}
		c.advance()
		rhs := c.compileUnary()
		c.sink.Emit(op, asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(rhs.Reg))
		c.release(rhs.Reg)
	}
	return v
}

// compileUnary is "("-"|"not") unary | unit", right-associative by
// recursing into itself.
func (c *Compiler) compileUnary() value {
	switch c.cur().Kind {
	case token.MINUS:
		c.advance()
		v := c.compileUnary()
		c.sink.Emit("sub", asm.Reg(v.Reg), asm.Reg(regpool.Zero), asm.Reg(v.Reg))
		return v
	case token.NOT:
		c.advance()
		v := c.compileUnary()
		c.sink.Emit("seq", asm.Reg(v.Reg), asm.Reg(v.Reg), asm.Reg(regpool.Zero))
		v.Type = types.Int
		return v
	default:
		return c.compileUnit()
	}
}

// compileUnit handles integer and string literals, parenthesized
// expressions, bare names, array subscripts, and calls in expression
// position (spec §4.9 "Expressions").
func (c *Compiler) compileUnit() value {
	switch c.cur().Kind {
	case token.INTEGER:
		t := c.advance()
		reg := c.request()
		c.sink.Emit("li", asm.Reg(reg), asm.Imm(t.Int))
		return value{Type: types.Int, Reg: reg}

	case token.STRING:
		t := c.advance()
		reg := c.request()
		label := c.sink.Globals.EnterString(t.Str)
		c.sink.Emit("la", asm.Reg(reg), label)
		return value{Type: types.Str, Reg: reg}

	case token.LPAREN:
		c.advance()
		v := c.compileExpression()
		c.expect(token.RPAREN)
		return v

	case token.NAME:
		// The name (and, for a subscript, the descriptor behind it) must be
		// captured before consuming '[' or '(', since evaluating an index
		// or argument expression can itself reference the same name.
		name := c.advance().Str
		switch c.cur().Kind {
		case token.LBRACKET:
			return c.compileIndexLoad(name)
		case token.LPAREN:
			return c.compileCall(name)
		default:
			desc := c.lookupDescriptor(name)
			reg, err := desc.Rvalue(c)
			if err != nil {
				c.fail("%s", err.Error())
			}
			return value{Type: desc.TypeOf(), Reg: reg}
		}

	default:
		c.fail("expected an expression, found %s", describe(c.cur()))
		return value{}
	}
}

// compileArrayAddress parses "[ expression ]" following an already-consumed
// array name and leaves the element's address in the returned register,
// without loading through it. Shared by subscript reads and assignments.
func (c *Compiler) compileArrayAddress(name string) (regpool.Register, types.Type) {
	desc := c.lookupDescriptor(name)
	arr, ok := desc.TypeOf().(*types.Array)
	if !ok {
		c.fail("%q is not an array", name)
	}

	base, err := desc.Rvalue(c)
	if err != nil {
		c.fail("%s", err.Error())
	}

	c.expect(token.LBRACKET)
	idx := c.compileExpression()
	c.expect(token.RBRACKET)

	c.sink.Emit("mul", asm.Reg(idx.Reg), asm.Reg(idx.Reg), asm.Imm(arr.Elem.Size()))
	c.sink.Emit("add", asm.Reg(base), asm.Reg(base), asm.Reg(idx.Reg))
	c.release(idx.Reg)
	return base, arr.Elem
}

// compileIndexLoad reads through an array subscript in expression position.
func (c *Compiler) compileIndexLoad(name string) value {
	addr, elem := c.compileArrayAddress(name)
	c.sink.Emit("lw", asm.Reg(addr), asm.Addr(0, addr))
	return value{Type: elem, Reg: addr}
}

// compileCall parses "( args )" following an already-consumed procedure
// name, checks arity and argument subtyping, evaluates and pushes arguments
// left to right, and returns a fresh register holding $v0 — calls are never
// void in SNARL (spec §9: "a call in expression position must yield a
// usable register, not nil").
func (c *Compiler) compileCall(name string) value {
	desc := c.lookupDescriptor(name)
	proc, ok := desc.TypeOf().(*types.Procedure)
	if !ok {
		c.fail("%q is not a procedure", name)
	}
	gp, ok := desc.(*GlobalProc)
	if !ok {
		c.fail("internal error: %q is not callable", name)
	}

	c.expect(token.LPAREN)
	argc := 0
	if c.cur().Kind != token.RPAREN {
		c.pushArg(proc, argc)
		argc++
		for c.cur().Kind == token.COMMA {
			c.advance()
			c.pushArg(proc, argc)
			argc++
		}
	}
	c.expect(token.RPAREN)

	if argc != proc.Arity() {
		c.fail("%q expects %d argument(s), found %d", name, proc.Arity(), argc)
	}

	c.sink.Emit("jal", gp.Label)
	if argc > 0 {
		c.sink.Emit("addi", asm.Reg(regpool.SP), asm.Reg(regpool.SP), asm.Imm(4*argc))
	}

	result := c.request()
	c.sink.Emit("move", asm.Reg(result), asm.Reg(regpool.V0))
	return value{Type: proc.Return, Reg: result}
}

// pushArg compiles argument i, checks it against the procedure's i'th
// parameter type, and pushes it onto the stack for the pending call.
func (c *Compiler) pushArg(proc *types.Procedure, i int) {
	arg := c.compileExpression()
	if i >= proc.Arity() {
		c.fail("too many arguments")
	}
	if !arg.Type.IsSubtype(proc.Parameter(i)) {
		c.fail("argument %d: cannot use %s as %s", i+1, arg.Type, proc.Parameter(i))
	}
	c.sink.Emit("addi", asm.Reg(regpool.SP), asm.Reg(regpool.SP), asm.Imm(-4))
	c.sink.Emit("sw", asm.Reg(arg.Reg), asm.Addr(0, regpool.SP))
	c.release(arg.Reg)
}
