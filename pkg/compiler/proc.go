package compiler

import (
	"snarlc/pkg/asm"
	"snarlc/pkg/regpool"
	"snarlc/pkg/token"
	"snarlc/pkg/types"
)

// savedRegs lists every register the prologue preserves and the epilogue
// restores, in the order they are stored: $ra, the caller's $fp, then the
// eight scratch registers (spec §4.9 step 4).
var savedRegs = []regpool.Register{
	regpool.RA, regpool.FP,
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
}

// frameOverhead is the byte size of the saved-register block: $ra, $fp, and
// eight scratch registers, ten words (spec §4.9: "decrement $sp by 40 +
// localBytes").
const frameOverhead = 40

// savedOffset returns the $fp-relative offset at which savedRegs[i] is
// stored, counting down from -4.
func savedOffset(i int) int {
	return -4 * (i + 1)
}

// paramOffset returns the $fp-relative offset of parameter i (0-indexed) of
// a procedure with the given arity. Arguments are pushed left to right at
// the call site (each push: decrement $sp by 4, store at 0($sp)), so the
// last-pushed (rightmost) parameter ends up closest to $fp and the first
// parameter sits at the largest offset.
func paramOffset(i, arity int) int {
	return 4 * (arity - 1 - i)
}

// compileProcedure compiles one "proc NAME ( params ) returnType : locals
// begin...end" part. Pass 1 already installed NAME's GlobalProc descriptor
// in the outer scope; this re-parses the signature to open a fresh
// parameter scope (spec §4.9 "Program compilation").
func (c *Compiler) compileProcedure() {
	c.expect(token.PROC)
	name := c.expect(token.NAME).Str

	desc, ok := c.syms.Lookup(name)
	if !ok {
		c.fail("internal error: procedure %q missing its pass-1 descriptor", name)
	}
	proc, ok := desc.(*GlobalProc)
	if !ok {
		c.fail("internal error: %q is not a procedure descriptor", name)
	}

	c.expect(token.LPAREN)
	var paramNames []string
	if c.cur().Kind != token.RPAREN {
		c.parseType()
		paramNames = append(paramNames, c.expect(token.NAME).Str)
		for c.cur().Kind == token.COMMA {
			c.advance()
			c.parseType()
			paramNames = append(paramNames, c.expect(token.NAME).Str)
		}
	}
	c.expect(token.RPAREN)
	retType := c.parseType() // already recorded on proc.Type by pass 1; re-checked here
	c.checkBasicReturn(retType)
	c.expect(token.COLON)

	arity := proc.Type.Arity()

	c.sink.EmitLabel(proc.Label)

	c.syms.Push()
	c.curReturn = proc.Type.Return
	c.curArity = arity
	c.curLocal = -frameOverhead

	for i, pname := range paramNames {
		offset := paramOffset(i, arity)
		pt := proc.Type.Parameter(i)
		var pdesc Descriptor
		if arr, ok := pt.(*types.Array); ok {
			pdesc = &ParamArray{Type: arr, Offset: offset}
		} else {
			pdesc = &LocalVar{Type: pt, Offset: offset}
		}
		if !c.syms.Define(pname, pdesc) {
			c.fail("%q already declared", pname)
		}
	}

	for c.atTypeStart() {
		c.compileLocalDecl()
		c.expect(token.SEMI)
	}

	localBytes := -c.curLocal - frameOverhead
	total := frameOverhead + localBytes

	c.emitPrologue(total)
	c.compileBlock()
	c.emitEpilogue(total)

	c.syms.Pop()
}

// emitPrologue reserves the frame, stores every saved register at its fixed
// $fp-relative offset, and points $fp at the procedure's entry-time $sp
// (spec §4.9 step 4; see DESIGN.md for the frame-layout resolution).
func (c *Compiler) emitPrologue(total int) {
	c.sink.Emit("addi", asm.Reg(regpool.SP), asm.Reg(regpool.SP), asm.Imm(-total))
	for i, r := range savedRegs {
		c.sink.Emit("sw", asm.Reg(r), asm.Addr(total+savedOffset(i), regpool.SP))
	}
	c.sink.Emit("addi", asm.Reg(regpool.FP), asm.Reg(regpool.SP), asm.Imm(total))
}

// emitEpilogue restores every saved register, resets $sp to the caller's
// view of the stack, and returns. It is also used inline by `value`
// statements (spec §4.9 "Statements"), which is why it does not itself pop
// the symbol-table scope.
//
// $fp is restored last: $fp equals the caller's $sp at this procedure's
// entry, so $sp is recovered from $fp before $fp's own saved value
// overwrites it.
func (c *Compiler) emitEpilogue(total int) {
	for i, r := range savedRegs {
		if r == regpool.FP {
			continue
		}
		c.sink.Emit("lw", asm.Reg(r), asm.Addr(savedOffset(i), regpool.FP))
	}
	c.sink.Emit("addi", asm.Reg(regpool.SP), asm.Reg(regpool.FP), asm.Imm(0))
	c.sink.Emit("lw", asm.Reg(regpool.FP), asm.Addr(savedOffset(1), regpool.FP))
	c.sink.Emit("jr", asm.Reg(regpool.RA))
}
