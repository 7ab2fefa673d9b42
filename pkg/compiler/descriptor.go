package compiler

import (
	"fmt"

	"snarlc/pkg/asm"
	"snarlc/pkg/regpool"
	"snarlc/pkg/types"
)

// Descriptor is the lvalue/rvalue protocol of spec §4.8: every named
// descriptor can produce an rvalue register; only addressable ones
// (scalars) can produce an lvalue (address) register. Arrays and
// procedures fail Lvalue with a descriptive error that the caller routes
// through the fatal-error path.
type Descriptor interface {
	TypeOf() types.Type
	// Rvalue emits code that leaves this descriptor's value in a freshly
	// requested register, which it returns.
	Rvalue(c *Compiler) (regpool.Register, error)
	// Lvalue emits code that leaves this descriptor's storage address in a
	// freshly requested register, which it returns. Non-addressable
	// descriptors (arrays, procedures) return an error.
	Lvalue(c *Compiler) (regpool.Register, error)
}

// notAnLvalue is shared by descriptor variants that can never be assignment
// targets.
func notAnLvalue(kind string) (regpool.Register, error) {
	return "", fmt.Errorf("cannot assign to %s", kind)
}

// GlobalVar is a scalar global variable living at a fixed .data label.
type GlobalVar struct {
	Type  types.Type
	Label string
}

func (d *GlobalVar) TypeOf() types.Type { return d.Type }

func (d *GlobalVar) Rvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("la", asm.Reg(reg), d.Label)
	c.sink.Emit("lw", asm.Reg(reg), asm.Addr(0, reg))
	return reg, nil
}

func (d *GlobalVar) Lvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("la", asm.Reg(reg), d.Label)
	return reg, nil
}

// GlobalArray is the array-only specialization of a global: never an
// lvalue, Rvalue yields the base address itself (spec §4.8).
type GlobalArray struct {
	Type  types.Type
	Label string
}

func (d *GlobalArray) TypeOf() types.Type { return d.Type }

func (d *GlobalArray) Rvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("la", asm.Reg(reg), d.Label)
	return reg, nil
}

func (d *GlobalArray) Lvalue(c *Compiler) (regpool.Register, error) {
	return notAnLvalue("array")
}

// GlobalProc names a procedure's entry point; never an lvalue or rvalue in
// the register sense (calls are driven directly by the parser, see
// unit-call compilation), but it must still satisfy Descriptor to live in
// the symbol table.
type GlobalProc struct {
	Type  *types.Procedure
	Label string
}

func (d *GlobalProc) TypeOf() types.Type { return d.Type }

func (d *GlobalProc) Rvalue(c *Compiler) (regpool.Register, error) {
	return "", fmt.Errorf("%q is a procedure, not a value", d.Label)
}

func (d *GlobalProc) Lvalue(c *Compiler) (regpool.Register, error) {
	return notAnLvalue("procedure")
}

// LocalVar is a scalar on the current frame at a fixed offset from $fp.
type LocalVar struct {
	Type   types.Type
	Offset int
}

func (d *LocalVar) TypeOf() types.Type { return d.Type }

func (d *LocalVar) Rvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("lw", asm.Reg(reg), asm.Addr(d.Offset, regpool.FP))
	return reg, nil
}

func (d *LocalVar) Lvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("addi", asm.Reg(reg), asm.Reg(regpool.FP), asm.Imm(d.Offset))
	return reg, nil
}

// LocalArray is an array on the current frame; never an lvalue, Rvalue
// yields the base address (frame-relative, computed from $fp).
type LocalArray struct {
	Type   types.Type
	Offset int
}

func (d *LocalArray) TypeOf() types.Type { return d.Type }

func (d *LocalArray) Rvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("addi", asm.Reg(reg), asm.Reg(regpool.FP), asm.Imm(d.Offset))
	return reg, nil
}

func (d *LocalArray) Lvalue(c *Compiler) (regpool.Register, error) {
	return notAnLvalue("array")
}

// ParamArray is an array parameter. Arrays are passed by address (spec §3,
// §4.9 "Frame layout": "array arguments are passed by address"), so the
// frame slot at Offset holds a pointer to the caller's array, not the array
// data itself; Rvalue must load through that pointer before the result can
// be indexed, unlike LocalArray's direct addi.
type ParamArray struct {
	Type   types.Type
	Offset int
}

func (d *ParamArray) TypeOf() types.Type { return d.Type }

func (d *ParamArray) Rvalue(c *Compiler) (regpool.Register, error) {
	reg, err := c.pool.Request()
	if err != nil {
		return "", err
	}
	c.sink.Emit("lw", asm.Reg(reg), asm.Addr(d.Offset, regpool.FP))
	return reg, nil
}

func (d *ParamArray) Lvalue(c *Compiler) (regpool.Register, error) {
	return notAnLvalue("array")
}

// RegisterDesc wraps the transient result of an expression during code
// generation. It is never stored in the symbol table (spec §3 invariant)
// and is never asked for Lvalue.
type RegisterDesc struct {
	Type types.Type
	Reg  regpool.Register
}

func (d *RegisterDesc) TypeOf() types.Type { return d.Type }

func (d *RegisterDesc) Rvalue(c *Compiler) (regpool.Register, error) {
	return d.Reg, nil
}

func (d *RegisterDesc) Lvalue(c *Compiler) (regpool.Register, error) {
	panic("compiler: Lvalue requested on a transient RegisterDesc")
}
