// Package types implements SNARL's nominal type model: basic types with a
// single-inheritance parent chain, fixed-length int arrays, and procedure
// types with covariant returns / contravariant parameters, per spec §3.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every type-model variant.
type Type interface {
	// Size returns the type's size in bytes.
	Size() int
	// IsSubtype reports whether a value of this type is acceptable
	// wherever other is expected.
	IsSubtype(other Type) bool
	// String returns a printable form.
	String() string
}

// Basic is a scalar type with an optional parent forming a single-inheritance
// chain rooted at one of the two primordials, Int and String.
type Basic struct {
	Name   string
	Bytes  int
	Parent *Basic // nil at the root of a chain
}

// Int and Str are the two primordial basic types SNARL's grammar can
// reference directly ("int name" / "string name").
var (
	Int = &Basic{Name: "int", Bytes: 4}
	Str = &Basic{Name: "string", Bytes: 4} // address-sized
)

func (b *Basic) Size() int { return b.Bytes }

func (b *Basic) IsSubtype(other Type) bool {
	ob, ok := other.(*Basic)
	if !ok {
		return false
	}
	for t := b; t != nil; t = t.Parent {
		if t == ob {
			return true
		}
	}
	return false
}

func (b *Basic) String() string { return b.Name }

// Array is a fixed-length array of Elem (always *Basic Int in SNARL).
type Array struct {
	Length int
	Elem   Type
}

func (a *Array) Size() int { return a.Length * a.Elem.Size() }

// IsSubtype is invariant in both length and element type.
func (a *Array) IsSubtype(other Type) bool {
	oa, ok := other.(*Array)
	if !ok {
		return false
	}
	return a.Length == oa.Length && a.Elem == oa.Elem
}

func (a *Array) String() string { return fmt.Sprintf("[%d] %s", a.Length, a.Elem) }

// Procedure is an ordered parameter-type list and a single return type.
type Procedure struct {
	Params []Type
	Return Type
}

// NewProcedure builds an empty procedure type; parameters are appended with
// AddParameter and the return type is fixed once with SetReturn.
func NewProcedure() *Procedure {
	return &Procedure{}
}

// AddParameter appends a parameter type.
func (p *Procedure) AddParameter(t Type) { p.Params = append(p.Params, t) }

// SetReturn fixes the return type. Callers are expected to call this
// exactly once, after all parameters have been added.
func (p *Procedure) SetReturn(t Type) { p.Return = t }

// Arity returns the parameter count.
func (p *Procedure) Arity() int { return len(p.Params) }

// Parameter returns the i'th parameter type.
func (p *Procedure) Parameter(i int) Type { return p.Params[i] }

func (p *Procedure) Size() int { return 4 } // a procedure value is its entry address

// IsSubtype: arities match, returns are covariant, parameters are
// contravariant.
func (p *Procedure) IsSubtype(other Type) bool {
	op, ok := other.(*Procedure)
	if !ok {
		return false
	}
	if len(p.Params) != len(op.Params) {
		return false
	}
	if p.Return == nil || op.Return == nil || !p.Return.IsSubtype(op.Return) {
		return false
	}
	for i := range p.Params {
		if !op.Params[i].IsSubtype(p.Params[i]) {
			return false
		}
	}
	return true
}

func (p *Procedure) String() string {
	parts := make([]string, len(p.Params))
	for i, t := range p.Params {
		parts[i] = t.String()
	}
	ret := "?"
	if p.Return != nil {
		ret = p.Return.String()
	}
	return fmt.Sprintf("proc(%s) %s", strings.Join(parts, ", "), ret)
}
