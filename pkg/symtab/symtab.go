// Package symtab implements SNARL's lexically-scoped symbol table: a
// non-empty stack of name->descriptor scopes, per spec §3 "Symbol table"
// and §4.4.
package symtab

import "snarlc/pkg/types"

// Descriptor is the minimal contract every symbol-table value must satisfy.
// Concrete descriptor variants (global/local x variable/array/procedure)
// live in pkg/compiler, which also knows how to turn one into an lvalue or
// rvalue register; symtab only needs to know a descriptor's type.
type Descriptor interface {
	TypeOf() types.Type
}

// scope is a single level of the table: identifier -> descriptor, unique
// within the scope.
type scope map[string]Descriptor

// Table is a non-empty stack of scopes. Lookup walks innermost to
// outermost; Define inserts into the innermost scope only.
type Table struct {
	scopes []scope
}

// New returns a Table with one scope already pushed, for the program's
// globals (spec §3: "one scope is pushed for the program's globals").
func New() *Table {
	return &Table{scopes: []scope{make(scope)}}
}

// Push opens a new, innermost scope (spec: "one scope is pushed per
// procedure body").
func (t *Table) Push() {
	t.scopes = append(t.scopes, make(scope))
}

// Pop closes the innermost scope. Popping a table with no scopes left is a
// programmer error and panics (spec §4.4: "fatal if empty").
func (t *Table) Pop() {
	if len(t.scopes) == 0 {
		panic("symtab: pop on empty table")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports the number of currently open scopes, for invariant checks
// (spec §8, property 3: scope count balances across a procedure boundary).
func (t *Table) Depth() int {
	return len(t.scopes)
}

// IsDeclared reports whether name is visible in any open scope.
func (t *Table) IsDeclared(name string) bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

// Lookup searches innermost-first and returns the descriptor and whether it
// was found. Callers that need a fatal "not declared" error do so
// themselves (symtab has no access to the source reader).
func (t *Table) Lookup(name string) (Descriptor, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if d, ok := t.scopes[i][name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Define inserts name into the innermost scope. It returns false without
// mutating the table if name already exists in that scope (spec: "fails if
// the name already exists there" — the caller turns this into a fatal
// "already declared" diagnostic).
func (t *Table) Define(name string, d Descriptor) bool {
	inner := t.scopes[len(t.scopes)-1]
	if _, exists := inner[name]; exists {
		return false
	}
	inner[name] = d
	return true
}
