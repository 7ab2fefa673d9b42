package symtab

import (
	"testing"

	"snarlc/pkg/types"
)

type fakeDescriptor struct{ t types.Type }

func (f fakeDescriptor) TypeOf() types.Type { return f.t }

func TestDefineAndLookup(t *testing.T) {
	tab := New()
	if !tab.Define("x", fakeDescriptor{types.Int}) {
		t.Fatal("first Define of x should succeed")
	}
	d, ok := tab.Lookup("x")
	if !ok || d.TypeOf() != types.Int {
		t.Fatalf("Lookup(x) = %v, %v; want an Int descriptor", d, ok)
	}
}

func TestDuplicateDefineFails(t *testing.T) {
	tab := New()
	tab.Define("x", fakeDescriptor{types.Int})
	if tab.Define("x", fakeDescriptor{types.Str}) {
		t.Fatal("redefining x in the same scope should fail")
	}
}

func TestShadowing(t *testing.T) {
	tab := New()
	tab.Define("x", fakeDescriptor{types.Int})

	tab.Push()
	if !tab.Define("x", fakeDescriptor{types.Str}) {
		t.Fatal("defining x in an inner scope should succeed even though the outer scope has one")
	}
	d, _ := tab.Lookup("x")
	if d.TypeOf() != types.Str {
		t.Fatal("innermost definition of x should shadow the outer one")
	}

	tab.Pop()
	d, _ = tab.Lookup("x")
	if d.TypeOf() != types.Int {
		t.Fatal("popping the inner scope should reveal the outer definition of x")
	}
}

func TestIsDeclared(t *testing.T) {
	tab := New()
	if tab.IsDeclared("x") {
		t.Fatal("x should not be declared yet")
	}
	tab.Define("x", fakeDescriptor{types.Int})
	if !tab.IsDeclared("x") {
		t.Fatal("x should be declared after Define")
	}
}

func TestPushPopRestoresDepth(t *testing.T) {
	tab := New()
	before := tab.Depth()
	tab.Push()
	tab.Define("local", fakeDescriptor{types.Int})
	tab.Pop()
	if tab.Depth() != before {
		t.Fatalf("Depth() after push+pop = %d, want %d", tab.Depth(), before)
	}
	if tab.IsDeclared("local") {
		t.Fatal("local should not survive Pop")
	}
}

func TestPopOnEmptyPanics(t *testing.T) {
	tab := &Table{}
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on an empty table should panic")
		}
	}()
	tab.Pop()
}
