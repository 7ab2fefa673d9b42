package token

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		name     string
		wantKind Kind
		wantOK   bool
	}{
		{"proc", PROC, true},
		{"begin", BEGIN, true},
		{"end", END, true},
		{"while", WHILE, true},
		{"value", VALUE, true},
		{"code", CODE, true},
		{"string", STRING_KW, true},
		{"int", INT, true},
		{"x", NAME, false},
		{"Proc", NAME, false}, // keywords are case-sensitive
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			kind, ok := Lookup(c.name)
			if ok != c.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", c.name, ok, c.wantOK)
			}
			if ok && kind != c.wantKind {
				t.Fatalf("Lookup(%q) = %v, want %v", c.name, kind, c.wantKind)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		EOF:    "EOF",
		PROC:   "proc",
		ASSIGN: ":=",
		LE:     "<=",
		NE:     "<>",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}

	if got := Kind(9999).String(); got != "Kind(9999)" {
		t.Errorf("out-of-range Kind.String() = %q, want %q", got, "Kind(9999)")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: NAME, Str: "counter", Line: 3, Column: 5}
	want := `name "counter" (line 3, col 5)`
	if got := tok.String(); got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
