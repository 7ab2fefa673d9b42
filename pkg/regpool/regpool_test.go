package regpool

import "testing"

func TestRequestReleaseLIFO(t *testing.T) {
	p := New()
	r1, err := p.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	r2, err := p.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if r1 == r2 {
		t.Fatalf("two requests returned the same register %s", r1)
	}

	p.Release(r2)
	r3, err := p.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if r3 != r2 {
		t.Fatalf("LIFO reuse: expected %s back, got %s", r2, r3)
	}
	p.Release(r3)
	p.Release(r1)
}

func TestExhaustion(t *testing.T) {
	p := New()
	for i := 0; i < 8; i++ {
		if _, err := p.Request(); err != nil {
			t.Fatalf("Request() %d: unexpected error %v", i, err)
		}
	}
	if _, err := p.Request(); err == nil {
		t.Fatal("9th Request() should fail: pool only has 8 scratch registers")
	}
}

func TestDoubleReleasePanics(t *testing.T) {
	p := New()
	r, _ := p.Request()
	p.Release(r)
	defer func() {
		if recover() == nil {
			t.Fatal("releasing an already-free register should panic")
		}
	}()
	p.Release(r)
}

func TestReleaseBuiltinPanics(t *testing.T) {
	p := New()
	defer func() {
		if recover() == nil {
			t.Fatal("releasing a built-in register should panic")
		}
	}()
	p.Release(FP)
}

func TestBusyReflectsOutstandingRequests(t *testing.T) {
	p := New()
	if busy := p.Busy(); len(busy) != 0 {
		t.Fatalf("Busy() on a fresh pool = %v, want empty", busy)
	}
	r, _ := p.Request()
	busy := p.Busy()
	if len(busy) != 1 || busy[0] != r {
		t.Fatalf("Busy() = %v, want [%s]", busy, r)
	}
	p.Release(r)
	if busy := p.Busy(); len(busy) != 0 {
		t.Fatalf("Busy() after release = %v, want empty", busy)
	}
}
