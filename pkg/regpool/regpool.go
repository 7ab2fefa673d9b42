// Package regpool implements SNARL's fixed callee-saved scratch-register
// pool: eight registers ($s0-$s7), request/release discipline, LIFO reuse,
// per spec §3 "Register" and §4.5.
package regpool

import "fmt"

// Register names a MIPS register. Built-ins ($fp $sp $ra $v0 $zero) are
// never handed out by the pool and never released.
type Register string

const (
	FP   Register = "$fp"
	SP   Register = "$sp"
	RA   Register = "$ra"
	V0   Register = "$v0"
	Zero Register = "$zero"
)

// scratch is the fixed pool of eight callee-saved scratch registers, in the
// order they are pushed onto the free stack initially (s7 ends up on top).
var scratch = [8]Register{"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7"}

// Pool is a LIFO of free scratch registers plus a used/free flag per
// register.
type Pool struct {
	free []Register // stack; top = free[len-1]
	used map[Register]bool
}

// New builds a Pool with all eight scratch registers free. The pool is a
// LIFO, so registers are reported in the reverse of program order
// ($s7 on top initially, $s0 requested last).
func New() *Pool {
	p := &Pool{used: make(map[Register]bool, len(scratch))}
	for _, r := range scratch {
		p.free = append(p.free, r)
		p.used[r] = false
	}
	return p
}

// Request returns a free scratch register and marks it used. Exhaustion is
// a user error: the caller is expected to route it through the source
// reader's fatal-error path with the message "expression too complex".
func (p *Pool) Request() (Register, error) {
	if len(p.free) == 0 {
		return "", fmt.Errorf("expression too complex")
	}
	r := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.used[r] = true
	return r, nil
}

// Release returns r to the free stack. Releasing a register that is
// already free, or a built-in register, is a programmer error: it panics
// rather than returning an error, matching spec §4.5's "fatal, internal"
// classification (contrast with Request's exhaustion, which is a user
// error).
func (p *Pool) Release(r Register) {
	used, tracked := p.used[r]
	if !tracked {
		panic(fmt.Sprintf("regpool: release of built-in or unknown register %s", r))
	}
	if !used {
		panic(fmt.Sprintf("regpool: double release of register %s", r))
	}
	p.used[r] = false
	p.free = append(p.free, r)
}

// Busy reports the registers currently held, for invariant checks (spec §8,
// property 2: the busy set is empty at every statement boundary).
func (p *Pool) Busy() []Register {
	var busy []Register
	for _, r := range scratch {
		if p.used[r] {
			busy = append(busy, r)
		}
	}
	return busy
}
