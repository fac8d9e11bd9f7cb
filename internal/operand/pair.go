// Package operand defines the operand pair shared by the drill packages.
package operand

import "fmt"

// Pair is a multiplication question as displayed: A × B.
// Two pairs with the same operands in either order share one Key.
type Pair struct {
	A int
	B int
}

// New returns the pair (a, b) in display order.
func New(a, b int) Pair {
	return Pair{A: a, B: b}
}

// Key returns the canonical form of the pair, smaller operand first.
func (p Pair) Key() Pair {
	if p.A > p.B {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

// Flip swaps the display order.
func (p Pair) Flip() Pair {
	return Pair{A: p.B, B: p.A}
}

// Oriented returns the canonical pair, flipped when flip is non-zero.
func (p Pair) Oriented(flip int) Pair {
	k := p.Key()
	if flip != 0 {
		return k.Flip()
	}
	return k
}

// Product is the correct answer for the pair.
func (p Pair) Product() int {
	return p.A * p.B
}

func (p Pair) String() string {
	return fmt.Sprintf("%d×%d", p.A, p.B)
}

// Less orders canonical keys by first then second operand.
func Less(x, y Pair) bool {
	if x.A != y.A {
		return x.A < y.A
	}
	return x.B < y.B
}

// Compare is Less expressed as a three-way comparison for slices.SortFunc.
func Compare(x, y Pair) int {
	switch {
	case Less(x, y):
		return -1
	case Less(y, x):
		return 1
	}
	return 0
}
