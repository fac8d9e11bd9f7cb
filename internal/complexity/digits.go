// Package complexity scores how hard a multiplication is to do by hand and
// turns that score into an allowed answer time.
package complexity

const (
	// DefaultNonCarryCoeff is added for a column step whose carry does not
	// overflow into the next column.
	DefaultNonCarryCoeff = 0.8

	// DefaultCarryCoeff is added for a column step whose carry overflows.
	DefaultCarryCoeff = 1.5
)

// Coefficients tunes the cost of carry propagation.
type Coefficients struct {
	NonCarry float64
	Carry    float64
}

// DefaultCoefficients returns the standard carry coefficients.
func DefaultCoefficients() Coefficients {
	return Coefficients{NonCarry: DefaultNonCarryCoeff, Carry: DefaultCarryCoeff}
}

// Digits decomposes n into decimal digits, least significant first.
// Zero and negative numbers have no digits.
func Digits(n int) []int {
	var digits []int
	for ; n > 0; n /= 10 {
		digits = append(digits, n%10)
	}
	return digits
}

// SingleDigit is the cost of one digit-by-digit product. It is symmetric.
func SingleDigit(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == 6 && b > 6:
		return 1.1
	case a == 7 && b > 7:
		return 1.1
	case a == 5 && b == 9:
		return 1.0
	case a == 0:
		return 0.1
	}
	return 0.9
}

// Assess scores a × b. Operands are ordered so a <= b before decomposition,
// which makes the score independent of display order.
func Assess(a, b int, c Coefficients) float64 {
	if a > b {
		a, b = b, a
	}
	return AssessDigits(Digits(a), Digits(b), c)
}

// AssessDigits scores two digit sequences (least significant first). Every
// digit of the second sequence is multiplied against every digit of the
// first; each step that has a more significant neighbour in the first
// sequence also pays a carry coefficient.
func AssessDigits(first, second []int, c Coefficients) float64 {
	total := 0.0
	for _, db := range second {
		for j, da := range first {
			cost := SingleDigit(da, db)
			if j < len(first)-1 {
				carry := (da * db) / 10
				lsd := first[j+1] % 10
				if carry+lsd < 10 {
					cost += c.NonCarry
				} else {
					cost += c.Carry
				}
			}
			total += cost
		}
	}
	return total
}
