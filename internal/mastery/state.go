// Package mastery decides when a drill session has demonstrated mastery and
// keeps the per-answer performance measurements that feed that decision.
package mastery

// Outcome classifies one answer.
type Outcome string

const (
	OutcomeIncorrect Outcome = "incorrect" // wrong value or unparseable input
	OutcomeSlow      Outcome = "slow"      // correct, over the allowed time
	OutcomeFast      Outcome = "fast"      // correct, within the allowed time
)

// Correct reports whether the submitted value was right.
func (o Outcome) Correct() bool {
	return o == OutcomeSlow || o == OutcomeFast
}

// Qualifies reports whether the answer counts toward a success streak.
func (o Outcome) Qualifies() bool {
	return o == OutcomeFast
}
