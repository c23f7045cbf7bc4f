// Package economy provides the citizens' micro-economy: one shared Bank
// and a wallet/savings/loans Account per citizen.
package economy

// Bank tracks aggregate deposits and loans and decides how much it can
// lend. All citizens share one Bank; it is mutated by every economic
// sub-step in stepping order.
type Bank struct {
	Deposits float64 `json:"deposits"` // Sum of citizen savings
	Loans    float64 `json:"loans"`    // Outstanding loans
	Giveaway float64 `json:"giveaway"` // Released as non-recoverable benefit
	ToLoan   float64 `json:"to_loan"`  // Lending capacity this tick
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{}
}

// Balance recomputes the giveaway and lending capacity from current
// deposits. After it returns, ToLoan == Deposits - (Giveaway + Loans).
func (b *Bank) Balance(legitimacy float64) {
	b.Giveaway = legitimacy * b.Deposits
	b.ToLoan = b.Deposits - (b.Giveaway + b.Loans)
}

// Lendable returns what the bank can actually lend right now, never negative.
func (b *Bank) Lendable() float64 {
	if b.ToLoan < 0 {
		return 0
	}
	return b.ToLoan
}
