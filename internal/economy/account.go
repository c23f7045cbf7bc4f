package economy

// Account is a citizen's balance sheet. Wallet is cash on hand and may go
// negative after a trade; Savings are held at the Bank; Loans are owed to it.
type Account struct {
	Wallet  float64 `json:"wallet"`
	Savings float64 `json:"savings"`
	Loans   float64 `json:"loans"`
}

// Deposit moves amount from the wallet into savings.
func (a *Account) Deposit(b *Bank, amount float64) {
	a.Wallet -= amount
	a.Savings += amount
	b.Deposits += amount
}

// Withdraw moves amount from savings into the wallet.
func (a *Account) Withdraw(b *Bank, amount float64) {
	a.Wallet += amount
	a.Savings -= amount
	b.Deposits -= amount
}

// TakeLoan borrows amount into the wallet.
func (a *Account) TakeLoan(b *Bank, amount float64) {
	a.Loans += amount
	a.Wallet += amount
	b.ToLoan -= amount
	b.Loans += amount
}

// RepayLoan pays amount of outstanding loans from the wallet.
func (a *Account) RepayLoan(b *Bank, amount float64) {
	a.Loans -= amount
	a.Wallet -= amount
	b.ToLoan += amount
	b.Loans -= amount
}

// Pay transfers amount from a's wallet to to's wallet. a may go negative.
func (a *Account) Pay(to *Account, amount float64) {
	a.Wallet -= amount
	to.Wallet += amount
}

// BalanceBooks settles the wallet against savings and the bank.
// A negative wallet is covered from savings first, then by a loan capped at
// what the bank can lend; a positive wallet is deposited. Savings then pay
// down any outstanding loans.
func (a *Account) BalanceBooks(b *Bank) {
	if a.Wallet < 0 {
		owed := -a.Wallet
		if a.Savings >= owed {
			a.Withdraw(b, owed)
		} else {
			if a.Savings > 0 {
				a.Withdraw(b, a.Savings)
			}
			owed = -a.Wallet
			if lendable := b.Lendable(); lendable >= owed {
				a.TakeLoan(b, owed)
			} else if lendable > 0 {
				a.TakeLoan(b, lendable)
			}
		}
	} else {
		a.Deposit(b, a.Wallet)
	}

	if a.Loans > 0 && a.Savings > 0 {
		amount := a.Savings
		if a.Savings >= a.Loans {
			amount = a.Loans
		}
		a.Withdraw(b, amount)
		a.RepayLoan(b, amount)
	}
}

// Wealth returns savings discounted by legitimacy, net of loans. An exact
// zero is reported as 1 so it can serve as a hardship ratio numerator.
func (a *Account) Wealth(legitimacy float64) float64 {
	w := a.Savings*legitimacy - a.Loans
	if w == 0 {
		w = 1
	}
	return w
}
