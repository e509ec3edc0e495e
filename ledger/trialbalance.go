package ledger

import (
	"sort"
	"time"
)

// TrialBalance is a snapshot of account balances for a reporting window,
// computed over a specific ledger (usually a clone). Accounts with no
// movement have no entry and report an empty balance.
type TrialBalance struct {
	// Date is the period end; PStart the period start. Movement before
	// PStart on nominal accounts has been swept into equity reserves.
	Date   time.Time
	PStart time.Time
	Label  string

	ledger   *Ledger
	balances map[string]*Balance
}

// NewTrialBalance creates an empty trial balance over the ledger.
func NewTrialBalance(l *Ledger, date, pstart time.Time, label string) *TrialBalance {
	return &TrialBalance{
		Date:     date,
		PStart:   pstart,
		Label:    label,
		ledger:   l,
		balances: make(map[string]*Balance),
	}
}

// Ledger returns the ledger the trial balance was computed over, including
// any adjusting entries injected during its construction.
func (tb *TrialBalance) Ledger() *Ledger {
	return tb.ledger
}

// Balance returns the account's own balance, excluding descendants.
func (tb *TrialBalance) Balance(account *Account) *Balance {
	return tb.balanceFor(account.Name)
}

func (tb *TrialBalance) balanceFor(name string) *Balance {
	if b, ok := tb.balances[name]; ok {
		return b
	}
	return NewBalance()
}

// Total returns the account's balance plus the totals of all descendants.
func (tb *TrialBalance) Total(account *Account) *Balance {
	total := tb.Balance(account)
	for _, child := range account.Children {
		total = total.AddBalance(tb.Total(child))
	}
	return total
}

// add folds an amount into the named account's balance.
func (tb *TrialBalance) add(name string, a Amount) {
	tb.balances[name] = tb.balanceFor(name).Add(a)
}

// AccountNames returns the names of all accounts with an entry, sorted.
func (tb *TrialBalance) AccountNames() []string {
	names := make([]string, 0, len(tb.balances))
	for name := range tb.balances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
