package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mvdouden/ledgerreport/telemetry"
)

// TrialBalanceRaw computes a trial balance at date with the books closed at
// pstart: income and expense movement before pstart is swept into Retained
// Earnings, OCI movement into Accumulated OCI, and everything else
// accumulates on its own account. Accumulation is exact decimal addition.
//
// The ledger is not modified.
func TrialBalanceRaw(l *Ledger, date, pstart time.Time, label string) *TrialBalance {
	tb := NewTrialBalance(l, date, pstart, label)
	cfg := l.Config()

	retained := l.MustAccount(cfg.RetainedEarnings)
	accumulated := l.MustAccount(cfg.AccumulatedOCI)

	for _, t := range l.Transactions {
		if t.Date.After(date) {
			continue
		}
		prior := t.Date.Before(pstart)

		for _, p := range t.Postings {
			switch {
			case prior && (p.Account.IsIncome() || p.Account.IsExpense()):
				tb.add(retained.Name, p.Amount)
			case prior && p.Account.IsOCI():
				tb.add(accumulated.Name, p.Amount)
			default:
				tb.add(p.Account.Name, p.Amount)
			}
		}
	}

	return tb
}

// TrialBalanceAt computes the full trial balance at date: books closed at
// pstart, market accounts at fair value in the report commodity, and the
// current period's unrealized gain isolated from gains recognized in prior
// periods, which are folded into opening equity instead.
//
// It works over a clone of the ledger; the returned trial balance's Ledger()
// holds the clone including all injected adjusting and reversing entries.
// The passed ledger is never modified.
func TrialBalanceAt(ctx context.Context, l *Ledger, date, pstart time.Time, commodity *Commodity, label string) (*TrialBalance, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("ledger.trial_balance %s", date.Format("2006-01-02")))
	defer timer.End()

	clone := l.Clone()
	cfg := l.Config()

	tbDate := TrialBalanceRaw(clone, date, pstart, label)
	rDate, err := addUnrealizedGains(tbDate, commodity)
	if err != nil {
		return nil, err
	}

	// One-day window immediately before the period start captures the
	// opening position with prior periods closed.
	open := pstart.AddDate(0, 0, -1)
	tbOpen := TrialBalanceRaw(clone, open, pstart, "")
	rOpen, err := addUnrealizedGains(tbOpen, commodity)
	if err != nil {
		return nil, err
	}

	for _, name := range adjustedAccounts(rDate, rOpen) {
		for _, t := range rOpen[name] {
			amount := t.Postings[0].Amount
			offset := t.Postings[1].Account

			// Fold the opening adjustment into the account and redirect its
			// offsetting leg into the opening equity reserves.
			tbDate.add(name, amount)
			switch {
			case offset.IsIncome() || offset.IsExpense():
				tbDate.add(clone.MustAccount(cfg.RetainedEarnings).Name, amount.Neg())
			case offset.IsOCI():
				tbDate.add(clone.MustAccount(cfg.AccumulatedOCI).Name, amount.Neg())
			default:
				tbDate.add(offset.Name, amount.Neg())
			}

			// The reversing entry stops the opening adjustment from also
			// counting as current-period movement.
			reversal := t.Reverse(pstart, reversalDescription(t.Description))
			clone.prependTransaction(reversal)

			tbDate.add(name, reversal.Postings[0].Amount)
			tbDate.add(reversal.Postings[1].Account.Name, reversal.Postings[0].Amount.Neg())
		}

		for _, t := range rDate[name] {
			// Current-period fair-value movement is retained as such.
			amount := t.Postings[0].Amount
			tbDate.add(name, amount)
			tbDate.add(t.Postings[1].Account.Name, amount.Neg())
		}
	}

	return tbDate, nil
}

// adjustedAccounts returns the union of adjusted account names, sorted.
func adjustedAccounts(a, b map[string][]*Transaction) []string {
	seen := make(map[string]bool)
	for name := range a {
		seen[name] = true
	}
	for name := range b {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reversalDescription derives the marker for a reversing entry from the
// original adjusting entry's marker.
func reversalDescription(desc string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(desc, "<"), ">")
	return "<Reversal of " + inner + ">"
}

// addUnrealizedGains compares every market account's balance at cost against
// fair value in the report commodity as of the trial balance's date, and
// injects one adjusting transaction per account for the accumulated gains and
// one for the accumulated losses. Gains and losses are tracked as independent
// running totals and never net against each other before classification.
//
// The adjusting entries are appended to the trial balance's ledger. The
// returned map lists them per account for later reversal bookkeeping. The
// trial balance's own balances are left for the caller to fold.
func addUnrealizedGains(tb *TrialBalance, commodity *Commodity) (map[string][]*Transaction, error) {
	l := tb.Ledger()
	cfg := l.Config()
	results := make(map[string][]*Transaction)

	gainAccount := l.MustAccount(cfg.UnrealizedGains)
	lossAccount := l.MustAccount(cfg.UnrealizedLosses)

	for _, account := range l.Accounts() {
		if !account.IsMarket() {
			continue
		}

		gain := ZeroAmount(commodity)
		loss := ZeroAmount(commodity)

		for _, amount := range tb.Balance(account).Amounts() {
			component := NewBalance(amount)

			atCost, err := component.Exchange(commodity, Cost, tb.Date, l.Prices)
			if err != nil {
				return nil, err
			}
			atMarket, err := component.Exchange(commodity, Market, tb.Date, l.Prices)
			if err != nil {
				return nil, err
			}

			delta, err := atMarket.Sub(atCost)
			if err != nil {
				return nil, err
			}

			switch {
			case delta.Sign() > 0:
				gain, _ = gain.Add(delta)
			case delta.Sign() < 0:
				loss, _ = loss.Add(delta)
			}
		}

		if !gain.IsZero() {
			t := NewTransaction(tb.Date, "<Unrealized Gains>")
			t.AddPosting(account, gain)
			t.AddPosting(gainAccount, gain.Neg())
			l.AddTransaction(t)
			results[account.Name] = append(results[account.Name], t)
		}
		if !loss.IsZero() {
			t := NewTransaction(tb.Date, "<Unrealized Losses>")
			t.AddPosting(account, loss)
			t.AddPosting(lossAccount, loss.Neg())
			l.AddTransaction(t)
			results[account.Name] = append(results[account.Name], t)
		}
	}

	return results, nil
}

// BalanceSheet adjusts a trial balance in place for balance sheet display:
// profit and loss for the period rolls up into Current Year Earnings, and
// OCI movement into Current Year OCI.
func BalanceSheet(tb *TrialBalance) *TrialBalance {
	l := tb.Ledger()
	cfg := l.Config()

	income := l.MustAccount(cfg.IncomeRoot)
	expenses := l.MustAccount(cfg.ExpensesRoot)
	pandl := tb.Total(income).AddBalance(tb.Total(expenses))

	earnings := l.MustAccount(cfg.CurrentYearEarnings)
	tb.balances[earnings.Name] = tb.Balance(earnings).AddBalance(pandl)

	oci := tb.Total(l.MustAccount(cfg.OCIRoot))
	cyOCI := l.MustAccount(cfg.CurrentYearOCI)
	tb.balances[cyOCI.Name] = tb.Balance(cyOCI).AddBalance(oci)

	return tb
}

// AccountFlows summarizes the flows into and out of a set of accounts over
// the window [pstart, date].
//
// With related=false the result shows the accounts' own movement in
// transactions touching the set; with related=true it shows the other side:
// where the money came from or went to.
func AccountFlows(l *Ledger, date, pstart time.Time, accounts []*Account, related bool, label string) *TrialBalance {
	member := make(map[*Account]bool, len(accounts))
	for _, a := range accounts {
		member[a] = true
	}

	tb := NewTrialBalance(l, date, pstart, label)

	for _, t := range l.Transactions {
		if t.Date.After(date) || t.Date.Before(pstart) {
			continue
		}
		touches := false
		for _, p := range t.Postings {
			if member[p.Account] {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}

		for _, p := range t.Postings {
			if member[p.Account] == related {
				continue
			}
			tb.add(p.Account.Name, p.Amount.Neg())
		}
	}

	return tb
}
