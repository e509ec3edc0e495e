package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mvdouden/ledgerreport/telemetry"
)

// cashMatch records a later posting consuming part of an open item's amount.
// The amount carries the open item's sign.
type cashMatch struct {
	posting *Posting
	amount  decimal.Decimal
}

// cashItem is an open item in the FIFO queue: the unexplained portion of a
// posting awaiting opposite-sign postings to balance against.
type cashItem struct {
	posting     *Posting
	transaction *Transaction

	// toBalance is the posting's full amount in the report commodity;
	// entered the portion that reached the queue after consuming older
	// items; remaining what later postings have not yet balanced.
	toBalance decimal.Decimal
	entered   decimal.Decimal
	remaining decimal.Decimal

	matches []cashMatch
}

// AccountToCash eliminates the account from the ledger, re-attributing its
// transactions' other postings to the postings they ultimately funded using
// first-in-first-out matching across time.
//
// Every transaction touching the account is removed. Its non-target postings,
// valued in the report commodity at cost, balance against the oldest queued
// opposite-sign items; unconsumed remainders queue up for future postings.
// Each queue item is then re-emitted as a transaction: the original posting
// (possibly reduced), one redistributing posting per match, and, when the
// eliminated account is an asset, an Other Income posting absorbing any
// unresolved remainder. Remainders on liability and other accounts are
// dropped; callers relying on balance may detect the residual separately.
//
// Matching never fails; the only errors are cost-basis valuation failures.
func AccountToCash(l *Ledger, account *Account, commodity *Commodity) error {
	var queue []*cashItem
	var kept []*Transaction

	for _, t := range l.Transactions {
		if !t.Touches(account) {
			kept = append(kept, t)
			continue
		}

		for _, p := range t.Postings {
			if p.Account == account {
				// Absorbed into the matches of the other legs.
				continue
			}

			amount, err := p.ExchangeAt(commodity)
			if err != nil {
				return err
			}

			rem := amount.Number
			for !rem.IsZero() {
				q := oldestOpposite(queue, rem)
				if q == nil {
					queue = append(queue, &cashItem{
						posting:     p,
						transaction: t,
						toBalance:   amount.Number,
						entered:     rem,
						remaining:   rem,
					})
					break
				}

				if q.remaining.Abs().GreaterThanOrEqual(rem.Abs()) {
					// The queued item covers the whole incoming amount.
					q.matches = append(q.matches, cashMatch{posting: p, amount: rem.Neg()})
					q.remaining = q.remaining.Add(rem)
					rem = decimal.Zero
				} else {
					// Consume the queued item fully and keep balancing.
					q.matches = append(q.matches, cashMatch{posting: p, amount: q.remaining})
					rem = rem.Add(q.remaining)
					q.remaining = decimal.Zero
				}
			}
		}
	}

	l.Transactions = kept

	otherIncome := l.MustAccount(l.Config().OtherIncome)
	for _, q := range queue {
		t := NewTransaction(q.transaction.Date, q.transaction.Description)
		t.AddPosting(q.posting.Account, NewAmount(q.entered, commodity))
		for _, m := range q.matches {
			t.AddPosting(m.posting.Account, NewAmount(m.amount.Neg(), commodity))
		}
		if !q.remaining.IsZero() && account.IsAsset() {
			t.AddPosting(otherIncome, NewAmount(q.remaining.Neg(), commodity))
		}
		l.AddTransaction(t)
	}

	return nil
}

// oldestOpposite returns the first queued item whose remaining amount has the
// opposite sign of rem, or nil.
func oldestOpposite(queue []*cashItem, rem decimal.Decimal) *cashItem {
	for _, q := range queue {
		if q.remaining.IsZero() {
			continue
		}
		if q.remaining.Sign() != rem.Sign() {
			return q
		}
	}
	return nil
}

// LedgerToCash converts the ledger to a cash basis: every account that is not
// cash, income, expense or equity is eliminated via AccountToCash. The passed
// ledger is untouched; the converted clone is returned.
func LedgerToCash(ctx context.Context, l *Ledger, commodity *Commodity) (*Ledger, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("ledger.to_cash %s", commodity.Name))
	defer timer.End()

	clone := l.Clone()
	for _, account := range clone.Accounts() {
		if account.IsCash() || account.IsIncome() || account.IsExpense() || account.IsEquity() {
			continue
		}
		if err := AccountToCash(clone, account, commodity); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
