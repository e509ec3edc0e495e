package ledger

import "github.com/shopspring/decimal"

// PostingPair matches a debit posting with the credit posting balancing it,
// for the matched portion in the report commodity.
type PostingPair struct {
	Debit  *Posting
	Credit *Posting
	Amount Amount
}

// Split pairs the transaction's debit and credit postings into matched
// (debit, credit) tuples using first-in-first-out matching over the postings
// in order, valued in the report commodity at cost.
//
// Fails with UnbalancedTransactionError when the postings cannot be fully
// paired, which indicates the transaction did not net to zero.
func (t *Transaction) Split(commodity *Commodity) ([]PostingPair, error) {
	type openPosting struct {
		posting   *Posting
		remaining decimal.Decimal
	}

	var queue []*openPosting
	var pairs []PostingPair

	for _, p := range t.Postings {
		amount, err := p.ExchangeAt(commodity)
		if err != nil {
			return nil, err
		}

		rem := amount.Number
		for !rem.IsZero() {
			var q *openPosting
			for _, candidate := range queue {
				if !candidate.remaining.IsZero() && candidate.remaining.Sign() != rem.Sign() {
					q = candidate
					break
				}
			}
			if q == nil {
				queue = append(queue, &openPosting{posting: p, remaining: rem})
				break
			}

			matched := decimal.Min(q.remaining.Abs(), rem.Abs())
			debit, credit := q.posting, p
			if rem.Sign() > 0 {
				debit, credit = p, q.posting
			}
			pairs = append(pairs, PostingPair{
				Debit:  debit,
				Credit: credit,
				Amount: NewAmount(matched, commodity),
			})

			if q.remaining.Abs().GreaterThanOrEqual(rem.Abs()) {
				q.remaining = q.remaining.Add(rem)
				rem = decimal.Zero
			} else {
				rem = rem.Add(q.remaining)
				q.remaining = decimal.Zero
			}
		}
	}

	residual := decimal.Zero
	for _, q := range queue {
		residual = residual.Add(q.remaining)
	}
	if !residual.IsZero() {
		return nil, NewUnbalancedTransactionError(t, NewAmount(residual, commodity).String())
	}

	return pairs, nil
}

// PerspectiveOf simplifies the transaction to the given account's point of
// view: its own postings plus one synthesized offsetting posting each against
// the single posting of the opposite sign.
//
// Simplification only applies when all of the account's postings share one
// sign and exactly one opposite-sign posting exists; otherwise the
// transaction is returned unmodified.
func (t *Transaction) PerspectiveOf(account *Account) *Transaction {
	var mine []*Posting
	sign := 0
	for _, p := range t.Postings {
		if p.Account != account {
			continue
		}
		s := p.Amount.Sign()
		if s == 0 {
			continue
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return t
		}
		mine = append(mine, p)
	}
	if sign == 0 {
		return t
	}

	var opposite *Posting
	for _, p := range t.Postings {
		if p.Amount.Sign() != -sign {
			continue
		}
		if opposite != nil {
			return t
		}
		opposite = p
	}
	if opposite == nil {
		return t
	}

	out := &Transaction{
		ID:          t.ID,
		UUID:        t.UUID,
		Code:        t.Code,
		Date:        t.Date,
		Description: t.Description,
		Metadata:    t.Metadata,
	}
	for _, p := range mine {
		posting := out.AddPosting(p.Account, p.Amount)
		posting.State = p.State
		posting.Comment = p.Comment
		out.AddPosting(opposite.Account, p.Amount.Neg())
	}
	return out
}
