package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTransactionSplit(t *testing.T) {
	l := New(day("2025-06-30"), nil)
	usd := dollars()

	cash := l.MustAccount("Assets:Current:Cash")
	bank := l.MustAccount("Assets:Current:Bank")
	income := l.MustAccount("Income:Sales")
	fees := l.MustAccount("Expenses:Fees")

	t.Run("two postings form one pair", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Sale")
		txn.AddPosting(cash, NewAmount(dec("100"), usd))
		txn.AddPosting(income, NewAmount(dec("-100"), usd))

		pairs, err := txn.Split(usd)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(pairs))
		assert.Equal(t, cash, pairs[0].Debit.Account)
		assert.Equal(t, income, pairs[0].Credit.Account)
		assert.Equal(t, "100", pairs[0].Amount.Number.String())
	})

	t.Run("one credit split across debits in order", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Split deposit")
		txn.AddPosting(cash, NewAmount(dec("60"), usd))
		txn.AddPosting(bank, NewAmount(dec("40"), usd))
		txn.AddPosting(income, NewAmount(dec("-100"), usd))

		pairs, err := txn.Split(usd)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(pairs))
		assert.Equal(t, cash, pairs[0].Debit.Account)
		assert.Equal(t, "60", pairs[0].Amount.Number.String())
		assert.Equal(t, bank, pairs[1].Debit.Account)
		assert.Equal(t, "40", pairs[1].Amount.Number.String())
	})

	t.Run("interleaved signs keep FIFO order", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Sale with fee")
		txn.AddPosting(cash, NewAmount(dec("95"), usd))
		txn.AddPosting(income, NewAmount(dec("-100"), usd))
		txn.AddPosting(fees, NewAmount(dec("5"), usd))

		pairs, err := txn.Split(usd)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(pairs))
		assert.Equal(t, cash, pairs[0].Debit.Account)
		assert.Equal(t, "95", pairs[0].Amount.Number.String())
		assert.Equal(t, fees, pairs[1].Debit.Account)
		assert.Equal(t, income, pairs[1].Credit.Account)
		assert.Equal(t, "5", pairs[1].Amount.Number.String())
	})

	t.Run("residual is an unbalanced transaction", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Broken")
		txn.AddPosting(cash, NewAmount(dec("100"), usd))
		txn.AddPosting(income, NewAmount(dec("-90"), usd))

		_, err := txn.Split(usd)
		assert.Error(t, err)

		var unbalanced *UnbalancedTransactionError
		assert.True(t, errors.As(err, &unbalanced))
		assert.Equal(t, "Broken", unbalanced.Description)
	})

	t.Run("lot-priced postings are valued at cost", func(t *testing.T) {
		bond := l.MustAccount("Assets:Investments:Bond")
		txn := NewTransaction(day("2025-01-01"), "Buy bond")
		txn.AddPosting(bond, NewAmount(dec("2"), lot("BOND", "500", usd)))
		txn.AddPosting(cash, NewAmount(dec("-1000"), usd))

		pairs, err := txn.Split(usd)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(pairs))
		assert.Equal(t, "1000", pairs[0].Amount.Number.String())
	})
}

func TestPerspectiveOf(t *testing.T) {
	l := New(day("2025-06-30"), nil)
	usd := dollars()

	cash := l.MustAccount("Assets:Current:Cash")
	bank := l.MustAccount("Assets:Current:Bank")
	income := l.MustAccount("Income:Sales")
	fees := l.MustAccount("Expenses:Fees")

	t.Run("simplifies against a single opposite posting", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Deposit")
		txn.AddPosting(cash, NewAmount(dec("60"), usd))
		txn.AddPosting(bank, NewAmount(dec("40"), usd))
		txn.AddPosting(income, NewAmount(dec("-100"), usd))

		out := txn.PerspectiveOf(cash)
		assert.NotEqual(t, txn, out)
		assert.Equal(t, 2, len(out.Postings))
		assert.Equal(t, cash, out.Postings[0].Account)
		assert.Equal(t, "60", out.Postings[0].Amount.Number.String())
		assert.Equal(t, income, out.Postings[1].Account)
		assert.Equal(t, "-60", out.Postings[1].Amount.Number.String())
	})

	t.Run("multiple opposite postings leave the transaction alone", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Sale with fee")
		txn.AddPosting(cash, NewAmount(dec("95"), usd))
		txn.AddPosting(fees, NewAmount(dec("5"), usd))
		txn.AddPosting(income, NewAmount(dec("-60"), usd))
		txn.AddPosting(bank, NewAmount(dec("-40"), usd))

		assert.Equal(t, txn, txn.PerspectiveOf(cash))
	})

	t.Run("mixed-sign postings on the account leave the transaction alone", func(t *testing.T) {
		txn := NewTransaction(day("2025-01-01"), "Shuffle")
		txn.AddPosting(cash, NewAmount(dec("10"), usd))
		txn.AddPosting(cash, NewAmount(dec("-5"), usd))
		txn.AddPosting(income, NewAmount(dec("-5"), usd))

		assert.Equal(t, txn, txn.PerspectiveOf(cash))
	})
}
