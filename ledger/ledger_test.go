package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// dollars is the prefix-style report commodity used throughout the tests.
func dollars() *Commodity {
	return &Commodity{Name: "$", Prefix: true}
}

// lot returns a security commodity with an attached cost-basis price.
func lot(name, costNumber string, costIn *Commodity) *Commodity {
	price := NewAmount(dec(costNumber), costIn)
	return &Commodity{Name: name, Space: true, Price: &price}
}

func TestLedgerAccountCreation(t *testing.T) {
	l := New(day("2025-06-30"), nil)

	a, err := l.Account("Assets:Current:Cash")
	assert.NoError(t, err)
	assert.Equal(t, "Assets:Current:Cash", a.Name)
	assert.Equal(t, "Cash", a.Leaf())

	// Ancestors materialize and link up.
	parent := a.Parent()
	assert.Equal(t, "Assets:Current", parent.Name)
	assert.Equal(t, 1, len(parent.Children))
	assert.Equal(t, a, parent.Children[0])
	assert.Equal(t, l.Root(), parent.Parent().Parent())

	// Same name returns the same node.
	again, err := l.Account("Assets:Current:Cash")
	assert.NoError(t, err)
	assert.Equal(t, a, again)

	_, err = l.Account("Assets::Cash")
	assert.Error(t, err)
}

func TestLedgerCloneSharesAccountsNotTransactions(t *testing.T) {
	l := New(day("2025-06-30"), nil)
	cash := l.MustAccount("Assets:Current:Cash")
	income := l.MustAccount("Income:Sales")
	usd := dollars()

	txn := NewTransaction(day("2025-01-01"), "Sale")
	txn.AddPosting(cash, NewAmount(dec("100"), usd))
	txn.AddPosting(income, NewAmount(dec("-100"), usd))
	l.AddTransaction(txn)

	clone := l.Clone()
	assert.Equal(t, 1, len(clone.Transactions))

	extra := NewTransaction(day("2025-02-01"), "Adjustment")
	clone.AddTransaction(extra)
	assert.Equal(t, 2, len(clone.Transactions))
	assert.Equal(t, 1, len(l.Transactions))

	// Accounts are shared: a new account on the clone is visible to both.
	clone.MustAccount("Expenses:Rent")
	_, err := l.Account("Expenses:Rent")
	assert.NoError(t, err)
	assert.Equal(t, len(l.Accounts()), len(clone.Accounts()))
}

func TestRegisterCommodityFirstWinsAndStripsPrice(t *testing.T) {
	l := New(day("2025-06-30"), nil)
	usd := dollars()

	registered := l.RegisterCommodity(lot("GOOG", "700", usd))
	assert.Zero(t, registered.Price)

	again := l.RegisterCommodity(&Commodity{Name: "GOOG"})
	assert.Equal(t, registered, again)

	c, ok := l.Commodity("GOOG")
	assert.True(t, ok)
	assert.Equal(t, registered, c)

	_, ok = l.Commodity("AAPL")
	assert.False(t, ok)
}
