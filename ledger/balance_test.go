package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBalanceLotBookkeeping(t *testing.T) {
	usd := dollars()

	b := NewBalance().
		Add(NewAmount(dec("10"), lot("GOOG", "700", usd))).
		Add(NewAmount(dec("5"), lot("GOOG", "750", usd))).
		Add(NewAmount(dec("2"), lot("GOOG", "700", usd)))

	// Equal lots merge; distinct lots stay separate components.
	amounts := b.Amounts()
	assert.Equal(t, 2, len(amounts))
	assert.Equal(t, "12", amounts[0].Number.String())
	assert.Equal(t, "5", amounts[1].Number.String())
}

func TestBalanceValueSemantics(t *testing.T) {
	usd := dollars()

	a := NewBalance(NewAmount(dec("100"), usd))
	b := a.Add(NewAmount(dec("50"), usd))

	assert.Equal(t, "$100", a.String())
	assert.Equal(t, "$150", b.String())

	neg := b.Neg()
	assert.Equal(t, "$-150", neg.String())
	assert.True(t, b.AddBalance(neg).IsZero())

	cleaned := b.Sub(b).Clean()
	assert.Equal(t, 0, len(cleaned.Amounts()))
}

func TestBalanceExchangeCost(t *testing.T) {
	usd := dollars()

	b := NewBalance(
		NewAmount(dec("10"), lot("GOOG", "700", usd)),
		NewAmount(dec("5"), lot("GOOG", "750", usd)),
		NewAmount(dec("250"), usd),
	)

	out, err := b.Exchange(usd, Cost, day("2025-06-30"), NewPriceDB())
	assert.NoError(t, err)
	assert.Equal(t, "11000", out.Number.String())
}

func TestBalanceExchangeMarket(t *testing.T) {
	usd := dollars()

	prices := NewPriceDB()
	prices.Add(day("2025-01-01"), "GOOG", NewAmount(dec("800"), usd))
	prices.Add(day("2025-06-01"), "GOOG", NewAmount(dec("900"), usd))

	b := NewBalance(NewAmount(dec("10"), lot("GOOG", "700", usd)))

	t.Run("uses the most recent quote on or before the date", func(t *testing.T) {
		out, err := b.Exchange(usd, Market, day("2025-06-30"), prices)
		assert.NoError(t, err)
		assert.Equal(t, "9000", out.Number.String())

		out, err = b.Exchange(usd, Market, day("2025-03-01"), prices)
		assert.NoError(t, err)
		assert.Equal(t, "8000", out.Number.String())
	})

	t.Run("history without a usable quote is an error", func(t *testing.T) {
		_, err := b.Exchange(usd, Market, day("2024-06-30"), prices)
		assert.Error(t, err)

		var noPrice *NoPriceError
		assert.True(t, errors.As(err, &noPrice))
	})

	t.Run("no history at all falls back to cost", func(t *testing.T) {
		unquoted := NewBalance(NewAmount(dec("10"), lot("BOND", "100", usd)))
		out, err := unquoted.Exchange(usd, Market, day("2025-06-30"), prices)
		assert.NoError(t, err)
		assert.Equal(t, "1000", out.Number.String())
	})
}

func TestBalanceExchangeLinearity(t *testing.T) {
	usd := dollars()
	asOf := day("2025-06-30")
	prices := NewPriceDB()
	prices.Add(day("2025-06-01"), "GOOG", NewAmount(dec("900"), usd))

	a := NewBalance(NewAmount(dec("3"), lot("GOOG", "700", usd)), NewAmount(dec("40"), usd))
	b := NewBalance(NewAmount(dec("7"), lot("GOOG", "750", usd)), NewAmount(dec("-15"), usd))

	for _, basis := range []Basis{Cost, Market} {
		exA, err := a.Exchange(usd, basis, asOf, prices)
		assert.NoError(t, err)
		exB, err := b.Exchange(usd, basis, asOf, prices)
		assert.NoError(t, err)
		exSum, err := a.AddBalance(b).Exchange(usd, basis, asOf, prices)
		assert.NoError(t, err)

		want, err := exA.Add(exB)
		assert.NoError(t, err)
		assert.True(t, exSum.Equal(want))
	}
}
