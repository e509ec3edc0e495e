package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAmountArithmetic(t *testing.T) {
	usd := dollars()
	eur := &Commodity{Name: "€", Prefix: true}

	t.Run("add and sub within one commodity", func(t *testing.T) {
		sum, err := NewAmount(dec("10.50"), usd).Add(NewAmount(dec("4.25"), usd))
		assert.NoError(t, err)
		assert.Equal(t, "14.75", sum.Number.String())

		diff, err := sum.Sub(NewAmount(dec("0.75"), usd))
		assert.NoError(t, err)
		assert.Equal(t, "14", diff.Number.String())
	})

	t.Run("mixing commodities fails", func(t *testing.T) {
		_, err := NewAmount(dec("10"), usd).Add(NewAmount(dec("10"), eur))
		assert.Error(t, err)

		var incompatible *IncompatibleCommoditiesError
		assert.True(t, errors.As(err, &incompatible))
		assert.Equal(t, "$", incompatible.Left)
		assert.Equal(t, "€", incompatible.Right)
	})

	t.Run("lots of the same security are arithmetic-compatible", func(t *testing.T) {
		a := NewAmount(dec("10"), lot("GOOG", "700", usd))
		b := NewAmount(dec("5"), lot("GOOG", "750", usd))
		sum, err := a.Add(b)
		assert.NoError(t, err)
		assert.Equal(t, "15", sum.Number.String())
	})
}

func TestAmountZeroEquality(t *testing.T) {
	usd := dollars()
	eur := &Commodity{Name: "€", Prefix: true}

	assert.True(t, ZeroAmount(usd).Equal(ZeroAmount(eur)))
	assert.False(t, NewAmount(dec("1"), usd).Equal(NewAmount(dec("1"), eur)))

	cmp, err := ZeroAmount(usd).Cmp(ZeroAmount(eur))
	assert.NoError(t, err)
	assert.Equal(t, 0, cmp)

	_, err = NewAmount(dec("1"), usd).Cmp(NewAmount(dec("1"), eur))
	assert.Error(t, err)
}

func TestAmountExchange(t *testing.T) {
	usd := dollars()

	t.Run("same commodity carries the number", func(t *testing.T) {
		out, err := NewAmount(dec("42"), dollars()).Exchange(usd, false, nil)
		assert.NoError(t, err)
		assert.Equal(t, "42", out.Number.String())
		assert.Equal(t, usd, out.Commodity)
	})

	t.Run("cost basis uses the attached lot price", func(t *testing.T) {
		a := NewAmount(dec("10"), lot("GOOG", "700.00", usd))
		out, err := a.Exchange(usd, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, "7000", out.Number.String())
	})

	t.Run("explicit price", func(t *testing.T) {
		price := NewAmount(dec("1.50"), usd)
		out, err := NewAmount(dec("10"), &Commodity{Name: "X", Space: true}).Exchange(usd, false, &price)
		assert.NoError(t, err)
		assert.Equal(t, "15", out.Number.String())
	})

	t.Run("no path is an error", func(t *testing.T) {
		_, err := NewAmount(dec("10"), &Commodity{Name: "X", Space: true}).Exchange(usd, true, nil)
		assert.Error(t, err)

		var noPrice *NoPriceError
		assert.True(t, errors.As(err, &noPrice))
		assert.Equal(t, "X", noPrice.From)
		assert.Equal(t, "$", noPrice.To)
	})
}

func TestAmountString(t *testing.T) {
	usd := dollars()

	assert.Equal(t, "$100", NewAmount(dec("100"), usd).String())
	assert.Equal(t, "100 USD", NewAmount(dec("100"), &Commodity{Name: "USD", Space: true}).String())
	assert.Equal(t, "10 GOOG {$700}", NewAmount(dec("10"), lot("GOOG", "700", usd)).String())
}
