package ledger

import (
	"sort"
	"strings"
	"time"
)

// Basis selects the measurement convention for an exchange.
type Basis int

const (
	// Cost values amounts at their attached cost-basis price.
	Cost Basis = iota
	// Market values amounts at the most recent quoted price on or before a date.
	Market
)

// Balance is a sparse collection of amounts, holding at most one amount per
// distinct commodity. Lots of the same security with different attached
// cost-basis prices are kept as separate components.
//
// Balances are value-like: Add, AddBalance and Neg return a new Balance and
// leave the receiver untouched.
type Balance struct {
	amounts []Amount
}

// NewBalance creates a balance from the given amounts, merging components of
// equal commodity.
func NewBalance(amounts ...Amount) *Balance {
	b := &Balance{}
	for _, a := range amounts {
		b = b.Add(a)
	}
	return b
}

// Amounts returns the balance components sorted by commodity for
// deterministic iteration.
func (b *Balance) Amounts() []Amount {
	out := make([]Amount, len(b.amounts))
	copy(out, b.amounts)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Commodity.key() < out[j].Commodity.key()
	})
	return out
}

// Add returns a new balance with the amount folded into the component of
// matching commodity, or appended as a new component. Addition is exact
// decimal accumulation with no intermediate rounding.
func (b *Balance) Add(a Amount) *Balance {
	out := &Balance{amounts: make([]Amount, len(b.amounts))}
	copy(out.amounts, b.amounts)

	for i, existing := range out.amounts {
		if existing.Commodity.Equal(a.Commodity) {
			out.amounts[i] = Amount{Number: existing.Number.Add(a.Number), Commodity: existing.Commodity}
			return out
		}
	}

	out.amounts = append(out.amounts, a)
	return out
}

// AddBalance returns a new balance with every component of other folded in.
func (b *Balance) AddBalance(other *Balance) *Balance {
	out := b
	for _, a := range other.amounts {
		out = out.Add(a)
	}
	return out
}

// Sub returns b - other.
func (b *Balance) Sub(other *Balance) *Balance {
	return b.AddBalance(other.Neg())
}

// Neg returns the balance with every component negated.
func (b *Balance) Neg() *Balance {
	out := &Balance{amounts: make([]Amount, len(b.amounts))}
	for i, a := range b.amounts {
		out.amounts[i] = a.Neg()
	}
	return out
}

// Clean returns the balance without zero components.
func (b *Balance) Clean() *Balance {
	out := &Balance{}
	for _, a := range b.amounts {
		if !a.IsZero() {
			out.amounts = append(out.amounts, a)
		}
	}
	return out
}

// IsZero reports whether every component is zero.
func (b *Balance) IsZero() bool {
	for _, a := range b.amounts {
		if !a.IsZero() {
			return false
		}
	}
	return true
}

// Exchange converts every component to a single amount in the target
// commodity.
//
// With basis=Cost every component is valued at its attached cost-basis price.
// With basis=Market a component is valued at the most recent price on or
// before asOf; a component whose commodity has price history but no quote by
// that date is an error rather than a silent fallback. Only a commodity with
// no price history whatsoever falls back to cost.
func (b *Balance) Exchange(target *Commodity, basis Basis, asOf time.Time, prices *PriceDB) (Amount, error) {
	result := ZeroAmount(target)

	for _, a := range b.amounts {
		var converted Amount
		var err error

		switch {
		case basis == Cost || a.Commodity.Name == target.Name:
			converted, err = a.Exchange(target, true, nil)
		case prices != nil && prices.HasCommodity(a.Commodity.Name):
			var price Amount
			price, err = prices.PriceAsOf(a.Commodity, target, asOf)
			if err == nil {
				converted, err = a.Exchange(target, false, &price)
			}
		default:
			// No price history at all: measured at historical cost.
			converted, err = a.Exchange(target, true, nil)
		}
		if err != nil {
			return Amount{}, err
		}

		result, err = result.Add(converted)
		if err != nil {
			return Amount{}, err
		}
	}

	return result, nil
}

// String returns a human-readable rendering of the balance components.
func (b *Balance) String() string {
	if len(b.amounts) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(b.amounts))
	for _, a := range b.Amounts() {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
