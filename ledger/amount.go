package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amount is an immutable decimal quantity tagged with a Commodity.
//
// Arithmetic and ordering are only defined between amounts that share a
// commodity name; combining different commodities fails with
// IncompatibleCommoditiesError. Zero amounts are commodity-agnostic for
// equality checks only.
type Amount struct {
	Number    decimal.Decimal
	Commodity *Commodity
}

// NewAmount creates an amount of the given commodity.
func NewAmount(number decimal.Decimal, commodity *Commodity) Amount {
	return Amount{Number: number, Commodity: commodity}
}

// ZeroAmount creates a zero amount of the given commodity.
func ZeroAmount(commodity *Commodity) Amount {
	return Amount{Number: decimal.Zero, Commodity: commodity}
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Number: a.Number.Neg(), Commodity: a.Commodity}
}

// Abs returns the amount with a non-negative number.
func (a Amount) Abs() Amount {
	return Amount{Number: a.Number.Abs(), Commodity: a.Commodity}
}

// IsZero reports whether the number is exactly zero.
func (a Amount) IsZero() bool {
	return a.Number.IsZero()
}

// Sign returns -1, 0 or 1 for negative, zero and positive amounts.
func (a Amount) Sign() int {
	return a.Number.Sign()
}

// checkCommodity verifies both operands share a commodity name.
func (a Amount) checkCommodity(b Amount) error {
	if a.Commodity.Name != b.Commodity.Name {
		return NewIncompatibleCommoditiesError(a.Commodity.Name, b.Commodity.Name)
	}
	return nil
}

// Add returns a+b. Fails when the commodity names differ.
func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.checkCommodity(b); err != nil {
		return Amount{}, err
	}
	return Amount{Number: a.Number.Add(b.Number), Commodity: a.Commodity}, nil
}

// Sub returns a-b. Fails when the commodity names differ.
func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.checkCommodity(b); err != nil {
		return Amount{}, err
	}
	return Amount{Number: a.Number.Sub(b.Number), Commodity: a.Commodity}, nil
}

// Cmp compares a against b, returning -1, 0 or 1. Fails when the commodity
// names differ, except that two zero amounts always compare equal.
func (a Amount) Cmp(b Amount) (int, error) {
	if a.Number.IsZero() && b.Number.IsZero() {
		return 0, nil
	}
	if err := a.checkCommodity(b); err != nil {
		return 0, err
	}
	return a.Number.Cmp(b.Number), nil
}

// Equal reports whether two amounts are equal. Zero amounts of different
// commodities compare equal; nonzero amounts of different commodities compare
// unequal without error.
func (a Amount) Equal(b Amount) bool {
	if a.Number.IsZero() && b.Number.IsZero() {
		return true
	}
	if a.Commodity.Name != b.Commodity.Name {
		return false
	}
	return a.Number.Equal(b.Number)
}

// Exchange converts the amount to the target commodity.
//
// When the commodity names already match, the number carries over unchanged.
// With cost=true and a cost-basis price attached in the target commodity, the
// attached price is used. Otherwise the explicit price is used when given.
// With no usable path the conversion fails with NoPriceError.
func (a Amount) Exchange(target *Commodity, cost bool, price *Amount) (Amount, error) {
	if a.Commodity.Name == target.Name {
		return Amount{Number: a.Number, Commodity: target}, nil
	}

	if cost && a.Commodity.Price != nil && a.Commodity.Price.Commodity.Name == target.Name {
		return Amount{Number: a.Number.Mul(a.Commodity.Price.Number), Commodity: target}, nil
	}

	if price != nil {
		if price.Commodity.Name != target.Name {
			return Amount{}, NewNoPriceError(a.Commodity.Name, target.Name, time.Time{})
		}
		return Amount{Number: a.Number.Mul(price.Number), Commodity: target}, nil
	}

	return Amount{}, NewNoPriceError(a.Commodity.Name, target.Name, time.Time{})
}

// String renders the amount following the commodity's display convention,
// with the lot price in braces when present.
func (a Amount) String() string {
	s := a.Commodity.formatNumber(a.Number.String())
	if a.Commodity.Price != nil {
		s += " {" + a.Commodity.Price.String() + "}"
	}
	return s
}
