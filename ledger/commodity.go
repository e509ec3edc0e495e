package ledger

import "strings"

// Commodity identifies a unit of value: a currency or a security. It carries
// the display convention for amounts ("$100" vs "100 USD") and, optionally, a
// price fixed at acquisition time. An attached price represents the cost basis
// of a lot: two commodities with the same name but different attached prices
// are distinct values for balance bookkeeping, which is how lot-level cost
// basis is tracked.
type Commodity struct {
	// Name is the symbol or ticker, e.g. "$" or "GOOG".
	Name string

	// Prefix indicates the symbol precedes the number ("$100" rather than "100 USD").
	Prefix bool

	// Space indicates a space separates the number and the symbol.
	Space bool

	// Price is the cost-basis price attached to this lot, expressed as an
	// amount in another commodity. Nil for a bare commodity.
	Price *Amount
}

// Equal reports whether two commodities are the same, including any attached
// lot price. Distinct lots of the same security compare unequal.
func (c *Commodity) Equal(other *Commodity) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Name != other.Name {
		return false
	}
	if (c.Price == nil) != (other.Price == nil) {
		return false
	}
	if c.Price == nil {
		return true
	}
	return c.Price.Number.Equal(other.Price.Number) && c.Price.Commodity.Equal(other.Price.Commodity)
}

// StripPrice returns the bare commodity without any attached lot price.
func (c *Commodity) StripPrice() *Commodity {
	return &Commodity{Name: c.Name, Prefix: c.Prefix, Space: c.Space}
}

// key returns a stable identifier distinguishing lots of the same commodity.
func (c *Commodity) key() string {
	if c.Price == nil {
		return c.Name
	}
	return c.Name + "{" + c.Price.String() + "}"
}

// String returns the commodity name, with the lot price in braces when present.
func (c *Commodity) String() string {
	return c.key()
}

// formatNumber renders a number string next to the commodity symbol following
// its display convention.
func (c *Commodity) formatNumber(num string) string {
	var b strings.Builder
	if c.Prefix {
		b.WriteString(c.Name)
		if c.Space {
			b.WriteByte(' ')
		}
		b.WriteString(num)
	} else {
		b.WriteString(num)
		if c.Space {
			b.WriteByte(' ')
		}
		b.WriteString(c.Name)
	}
	return b.String()
}
