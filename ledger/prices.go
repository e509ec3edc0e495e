package ledger

import "time"

// PricePoint records a quoted price for a commodity at a date, expressed as
// an amount in another commodity.
type PricePoint struct {
	Date      time.Time
	Commodity string
	Price     Amount
}

// PriceDB holds the chronological price history used for fair-value
// measurement. Lookups use forward-fill semantics: the most recent quote on
// or before the requested date wins.
type PriceDB struct {
	points []PricePoint
}

// NewPriceDB creates an empty price history.
func NewPriceDB() *PriceDB {
	return &PriceDB{}
}

// Add appends a price point to the history.
func (db *PriceDB) Add(date time.Time, commodity string, price Amount) {
	db.points = append(db.points, PricePoint{Date: date, Commodity: commodity, Price: price})
}

// Len returns the number of recorded price points.
func (db *PriceDB) Len() int {
	return len(db.points)
}

// Points returns the recorded price history.
func (db *PriceDB) Points() []PricePoint {
	return db.points
}

// HasCommodity reports whether any price history exists for the commodity,
// regardless of date or quote currency.
func (db *PriceDB) HasCommodity(name string) bool {
	for _, p := range db.points {
		if p.Commodity == name {
			return true
		}
	}
	return false
}

// PriceAsOf returns the most recent price for the commodity quoted in the
// target commodity, dated on or before asOf. Fails with NoPriceError when no
// such quote exists.
func (db *PriceDB) PriceAsOf(from *Commodity, target *Commodity, asOf time.Time) (Amount, error) {
	var best *PricePoint
	for i := range db.points {
		p := &db.points[i]
		if p.Commodity != from.Name || p.Price.Commodity.Name != target.Name {
			continue
		}
		if p.Date.After(asOf) {
			continue
		}
		if best == nil || !p.Date.Before(best.Date) {
			best = p
		}
	}

	if best == nil {
		return Amount{}, NewNoPriceError(from.Name, target.Name, asOf)
	}
	return best.Price, nil
}
