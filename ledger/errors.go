package ledger

import (
	"fmt"
	"time"
)

// IncompatibleCommoditiesError is returned when arithmetic or a comparison is
// attempted between amounts of different commodities. It is never coerced or
// recovered from; the operation that triggered it fails outright.
type IncompatibleCommoditiesError struct {
	Left  string
	Right string
}

func (e *IncompatibleCommoditiesError) Error() string {
	return fmt.Sprintf("cannot combine amounts of commodity %s and %s", e.Left, e.Right)
}

// NewIncompatibleCommoditiesError creates an error for arithmetic across mismatched commodities.
func NewIncompatibleCommoditiesError(left, right string) *IncompatibleCommoditiesError {
	return &IncompatibleCommoditiesError{Left: left, Right: right}
}

// NoPriceError is returned when an exchange is requested and no usable price
// path exists: either the commodity pair has never been quoted, or it has
// price history but no quote dated on or before the requested date.
type NoPriceError struct {
	From string
	To   string
	Date time.Time
}

func (e *NoPriceError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("no price information for %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("no price information for %s to %s at %s", e.From, e.To, e.Date.Format("2006-01-02"))
}

// NewNoPriceError creates an error for an exchange with no usable price path.
func NewNoPriceError(from, to string, date time.Time) *NoPriceError {
	return &NoPriceError{From: from, To: to, Date: date}
}

// UnbalancedTransactionError is returned when a transaction's postings cannot
// be fully paired into debit/credit matches, indicating the transaction did
// not net to zero in the report commodity.
type UnbalancedTransactionError struct {
	Date        time.Time
	Description string
	Residual    string // unmatched amount, in the report commodity
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("%s: transaction %q does not balance: %s unmatched",
		e.Date.Format("2006-01-02"), e.Description, e.Residual)
}

// NewUnbalancedTransactionError creates an error for a transaction whose
// postings cannot be fully paired.
func NewUnbalancedTransactionError(t *Transaction, residual string) *UnbalancedTransactionError {
	return &UnbalancedTransactionError{
		Date:        t.Date,
		Description: t.Description,
		Residual:    residual,
	}
}

// InvalidAccountNameError is returned when an account name is syntactically
// invalid (empty segment, leading or trailing separator).
type InvalidAccountNameError struct {
	Name   string
	Reason string
}

func (e *InvalidAccountNameError) Error() string {
	return fmt.Sprintf("invalid account name %q: %s", e.Name, e.Reason)
}

// NewInvalidAccountNameError creates an error for a malformed account name.
func NewInvalidAccountNameError(name, reason string) *InvalidAccountNameError {
	return &InvalidAccountNameError{Name: name, Reason: reason}
}
