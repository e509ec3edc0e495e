package ledger

import (
	"strings"
	"time"
)

// PostingState is the clearing state of a posting.
type PostingState int

const (
	Uncleared PostingState = iota
	Cleared
	Pending
)

func (s PostingState) String() string {
	switch s {
	case Cleared:
		return "cleared"
	case Pending:
		return "pending"
	default:
		return "uncleared"
	}
}

// Posting is one leg of a transaction: an account plus a signed amount.
// A posting is owned by exactly one transaction.
type Posting struct {
	Account *Account
	Amount  Amount
	State   PostingState
	Comment string
}

// ExchangeAt converts the posting's amount to the target commodity at cost
// basis. Amounts already in the target commodity carry over unchanged.
func (p *Posting) ExchangeAt(target *Commodity) (Amount, error) {
	return p.Amount.Exchange(target, true, nil)
}

// Transaction is a dated, described group of postings. Postings are expected
// to net to zero in some common valuation; a violation is a reportable
// imbalance, not a hard failure.
//
// Transactions loaded from the external ledger carry an ID and UUID. Entries
// synthesized by the engine (unrealized gains, reversals) carry no ID and are
// marked by an angle-bracketed description.
type Transaction struct {
	ID          string
	UUID        string
	Code        string
	Date        time.Time
	Description string
	Metadata    map[string]string
	Postings    []*Posting
}

// NewTransaction creates a transaction with no postings.
func NewTransaction(date time.Time, description string) *Transaction {
	return &Transaction{Date: date, Description: description}
}

// AddPosting appends a posting for the account and amount.
func (t *Transaction) AddPosting(account *Account, amount Amount) *Posting {
	p := &Posting{Account: account, Amount: amount}
	t.Postings = append(t.Postings, p)
	return p
}

// Synthetic reports whether the transaction was injected by the engine
// rather than loaded from the external ledger.
func (t *Transaction) Synthetic() bool {
	return t.ID == "" && strings.HasPrefix(t.Description, "<")
}

// HasCommentDetail reports whether any posting carries a comment.
func (t *Transaction) HasCommentDetail() bool {
	for _, p := range t.Postings {
		if p.Comment != "" {
			return true
		}
	}
	return false
}

// Touches reports whether any posting is against the account.
func (t *Transaction) Touches(account *Account) bool {
	for _, p := range t.Postings {
		if p.Account == account {
			return true
		}
	}
	return false
}

// Reverse returns a new transaction at the given date with every posting's
// amount negated. Used to back out an adjusting entry at a period boundary.
func (t *Transaction) Reverse(date time.Time, description string) *Transaction {
	out := NewTransaction(date, description)
	for _, p := range t.Postings {
		out.AddPosting(p.Account, p.Amount.Neg())
	}
	return out
}

// Describe renders the transaction in a ledger-like plain text form.
func (t *Transaction) Describe() string {
	var b strings.Builder
	b.WriteString(t.Date.Format("2006-01-02"))
	b.WriteByte(' ')
	b.WriteString(t.Description)
	for _, p := range t.Postings {
		b.WriteString("\n    ")
		b.WriteString(p.Account.Name)
		b.WriteString("  ")
		b.WriteString(p.Amount.String())
	}
	return b.String()
}
