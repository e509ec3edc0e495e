// Package ledger implements the accounting computation engine: commodity-
// checked decimal arithmetic, the chart-of-accounts hierarchy, trial-balance
// construction with period closing, mark-to-market unrealized-gain
// recognition, and FIFO cash-basis conversion.
//
// The Ledger is the aggregate root. It owns the account registry, the ordered
// transaction list, the commodity registry and the price history. Engine
// operations that inject adjusting entries (TrialBalanceAt, LedgerToCash)
// work over a Clone, which shares accounts and prices but copies the
// transaction list, so two computations never interfere through a shared
// transaction list.
//
// Loading and on-demand account creation mutate the shared registry and must
// not run concurrently with readers. Report construction itself performs no
// registry writes: New creates the configured roots and special accounts up
// front, so a loaded ledger can serve concurrent read-only report requests
// through its clones.
package ledger

import (
	"sort"
	"time"
)

// Ledger owns all accounts, transactions, commodities and prices loaded as of
// a date.
type Ledger struct {
	// Date is the as-of date the ledger was loaded for.
	Date time.Time

	// Transactions is the insertion-ordered transaction list. Engine
	// operations may append or prepend synthetic adjusting entries.
	Transactions []*Transaction

	// Prices is the price history shared by the ledger and all its clones.
	Prices *PriceDB

	cfg         *Config
	root        *Account
	accounts    map[string]*Account
	commodities map[string]*Commodity
}

// New creates an empty ledger as of date. A nil config uses the conventional
// chart-of-accounts names. The configured roots and special accounts are
// created eagerly; a malformed special account name in the config panics
// here rather than in the middle of a report.
func New(date time.Time, cfg *Config) *Ledger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Ledger{
		Date:        date,
		Prices:      NewPriceDB(),
		cfg:         cfg,
		accounts:    make(map[string]*Account),
		commodities: make(map[string]*Commodity),
	}
	l.root = &Account{Name: "", ledger: l}
	for _, name := range cfg.SpecialAccounts() {
		l.MustAccount(name)
	}
	return l
}

// Config returns the chart-of-accounts configuration.
func (l *Ledger) Config() *Config {
	return l.cfg
}

// Clone returns a ledger sharing this ledger's accounts, commodities and
// prices but owning a shallow copy of the transaction list. Adjusting entries
// appended to the clone never appear in the original.
func (l *Ledger) Clone() *Ledger {
	transactions := make([]*Transaction, len(l.Transactions))
	copy(transactions, l.Transactions)

	return &Ledger{
		Date:         l.Date,
		Transactions: transactions,
		Prices:       l.Prices,
		cfg:          l.cfg,
		root:         l.root,
		accounts:     l.accounts,
		commodities:  l.commodities,
	}
}

// Account returns the account with the given name, creating it and any
// missing ancestors on first reference. The empty name is the root account.
func (l *Ledger) Account(name string) (*Account, error) {
	if err := ValidateAccountName(name); err != nil {
		return nil, err
	}
	return l.account(name), nil
}

// MustAccount is Account for names already known to be valid, such as the
// configured special accounts. It panics on a malformed name.
func (l *Ledger) MustAccount(name string) *Account {
	a, err := l.Account(name)
	if err != nil {
		panic(err)
	}
	return a
}

// Lookup returns the account with the given name without creating it. The
// empty name is the root account.
func (l *Ledger) Lookup(name string) (*Account, bool) {
	if name == "" {
		return l.root, true
	}
	a, ok := l.accounts[name]
	return a, ok
}

// account creates or returns an account for an already-validated name.
func (l *Ledger) account(name string) *Account {
	if name == "" {
		return l.root
	}
	if a, ok := l.accounts[name]; ok {
		return a
	}

	a := &Account{Name: name, ledger: l}
	l.accounts[name] = a
	if parent := a.Parent(); parent != nil {
		parent.Children = append(parent.Children, a)
	}
	return a
}

// Root returns the root account.
func (l *Ledger) Root() *Account {
	return l.root
}

// Accounts returns every account created so far, sorted by name.
func (l *Ledger) Accounts() []*Account {
	out := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RegisterCommodity records a commodity in the registry under its name,
// stripped of any lot price. The first registration wins.
func (l *Ledger) RegisterCommodity(c *Commodity) *Commodity {
	if existing, ok := l.commodities[c.Name]; ok {
		return existing
	}
	bare := c.StripPrice()
	l.commodities[c.Name] = bare
	return bare
}

// Commodity returns the registered commodity with the given name.
func (l *Ledger) Commodity(name string) (*Commodity, bool) {
	c, ok := l.commodities[name]
	return c, ok
}

// AddTransaction appends a transaction to the ledger.
func (l *Ledger) AddTransaction(t *Transaction) {
	l.Transactions = append(l.Transactions, t)
}

// prependTransaction inserts a transaction at the head of the list. Used for
// reversing entries so later whole-ledger passes still see transactions
// roughly in date order.
func (l *Ledger) prependTransaction(t *Transaction) {
	l.Transactions = append([]*Transaction{t}, l.Transactions...)
}
