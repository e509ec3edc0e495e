package ledger

import "strings"

// Separator delimits the levels of the hierarchical account namespace.
const Separator = ":"

// Account is a node in the colon-delimited account hierarchy. Accounts are
// created lazily by their Ledger on first reference and live for the ledger's
// lifetime; they hold only a non-owning back-reference to it.
//
// Roles (asset, income, cash, ...) are not stored flags: they are computed by
// prefix-matching the account name against the configured chart-of-accounts
// roots.
type Account struct {
	Name     string
	Children []*Account

	ledger *Ledger
}

// ValidateAccountName checks that a name is a well-formed account path.
// The empty name denotes the root account and is valid.
func ValidateAccountName(name string) error {
	if name == "" {
		return nil
	}
	for _, part := range strings.Split(name, Separator) {
		if part == "" {
			return NewInvalidAccountNameError(name, "empty segment")
		}
	}
	return nil
}

// Parts returns the name split on the separator.
func (a *Account) Parts() []string {
	return strings.Split(a.Name, Separator)
}

// Leaf returns the last segment of the account name.
func (a *Account) Leaf() string {
	parts := a.Parts()
	return parts[len(parts)-1]
}

// Parent returns the account one level up, materializing it if needed.
// The root account has no parent.
func (a *Account) Parent() *Account {
	if a.Name == "" {
		return nil
	}
	idx := strings.LastIndex(a.Name, Separator)
	if idx < 0 {
		return a.ledger.account("")
	}
	return a.ledger.account(a.Name[:idx])
}

// Matches reports whether the account is the named root or sits below it.
func (a *Account) Matches(root string) bool {
	return a.Name == root || strings.HasPrefix(a.Name, root+Separator)
}

// IsIncome reports whether the account sits under the income root.
func (a *Account) IsIncome() bool { return a.Matches(a.ledger.cfg.IncomeRoot) }

// IsExpense reports whether the account sits under the expenses root.
func (a *Account) IsExpense() bool { return a.Matches(a.ledger.cfg.ExpensesRoot) }

// IsEquity reports whether the account sits under the equity root.
func (a *Account) IsEquity() bool { return a.Matches(a.ledger.cfg.EquityRoot) }

// IsAsset reports whether the account sits under the assets root.
func (a *Account) IsAsset() bool { return a.Matches(a.ledger.cfg.AssetsRoot) }

// IsLiability reports whether the account sits under the liabilities root.
func (a *Account) IsLiability() bool { return a.Matches(a.ledger.cfg.LiabilitiesRoot) }

// IsOCI reports whether the account sits under the other-comprehensive-income root.
func (a *Account) IsOCI() bool { return a.Matches(a.ledger.cfg.OCIRoot) }

// IsCash reports whether the account is one of the configured cash asset subtrees.
func (a *Account) IsCash() bool {
	for _, root := range a.ledger.cfg.CashAssets {
		if a.Matches(root) {
			return true
		}
	}
	return false
}

// IsCost reports whether the account is measured purely at cost: income,
// expense and equity accounts.
func (a *Account) IsCost() bool {
	return a.IsIncome() || a.IsExpense() || a.IsEquity()
}

// IsMarket reports whether the account receives mark-to-market treatment:
// asset and liability accounts.
func (a *Account) IsMarket() bool {
	return a.IsAsset() || a.IsLiability()
}

func (a *Account) String() string {
	if a.Name == "" {
		return "<root>"
	}
	return a.Name
}
