package ledger

// Config names the chart-of-accounts roots and the designated special
// accounts the engine posts to. Account role predicates match by name prefix
// against these roots, so the engine carries no hardcoded account names.
//
// A Config is passed explicitly at ledger construction; there is no global
// state.
type Config struct {
	AssetsRoot      string `toml:"assets_account"`
	LiabilitiesRoot string `toml:"liabilities_account"`
	EquityRoot      string `toml:"equity_account"`
	IncomeRoot      string `toml:"income_account"`
	ExpensesRoot    string `toml:"expenses_account"`
	OCIRoot         string `toml:"oci_account"`

	// CashAssets lists the asset subtrees treated as cash for cash-basis
	// conversion.
	CashAssets []string `toml:"cash_asset_accounts"`

	RetainedEarnings    string `toml:"retained_earnings"`
	AccumulatedOCI      string `toml:"accumulated_oci"`
	CurrentYearEarnings string `toml:"current_year_earnings"`
	CurrentYearOCI      string `toml:"current_year_oci"`
	UnrealizedGains     string `toml:"unrealized_gains"`
	UnrealizedLosses    string `toml:"unrealized_losses"`

	// OtherIncome absorbs unresolved remainders on asset accounts during
	// cash-basis conversion.
	OtherIncome string `toml:"other_income"`
}

// SpecialAccounts lists every account the engine itself posts to or rolls up
// under: the chart roots plus the designated closing, unrealized-gain and
// cash-conversion accounts.
func (c *Config) SpecialAccounts() []string {
	return []string{
		c.AssetsRoot,
		c.LiabilitiesRoot,
		c.EquityRoot,
		c.IncomeRoot,
		c.ExpensesRoot,
		c.OCIRoot,
		c.RetainedEarnings,
		c.AccumulatedOCI,
		c.CurrentYearEarnings,
		c.CurrentYearOCI,
		c.UnrealizedGains,
		c.UnrealizedLosses,
		c.OtherIncome,
	}
}

// DefaultConfig returns the conventional chart-of-accounts names.
func DefaultConfig() *Config {
	return &Config{
		AssetsRoot:          "Assets",
		LiabilitiesRoot:     "Liabilities",
		EquityRoot:          "Equity",
		IncomeRoot:          "Income",
		ExpensesRoot:        "Expenses",
		OCIRoot:             "OCI",
		CashAssets:          []string{"Assets:Current"},
		RetainedEarnings:    "Equity:Retained Earnings",
		AccumulatedOCI:      "Equity:Accumulated OCI",
		CurrentYearEarnings: "Equity:Current Year Earnings",
		CurrentYearOCI:      "Equity:Current Year OCI",
		UnrealizedGains:     "Income:Unrealized Gains",
		UnrealizedLosses:    "Expenses:Unrealized Losses",
		OtherIncome:         "Income:Other Income",
	}
}
