package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config    string `help:"Path to the configuration file." default:"ledgerreport.toml" type:"path"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Trial   TrialCmd   `cmd:"" help:"Show the trial balance at a date."`
	Balance BalanceCmd `cmd:"" help:"Show the balance sheet at a date."`
	Pandl   PandlCmd   `cmd:"" help:"Show the profit and loss statement for a period."`
	Cash    CashCmd    `cmd:"" help:"Show the trial balance on a cash basis."`
	Flows   FlowsCmd   `cmd:"" help:"Show the flows into and out of a set of accounts."`
	Init    InitCmd    `cmd:"" help:"Write a configuration file with the default settings."`
	Web     WebCmd     `cmd:"" help:"Start a report server."`
}
