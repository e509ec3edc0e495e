package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/ledger"
)

type FlowsCmd struct {
	ReportArgs
	Accounts []string `help:"Accounts to trace." arg:""`
	Related  bool     `help:"Show the other side of the matched transactions instead of the accounts' own movement." short:"r"`
}

func (cmd *FlowsCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "flows", func(runCtx context.Context) error {
		rc, err := prepare(runCtx, globals, &cmd.ReportArgs)
		if err != nil {
			return err
		}

		var accounts []*ledger.Account
		for _, name := range cmd.Accounts {
			account, err := rc.l.Account(name)
			if err != nil {
				return err
			}
			accounts = append(accounts, account)
		}

		tb := ledger.AccountFlows(rc.l, rc.date, rc.pstart, accounts, cmd.Related, "Account Flows")

		rows, err := buildRows(tb, rc.commodity, nil)
		if err != nil {
			return err
		}

		renderReport(ctx.Stdout, "Account Flows", rc.date, rows)
		return nil
	})
}
