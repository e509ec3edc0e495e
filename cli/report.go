package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/mvdouden/ledgerreport/ledger"
	"github.com/mvdouden/ledgerreport/loader"
)

// ReportArgs are the flags shared by the report commands.
type ReportArgs struct {
	Date      string `help:"Report date (YYYY-MM-DD). Defaults to today."`
	Pstart    string `help:"Period start (YYYY-MM-DD). Defaults to the start of the financial year." name:"pstart"`
	Commodity string `help:"Report commodity. Defaults to the configured one."`
	File      string `help:"Ledger file, overriding the configured one." type:"path"`
}

// reportContext bundles everything a report command needs after loading.
type reportContext struct {
	cfg       *FileConfig
	l         *ledger.Ledger
	commodity *ledger.Commodity
	date      time.Time
	pstart    time.Time
}

// prepare loads the configuration and the ledger and resolves the report
// window and commodity.
func prepare(ctx context.Context, globals *Globals, args *ReportArgs) (*reportContext, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}
	if args.File != "" {
		cfg.LedgerFile = args.File
	}

	date := time.Now()
	if args.Date != "" {
		date, err = time.Parse("2006-01-02", args.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args.Date)
		}
	}
	pstart := loader.FinancialYear(date)
	if args.Pstart != "" {
		pstart, err = time.Parse("2006-01-02", args.Pstart)
		if err != nil {
			return nil, fmt.Errorf("invalid pstart %q (expected YYYY-MM-DD)", args.Pstart)
		}
	}
	if pstart.After(date) {
		return nil, fmt.Errorf("pstart %s is after date %s", pstart.Format("2006-01-02"), date.Format("2006-01-02"))
	}

	ld := loader.New(cfg.LedgerFile, loader.WithArgs(cfg.LedgerArgs...))
	l, err := ld.Load(ctx, date, &cfg.Report)
	if err != nil {
		return nil, err
	}

	name := cfg.Commodity
	if args.Commodity != "" {
		name = args.Commodity
	}
	commodity, ok := l.Commodity(name)
	if !ok {
		return nil, fmt.Errorf("commodity %q does not occur in the ledger", name)
	}

	return &reportContext{cfg: cfg, l: l, commodity: commodity, date: date, pstart: pstart}, nil
}

// reportRow is one rendered account line.
type reportRow struct {
	account string
	amount  ledger.Amount
	total   ledger.Amount
}

// buildRows converts a trial balance into rows in the report commodity at
// cost, filtered by keep and with all-zero accounts dropped.
func buildRows(tb *ledger.TrialBalance, commodity *ledger.Commodity, keep func(*ledger.Account) bool) ([]reportRow, error) {
	l := tb.Ledger()
	var rows []reportRow

	for _, account := range l.Accounts() {
		if keep != nil && !keep(account) {
			continue
		}

		amount, err := tb.Balance(account).Exchange(commodity, ledger.Cost, tb.Date, l.Prices)
		if err != nil {
			return nil, err
		}
		total, err := tb.Total(account).Exchange(commodity, ledger.Cost, tb.Date, l.Prices)
		if err != nil {
			return nil, err
		}

		if amount.IsZero() && total.IsZero() {
			continue
		}
		rows = append(rows, reportRow{account: account.Name, amount: amount, total: total})
	}

	return rows, nil
}

// renderReport writes the rows as an aligned two-column table under a title
// line, fitted to the terminal width.
func renderReport(w io.Writer, title string, asOf time.Time, rows []reportRow) {
	width := terminalWidth(80)
	if width < 40 {
		width = 40
	}

	amountWidth := 0
	for _, row := range rows {
		if n := runewidth.StringWidth(row.amount.String()); n > amountWidth {
			amountWidth = n
		}
		if n := runewidth.StringWidth(row.total.String()); n > amountWidth {
			amountWidth = n
		}
	}
	accountWidth := width - 2*amountWidth - 4

	_, _ = fmt.Fprintf(w, "%s as of %s\n", title, asOf.Format("2006-01-02"))
	_, _ = fmt.Fprintln(w, strings.Repeat("-", width))
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		runewidth.FillRight("Account", accountWidth),
		runewidth.FillLeft("Amount", amountWidth),
		runewidth.FillLeft("Total", amountWidth),
	)

	for _, row := range rows {
		account := runewidth.Truncate(row.account, accountWidth, "…")
		_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
			runewidth.FillRight(account, accountWidth),
			runewidth.FillLeft(row.amount.String(), amountWidth),
			runewidth.FillLeft(row.total.String(), amountWidth),
		)
	}
}
