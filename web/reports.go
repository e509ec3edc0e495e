package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdouden/ledgerreport/ledger"
	"github.com/mvdouden/ledgerreport/loader"
)

// ReportRow is one account line of a report: the account's own balance and
// the roll-up including descendants, both exchanged to the report commodity
// at cost.
type ReportRow struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
	Total   decimal.Decimal `json:"total"`
}

// ReportPeriod is one comparative column of a multi-period report.
type ReportPeriod struct {
	Date   string      `json:"date"`
	PStart string      `json:"pstart"`
	Rows   []ReportRow `json:"rows"`
}

// ReportResponse is the JSON response structure for the report endpoints.
// Compare holds the prior-year columns when the compare parameter asks for
// them, most recent first.
type ReportResponse struct {
	Label     string         `json:"label"`
	Date      string         `json:"date"`
	PStart    string         `json:"pstart"`
	Commodity string         `json:"commodity"`
	Cash      bool           `json:"cash,omitempty"`
	Rows      []ReportRow    `json:"rows"`
	Compare   []ReportPeriod `json:"compare,omitempty"`
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// reportParams are the query parameters shared by the report endpoints.
//
//   - date: report date in YYYY-MM-DD format; defaults to today.
//   - pstart: period start in YYYY-MM-DD format; defaults to the start of
//     the financial year containing date.
//   - commodity: report commodity name; defaults to the server's commodity.
//   - cash: "true" converts the ledger to a cash basis first.
//   - compare: number of additional one-year-earlier periods to report.
type reportParams struct {
	date      time.Time
	pstart    time.Time
	commodity *ledger.Commodity
	cash      bool
	compare   int
}

// parseReportParams parses the shared query parameters against the current
// ledger. A nil return means the error response has been written.
func (s *Server) parseReportParams(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) *reportParams {
	p := &reportParams{date: time.Now()}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		d, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			http.Error(w, "invalid date format (expected YYYY-MM-DD): "+dateParam, http.StatusBadRequest)
			return nil
		}
		p.date = d
	}

	p.pstart = loader.FinancialYear(p.date)
	if pstartParam := r.URL.Query().Get("pstart"); pstartParam != "" {
		d, err := time.Parse("2006-01-02", pstartParam)
		if err != nil {
			http.Error(w, "invalid pstart format (expected YYYY-MM-DD): "+pstartParam, http.StatusBadRequest)
			return nil
		}
		p.pstart = d
	}
	if p.pstart.After(p.date) {
		http.Error(w, "pstart must not be after date", http.StatusBadRequest)
		return nil
	}

	name := s.Commodity
	if commodityParam := r.URL.Query().Get("commodity"); commodityParam != "" {
		name = commodityParam
	}
	commodity, ok := l.Commodity(name)
	if !ok {
		http.Error(w, "unknown commodity: "+name, http.StatusBadRequest)
		return nil
	}
	p.commodity = commodity

	p.cash = r.URL.Query().Get("cash") == "true"

	if compareParam := r.URL.Query().Get("compare"); compareParam != "" {
		n, err := strconv.Atoi(compareParam)
		if err != nil || n < 0 {
			http.Error(w, "invalid compare (expected a non-negative integer): "+compareParam, http.StatusBadRequest)
			return nil
		}
		p.compare = n
	}

	return p
}

// trialBalance computes the trial balance for the request, converting to a
// cash basis first when asked.
func (s *Server) trialBalance(r *http.Request, l *ledger.Ledger, p *reportParams, label string) (*ledger.TrialBalance, error) {
	if p.cash {
		converted, err := ledger.LedgerToCash(r.Context(), l, p.commodity)
		if err != nil {
			return nil, err
		}
		l = converted
	}
	return ledger.TrialBalanceAt(r.Context(), l, p.date, p.pstart, p.commodity, label)
}

// rows converts the trial balance to report rows filtered by keep, dropping
// accounts whose own balance and roll-up are both zero.
func rows(tb *ledger.TrialBalance, commodity *ledger.Commodity, keep func(*ledger.Account) bool) ([]ReportRow, error) {
	l := tb.Ledger()
	var out []ReportRow

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
		out = append(out, ReportRow{
			Account: account.Name,
			Amount:  amount.Number,
			Total:   total.Number,
		})
	}

	return out, nil
}

// periodRows computes one report column for the given window.
func (s *Server) periodRows(r *http.Request, p *reportParams, label string, keep func(*ledger.Account) bool, balanceSheet bool) ([]ReportRow, error) {
	tb, err := s.trialBalance(r, s.l, p, label)
	if err != nil {
		return nil, err
	}
	if balanceSheet {
		tb = ledger.BalanceSheet(tb)
	}
	return rows(tb, p.commodity, keep)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request, label string, keep func(*ledger.Account) bool, balanceSheet bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.parseReportParams(w, r, s.l)
	if p == nil {
		return
	}

	reportRows, err := s.periodRows(r, p, label, keep, balanceSheet)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var compare []ReportPeriod
	for i := 1; i <= p.compare; i++ {
		prior := *p
		prior.date = p.date.AddDate(-i, 0, 0)
		prior.pstart = p.pstart.AddDate(-i, 0, 0)

		priorRows, err := s.periodRows(r, &prior, label, keep, balanceSheet)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		compare = append(compare, ReportPeriod{
			Date:   prior.date.Format("2006-01-02"),
			PStart: prior.pstart.Format("2006-01-02"),
			Rows:   priorRows,
		})
	}

	writeJSONResponse(w, &ReportResponse{
		Label:     label,
		Date:      p.date.Format("2006-01-02"),
		PStart:    p.pstart.Format("2006-01-02"),
		Commodity: p.commodity.Name,
		Cash:      p.cash,
		Rows:      reportRows,
		Compare:   compare,
	})
}

// handleTrial handles GET requests to /api/trial: the full trial balance.
func (s *Server) handleTrial(w http.ResponseWriter, r *http.Request) {
	s.report(w, r, "Trial Balance", nil, false)
}

// handleBalanceSheet handles GET requests to /api/balance-sheet: assets,
// liabilities and equity with current-year earnings and OCI rolled up.
func (s *Server) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	keep := func(a *ledger.Account) bool {
		return a.IsAsset() || a.IsLiability() || a.IsEquity() || a.IsOCI()
	}
	s.report(w, r, "Balance Sheet", keep, true)
}

// handlePandL handles GET requests to /api/pandl: income and expenses over
// the period.
func (s *Server) handlePandL(w http.ResponseWriter, r *http.Request) {
	keep := func(a *ledger.Account) bool {
		return a.IsIncome() || a.IsExpense()
	}
	s.report(w, r, "Profit & Loss", keep, false)
}

// handleCash handles GET requests to /api/cash: the trial balance after
// cash-basis conversion, regardless of the cash parameter.
func (s *Server) handleCash(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	q.Set("cash", "true")
	r.URL.RawQuery = q.Encode()
	s.report(w, r, "Cash Trial Balance", nil, false)
}

// handleFlows handles GET requests to /api/flows.
//
// Query parameters beyond the shared ones:
//   - accounts: comma-separated account names (required).
//   - related: "true" reports the other side of the matched transactions
//     instead of the accounts' own movement.
func (s *Server) handleFlows(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.parseReportParams(w, r, s.l)
	if p == nil {
		return
	}

	accountsParam := r.URL.Query().Get("accounts")
	if accountsParam == "" {
		http.Error(w, "accounts parameter is required", http.StatusBadRequest)
		return
	}
	// Handlers hold only the read lock, so resolve names without creating
	// registry entries. A name that was never posted to has no movement and
	// contributes nothing.
	var accounts []*ledger.Account
	for _, name := range strings.Split(accountsParam, ",") {
		name = strings.TrimSpace(name)
		if err := ledger.ValidateAccountName(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		account, ok := s.l.Lookup(name)
		if !ok {
			continue
		}
		accounts = append(accounts, account)
	}
	related := r.URL.Query().Get("related") == "true"

	tb := ledger.AccountFlows(s.l, p.date, p.pstart, accounts, related, "Account Flows")
	reportRows, err := rows(tb, p.commodity, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSONResponse(w, &ReportResponse{
		Label:     "Account Flows",
		Date:      p.date.Format("2006-01-02"),
		PStart:    p.pstart.Format("2006-01-02"),
		Commodity: p.commodity.Name,
		Rows:      reportRows,
	})
}
