package flextax

import (
	"github.com/etnz/flextax/date"
	"github.com/shopspring/decimal"
)

// TaxSystem holds one account's fully materialized activity: every
// trade and cash transaction of the covered period, plus the open
// positions as of the most recent statement. It is the input side of
// the tax computation; each TaxYear call derives a fresh report from
// it and shares no state with previous calls.
type TaxSystem struct {
	Trades           []Trade
	Positions        []Position
	CashTransactions []CashTransaction

	// AsOf is the reference date against which "is this wash sale
	// restriction still active" is evaluated, normally the latest
	// statement's period end.
	AsOf date.Date

	// Currency is the account base currency used for report display.
	Currency string
}

// NewTaxSystem assembles a TaxSystem from statements in chronological
// order: trades and cash transactions from all of them, positions and
// the as-of date from the last one.
func NewTaxSystem(statements ...*Statement) *TaxSystem {
	s := &TaxSystem{Currency: "USD"}
	for _, stmt := range statements {
		s.Trades = append(s.Trades, stmt.Trades...)
		s.CashTransactions = append(s.CashTransactions, stmt.CashTransactions...)
	}
	if len(statements) > 0 {
		last := statements[len(statements)-1]
		s.Positions = last.Positions
		s.AsOf = last.ToDate
	}
	return s
}

// TaxReport is the result of classifying one tax year of activity.
type TaxReport struct {
	Year     int
	Range    date.Range
	AsOf     date.Date
	Currency string

	CapitalGains CapitalGainsSummary
	// WashSales lists the flagged loss sales in trade iteration order.
	WashSales []WashSale
	// Restricted lists open positions still inside a wash sale window,
	// one entry per contributing loss sale (not collapsed per symbol).
	Restricted []RestrictedPosition
	CashFlow   CashFlowSummary
}

// CapitalGainsSummary accumulates realized P&L by holding period. All
// four buckets hold magnitudes: losses are stored positive, and net
// figures are derived on demand, never stored.
type CapitalGainsSummary struct {
	ShortTermGains  decimal.Decimal
	ShortTermLosses decimal.Decimal
	LongTermGains   decimal.Decimal
	LongTermLosses  decimal.Decimal

	// WashSaleDisallowed accumulates the absolute loss of every wash
	// sale, in addition to (not instead of) the loss buckets above.
	WashSaleDisallowed decimal.Decimal
}

// add buckets one realized P&L figure under its term.
func (s *CapitalGainsSummary) add(term Term, pnl decimal.Decimal) {
	switch {
	case term == LongTerm && pnl.Sign() >= 0:
		s.LongTermGains = s.LongTermGains.Add(pnl)
	case term == LongTerm:
		s.LongTermLosses = s.LongTermLosses.Add(pnl.Abs())
	case pnl.Sign() >= 0:
		s.ShortTermGains = s.ShortTermGains.Add(pnl)
	default:
		s.ShortTermLosses = s.ShortTermLosses.Add(pnl.Abs())
	}
}

// NetShortTerm is short-term gains minus short-term losses.
func (s CapitalGainsSummary) NetShortTerm() decimal.Decimal {
	return s.ShortTermGains.Sub(s.ShortTermLosses)
}

// NetLongTerm is long-term gains minus long-term losses.
func (s CapitalGainsSummary) NetLongTerm() decimal.Decimal {
	return s.LongTermGains.Sub(s.LongTermLosses)
}

// TotalNet is the sum of the short-term and long-term nets.
func (s CapitalGainsSummary) TotalNet() decimal.Decimal {
	return s.NetShortTerm().Add(s.NetLongTerm())
}

// Merge adds another summary into s. Summing is commutative, so
// per-worker summaries can be merged in any order.
func (s *CapitalGainsSummary) Merge(o CapitalGainsSummary) {
	s.ShortTermGains = s.ShortTermGains.Add(o.ShortTermGains)
	s.ShortTermLosses = s.ShortTermLosses.Add(o.ShortTermLosses)
	s.LongTermGains = s.LongTermGains.Add(o.LongTermGains)
	s.LongTermLosses = s.LongTermLosses.Add(o.LongTermLosses)
	s.WashSaleDisallowed = s.WashSaleDisallowed.Add(o.WashSaleDisallowed)
}

// WashSale is one flagged loss sale.
type WashSale struct {
	Symbol   string
	SellDate date.Date
	// Loss is the realized P&L, always negative.
	Loss decimal.Decimal
	// Disallowed is the absolute value of Loss; the full loss is
	// assumed disallowed.
	Disallowed decimal.Decimal
	// RepurchaseDate is never resolved: pairing the sale with the
	// actual replacement lot would need tax-lot accounting that the
	// source data does not support. Callers must not rely on it.
	RepurchaseDate *date.Date
}

// RestrictedPosition is an open position acquired within the wash sale
// window of a loss sale in the same symbol, whose restriction has not
// lapsed at the as-of date.
type RestrictedPosition struct {
	Symbol          string
	ConID           string
	Quantity        Quantity
	AcquisitionDate date.Date
	// CostBasisAdjustment is the absolute value of the matched loss,
	// to be added to the position's cost basis.
	CostBasisAdjustment decimal.Decimal
	// RestrictionEnds is the loss sale date plus 30 days.
	RestrictionEnds date.Date
}

// Activity is one in-scope trade registered under its symbol.
type Activity struct {
	Date     date.Date
	Pnl      decimal.Decimal
	Quantity Quantity
}

// ActivityIndex maps a symbol to its in-scope trades. Every qualifying
// trade is registered, not only losses: consumers filter by sign.
type ActivityIndex map[string][]Activity

// Add registers a trade's activity under its symbol.
func (x ActivityIndex) Add(symbol string, a Activity) {
	x[symbol] = append(x[symbol], a)
}

// LossSales returns the loss sales recorded for a symbol.
func (x ActivityIndex) LossSales(symbol string) []Activity {
	var losses []Activity
	for _, a := range x[symbol] {
		if a.Pnl.Sign() < 0 {
			losses = append(losses, a)
		}
	}
	return losses
}

// CashFlowSummary accumulates tax-relevant cash movements. Amounts keep
// their sign: withholding and interest paid are typically negative.
type CashFlowSummary struct {
	Dividends   decimal.Decimal
	Withholding decimal.Decimal
	Interest    decimal.Decimal
}

// NetDividends is dividends received plus (negative) withholding.
func (c CashFlowSummary) NetDividends() decimal.Decimal {
	return c.Dividends.Add(c.Withholding)
}

// add categorizes one cash transaction by its verbatim type string.
// Unknown types are ignored.
func (c *CashFlowSummary) add(t CashTransaction) {
	switch t.Type {
	case "Dividends", "Payment In Lieu Of Dividends":
		c.Dividends = c.Dividends.Add(t.Amount)
	case "Withholding Tax":
		c.Withholding = c.Withholding.Add(t.Amount)
	case "Broker Interest Received", "Bond Interest Received", "Broker Interest Paid":
		c.Interest = c.Interest.Add(t.Amount)
	}
}

// TaxYear classifies the system's activity for one tax year. The
// computation is a pure function of the system's records, the year and
// the as-of date: it never fails, resolving every ambiguous input
// (missing dates, unparsable timestamps) with the conservative
// defaults documented on the classify helpers.
func (s *TaxSystem) TaxYear(year int) *TaxReport {
	report := &TaxReport{
		Year:     year,
		Range:    date.YearRange(year),
		AsOf:     s.AsOf,
		Currency: s.Currency,
	}

	index := s.aggregateTrades(year, report)
	s.restrictedPositions(index, report)

	for _, t := range s.CashTransactions {
		// A dated transaction outside the year is excluded; an undated
		// one applies unconditionally.
		if t.Date != nil && !report.Range.Contains(*t.Date) {
			continue
		}
		report.CashFlow.add(t)
	}

	return report
}

// aggregateTrades runs the gains pass: it buckets every in-scope
// trade's realized P&L, records wash sales, and returns the per-symbol
// activity index shared with the restriction pass.
func (s *TaxSystem) aggregateTrades(year int, report *TaxReport) ActivityIndex {
	index := ActivityIndex{}
	for _, t := range s.Trades {
		if t.TradeDate.IsZero() || !report.Range.Contains(t.TradeDate) {
			continue
		}
		pnl := t.FifoPnlRealized
		if pnl.IsZero() {
			continue
		}

		// A flagged trade only produces a wash sale when it actually
		// lost money: the rule disallows losses, never gains.
		if t.washSaleFlagged() && pnl.Sign() < 0 {
			report.WashSales = append(report.WashSales, WashSale{
				Symbol:     t.Symbol,
				SellDate:   t.TradeDate,
				Loss:       pnl,
				Disallowed: pnl.Abs(),
			})
			report.CapitalGains.WashSaleDisallowed = report.CapitalGains.WashSaleDisallowed.Add(pnl.Abs())
		}

		report.CapitalGains.add(t.holdingTerm(), pnl)

		index.Add(t.Symbol, Activity{Date: t.TradeDate, Pnl: pnl, Quantity: t.Quantity})
	}
	return index
}

// restrictedPositions cross-references open positions against the loss
// sales of the same symbol. A position acquired within 30 days of a
// loss sale (either side) is restricted until 30 days after the sale;
// lapsed restrictions are dropped. One position may emit several rows,
// one per matching loss sale.
func (s *TaxSystem) restrictedPositions(index ActivityIndex, report *TaxReport) {
	for _, p := range s.Positions {
		acquired, ok := p.acquisitionDate()
		if !ok {
			continue
		}
		for _, sale := range index.LossSales(p.Symbol) {
			days := acquired.Sub(sale.Date)
			if days < 0 {
				days = -days
			}
			if days > washSaleWindowDays {
				continue
			}
			ends := sale.Date.Add(washSaleWindowDays)
			if ends.Before(s.AsOf) {
				continue
			}
			report.Restricted = append(report.Restricted, RestrictedPosition{
				Symbol:              p.Symbol,
				ConID:               p.ConID,
				Quantity:            p.Quantity,
				AcquisitionDate:     acquired,
				CostBasisAdjustment: sale.Pnl.Abs(),
				RestrictionEnds:     ends,
			})
		}
	}
}
