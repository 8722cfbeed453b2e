package flextax

import (
	"github.com/etnz/flextax/date"
	"github.com/shopspring/decimal"
)

// Statement is one activity statement period for an account: the trades
// executed, the cash that moved, and the open positions as of the
// statement's end date. Statements are the unit of input assembly; the
// tax computation itself only ever sees the record collections.
type Statement struct {
	AccountID string
	FromDate  date.Date
	ToDate    date.Date

	Trades           []Trade
	Positions        []Position
	CashTransactions []CashTransaction
}

// Trade is a single execution reported by the broker. Closing trades
// carry a realized P&L; opening trades leave it at zero. Trades are
// read-only facts, they have no identity beyond their fields.
type Trade struct {
	Symbol    string
	ConID     string
	TradeDate date.Date
	Quantity  Quantity

	// FifoPnlRealized is the broker-reported realized P&L of a closing
	// trade. The zero value means "no P&L reported"; both cases are out
	// of scope for tax aggregation, so the ambiguity is harmless.
	FifoPnlRealized decimal.Decimal

	// OrigTradeDate is set only when the broker explicitly ties this
	// closing trade to its opening trade.
	OrigTradeDate *date.Date

	// HoldingPeriodDateTime is the broker's free-form holding period
	// timestamp (e.g. "2024-03-15;104500 EST"). Its leading date is a
	// fallback acquisition-date source. Empty means absent.
	HoldingPeriodDateTime string

	// Notes carries the broker's trade annotation codes; "W" marks a
	// wash sale.
	Notes string
}

// Position is an open position snapshot as of a statement's end.
type Position struct {
	Symbol   string
	ConID    string
	Quantity Quantity

	// OpenDateTime and HoldingPeriodDateTime are free-form timestamps;
	// either may encode the acquisition date. Empty means absent.
	OpenDateTime          string
	HoldingPeriodDateTime string

	ReportDate date.Date
}

// CashTransaction is a cash movement (dividend, interest, tax, fee...)
// reported by the broker. Credits are positive, debits negative.
type CashTransaction struct {
	// Type is the broker's category string, e.g. "Dividends" or
	// "Withholding Tax". It is matched verbatim, without normalization.
	Type string

	// Date is nil when the broker reported no transaction date. Such
	// transactions apply to every tax year rather than none.
	Date *date.Date

	Amount decimal.Decimal
}
