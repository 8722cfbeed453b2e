package flextax

import (
	"strings"

	"github.com/etnz/flextax/date"
)

// Term is the tax treatment of a holding period.
type Term int

const (
	// ShortTerm is a holding period of 365 days or less. It is also the
	// conservative default whenever the holding period cannot be
	// established from the trade.
	ShortTerm Term = iota
	// LongTerm is a holding period strictly greater than 365 days.
	LongTerm
)

func (t Term) String() string {
	switch t {
	case ShortTerm:
		return "short-term"
	case LongTerm:
		return "long-term"
	default:
		return "unknown"
	}
}

// longTermDays is the holding period above which a gain or loss is long-term.
const longTermDays = 365

// washSaleWindowDays is the number of days before or after a loss sale
// during which a repurchase triggers the wash sale rule.
const washSaleWindowDays = 30

// leadingDate parses the leading 10 characters of a broker timestamp
// string ("2025-03-15;104500 EST") as a calendar date. A string shorter
// than 10 characters, or one whose leading slice is not a date, is
// reported as absent rather than an error.
func leadingDate(s string) (date.Date, bool) {
	if len(s) < 10 {
		return date.Date{}, false
	}
	d, err := date.Parse(s[:10])
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}

// holdingTerm classifies a trade's holding period. It tries the
// broker-reported original trade date first, then the leading date of
// the holding period timestamp, and defaults to ShortTerm when neither
// yields a usable reference date.
func (t Trade) holdingTerm() Term {
	if t.OrigTradeDate != nil {
		if t.TradeDate.Sub(*t.OrigTradeDate) > longTermDays {
			return LongTerm
		}
		return ShortTerm
	}
	if acquired, ok := leadingDate(t.HoldingPeriodDateTime); ok {
		if t.TradeDate.Sub(acquired) > longTermDays {
			return LongTerm
		}
	}
	return ShortTerm
}

// washSaleFlagged reports whether the broker annotated the trade as a
// wash sale: a 'W' code in the notes, or the word "wash" in any case.
func (t Trade) washSaleFlagged() bool {
	return strings.ContainsRune(t.Notes, 'W') || strings.Contains(strings.ToUpper(t.Notes), "WASH")
}

// acquisitionDate derives the position's acquisition date from the
// open timestamp, falling back to the holding period timestamp. ok is
// false when neither carries a parsable date; no restriction can be
// assessed for such a position.
func (p Position) acquisitionDate() (date.Date, bool) {
	if d, ok := leadingDate(p.OpenDateTime); ok {
		return d, true
	}
	return leadingDate(p.HoldingPeriodDateTime)
}
