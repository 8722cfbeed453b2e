package flextax

import (
	"testing"
	"time"

	"github.com/etnz/flextax/date"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTaxSystem_TaxYear_BucketsByTerm(t *testing.T) {
	s := &TaxSystem{
		Trades: []Trade{
			// short-term gain and loss (no reference date at all)
			{Symbol: "AAA", TradeDate: date.New(2025, time.March, 3), FifoPnlRealized: dec("150.25")},
			{Symbol: "AAA", TradeDate: date.New(2025, time.April, 4), FifoPnlRealized: dec("-40.75")},
			// long-term gain and loss (explicit original trade date)
			{Symbol: "BBB", TradeDate: date.New(2025, time.May, 5),
				OrigTradeDate: dateptr(date.New(2023, time.May, 5)), FifoPnlRealized: dec("1000")},
			{Symbol: "CCC", TradeDate: date.New(2025, time.June, 6),
				OrigTradeDate: dateptr(date.New(2023, time.June, 6)), FifoPnlRealized: dec("-250.50")},
			// out of year, ignored
			{Symbol: "DDD", TradeDate: date.New(2024, time.December, 31), FifoPnlRealized: dec("999")},
			// no realized P&L, ignored
			{Symbol: "EEE", TradeDate: date.New(2025, time.July, 7)},
		},
	}

	report := s.TaxYear(2025)
	cg := report.CapitalGains

	if !cg.ShortTermGains.Equal(dec("150.25")) {
		t.Errorf("ShortTermGains = %s, want 150.25", cg.ShortTermGains)
	}
	if !cg.ShortTermLosses.Equal(dec("40.75")) {
		t.Errorf("ShortTermLosses = %s, want 40.75", cg.ShortTermLosses)
	}
	if !cg.LongTermGains.Equal(dec("1000")) {
		t.Errorf("LongTermGains = %s, want 1000", cg.LongTermGains)
	}
	if !cg.LongTermLosses.Equal(dec("250.50")) {
		t.Errorf("LongTermLosses = %s, want 250.50", cg.LongTermLosses)
	}

	// Reconciliation invariant: the nets add up to the in-scope P&L sum.
	inScope := dec("150.25").Add(dec("-40.75")).Add(dec("1000")).Add(dec("-250.50"))
	if !cg.TotalNet().Equal(inScope) {
		t.Errorf("TotalNet() = %s, want %s", cg.TotalNet(), inScope)
	}
	if !cg.NetShortTerm().Equal(dec("109.50")) {
		t.Errorf("NetShortTerm() = %s, want 109.50", cg.NetShortTerm())
	}
	if !cg.NetLongTerm().Equal(dec("749.50")) {
		t.Errorf("NetLongTerm() = %s, want 749.50", cg.NetLongTerm())
	}
}

func TestTaxSystem_TaxYear_WashSales(t *testing.T) {
	s := &TaxSystem{
		Trades: []Trade{
			{Symbol: "AAA", TradeDate: date.New(2025, time.February, 10), FifoPnlRealized: dec("-120"), Notes: "W"},
			{Symbol: "BBB", TradeDate: date.New(2025, time.March, 11), FifoPnlRealized: dec("-80"), Notes: "wash sale"},
			// flagged but profitable: the rule only disallows losses
			{Symbol: "CCC", TradeDate: date.New(2025, time.April, 12), FifoPnlRealized: dec("55"), Notes: "W"},
			// a plain loss, not flagged
			{Symbol: "DDD", TradeDate: date.New(2025, time.May, 13), FifoPnlRealized: dec("-10")},
		},
	}

	report := s.TaxYear(2025)

	if len(report.WashSales) != 2 {
		t.Fatalf("got %d wash sales, want 2: %v", len(report.WashSales), report.WashSales)
	}
	ws := report.WashSales[0]
	if ws.Symbol != "AAA" || !ws.Loss.Equal(dec("-120")) || !ws.Disallowed.Equal(dec("120")) {
		t.Errorf("WashSales[0] = %+v, want AAA loss -120 disallowed 120", ws)
	}
	if ws.RepurchaseDate != nil {
		t.Errorf("RepurchaseDate = %v, want nil (never resolved)", ws.RepurchaseDate)
	}

	// The disallowed total is the sum of the recorded absolute losses.
	var disallowed decimal.Decimal
	for _, w := range report.WashSales {
		disallowed = disallowed.Add(w.Disallowed)
	}
	if !report.CapitalGains.WashSaleDisallowed.Equal(disallowed) {
		t.Errorf("WashSaleDisallowed = %s, want %s", report.CapitalGains.WashSaleDisallowed, disallowed)
	}

	// A wash sale loss still counts in its normal loss bucket.
	if !report.CapitalGains.ShortTermLosses.Equal(dec("210")) {
		t.Errorf("ShortTermLosses = %s, want 210", report.CapitalGains.ShortTermLosses)
	}
}

func TestTaxSystem_TaxYear_RestrictedPositions(t *testing.T) {
	sale := date.New(2025, time.March, 1)
	s := &TaxSystem{
		Trades: []Trade{
			{Symbol: "ABC", TradeDate: sale, FifoPnlRealized: dec("-100")},
			// a profitable sale never restricts anything
			{Symbol: "GAIN", TradeDate: sale, FifoPnlRealized: dec("500")},
		},
		Positions: []Position{
			{Symbol: "ABC", ConID: "1", Quantity: Q(50), OpenDateTime: "2025-03-15;104500 EST"},
			{Symbol: "GAIN", ConID: "2", Quantity: Q(10), OpenDateTime: "2025-03-15;104500 EST"},
			// no acquisition date at all: cannot be assessed
			{Symbol: "ABC", ConID: "3", Quantity: Q(5)},
		},
		AsOf: date.New(2025, time.March, 20),
	}

	report := s.TaxYear(2025)

	if len(report.Restricted) != 1 {
		t.Fatalf("got %d restricted positions, want 1: %v", len(report.Restricted), report.Restricted)
	}
	rp := report.Restricted[0]
	if rp.Symbol != "ABC" || rp.ConID != "1" {
		t.Errorf("Restricted[0] = %+v, want position ABC/1", rp)
	}
	if !rp.Quantity.Equal(Q(50)) {
		t.Errorf("Quantity = %s, want 50 (unmodified from the position)", rp.Quantity)
	}
	if want := date.New(2025, time.March, 15); rp.AcquisitionDate != want {
		t.Errorf("AcquisitionDate = %s, want %s", rp.AcquisitionDate, want)
	}
	if !rp.CostBasisAdjustment.Equal(dec("100")) {
		t.Errorf("CostBasisAdjustment = %s, want 100", rp.CostBasisAdjustment)
	}
	if want := date.New(2025, time.March, 31); rp.RestrictionEnds != want {
		t.Errorf("RestrictionEnds = %s, want %s", rp.RestrictionEnds, want)
	}
}

func TestTaxSystem_TaxYear_RestrictionWindowBoundary(t *testing.T) {
	sale := date.New(2025, time.March, 1)

	tests := []struct {
		name     string
		acquired date.Date
		want     int
	}{
		{"30 days after the sale", sale.Add(30), 1},
		{"31 days after the sale", sale.Add(31), 0},
		{"30 days before the sale", sale.Add(-30), 1},
		{"31 days before the sale", sale.Add(-31), 0},
		{"same day", sale, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &TaxSystem{
				Trades: []Trade{
					{Symbol: "ABC", TradeDate: sale, FifoPnlRealized: dec("-100")},
				},
				Positions: []Position{
					{Symbol: "ABC", ConID: "1", Quantity: Q(50), OpenDateTime: tt.acquired.String()},
				},
				AsOf: sale, // restriction always still active at the sale date
			}
			report := s.TaxYear(2025)
			if len(report.Restricted) != tt.want {
				t.Errorf("got %d restricted positions, want %d", len(report.Restricted), tt.want)
			}
		})
	}
}

func TestTaxSystem_TaxYear_LapsedRestrictionExcluded(t *testing.T) {
	// This is the worked example: sale 2025-03-01 for -100, repurchase
	// 2025-03-15, restriction ends 2025-03-31.
	build := func(asOf date.Date) *TaxSystem {
		return &TaxSystem{
			Trades: []Trade{
				{Symbol: "ABC", TradeDate: date.New(2025, time.March, 1), FifoPnlRealized: dec("-100"), Notes: "W"},
			},
			Positions: []Position{
				{Symbol: "ABC", Quantity: Q(50), OpenDateTime: "2025-03-15"},
			},
			AsOf: asOf,
		}
	}

	// As of 2025-04-01 the restriction has lapsed.
	report := build(date.New(2025, time.April, 1)).TaxYear(2025)
	if !report.CapitalGains.ShortTermLosses.Equal(dec("100")) {
		t.Errorf("ShortTermLosses = %s, want 100", report.CapitalGains.ShortTermLosses)
	}
	if !report.CapitalGains.WashSaleDisallowed.Equal(dec("100")) {
		t.Errorf("WashSaleDisallowed = %s, want 100", report.CapitalGains.WashSaleDisallowed)
	}
	if len(report.WashSales) != 1 {
		t.Errorf("got %d wash sales, want 1", len(report.WashSales))
	}
	if len(report.Restricted) != 0 {
		t.Errorf("got %d restricted positions, want 0 (restriction ended 2025-03-31)", len(report.Restricted))
	}

	// As of 2025-03-20 it is still active.
	report = build(date.New(2025, time.March, 20)).TaxYear(2025)
	if len(report.Restricted) != 1 {
		t.Fatalf("got %d restricted positions, want 1", len(report.Restricted))
	}
	if want := date.New(2025, time.March, 31); report.Restricted[0].RestrictionEnds != want {
		t.Errorf("RestrictionEnds = %s, want %s", report.Restricted[0].RestrictionEnds, want)
	}

	// The boundary itself is inclusive: restriction ending on the as-of
	// date is still reported.
	report = build(date.New(2025, time.March, 31)).TaxYear(2025)
	if len(report.Restricted) != 1 {
		t.Errorf("got %d restricted positions on boundary, want 1", len(report.Restricted))
	}
}

func TestTaxSystem_TaxYear_OneRowPerMatchingLossSale(t *testing.T) {
	// Two loss sales of the same symbol, both inside the position's
	// window: the calculator reports one row per matching sale.
	s := &TaxSystem{
		Trades: []Trade{
			{Symbol: "ABC", TradeDate: date.New(2025, time.March, 1), FifoPnlRealized: dec("-100")},
			{Symbol: "ABC", TradeDate: date.New(2025, time.March, 10), FifoPnlRealized: dec("-60")},
		},
		Positions: []Position{
			{Symbol: "ABC", Quantity: Q(50), OpenDateTime: "2025-03-15"},
		},
		AsOf: date.New(2025, time.March, 20),
	}
	report := s.TaxYear(2025)
	if len(report.Restricted) != 2 {
		t.Fatalf("got %d restricted positions, want 2", len(report.Restricted))
	}
	if !report.Restricted[0].CostBasisAdjustment.Equal(dec("100")) ||
		!report.Restricted[1].CostBasisAdjustment.Equal(dec("60")) {
		t.Errorf("adjustments = %s, %s, want 100, 60",
			report.Restricted[0].CostBasisAdjustment, report.Restricted[1].CostBasisAdjustment)
	}
}

func TestTaxSystem_TaxYear_CashFlows(t *testing.T) {
	inYear := date.New(2025, time.June, 15)
	outOfYear := date.New(2024, time.June, 15)
	s := &TaxSystem{
		CashTransactions: []CashTransaction{
			{Type: "Dividends", Date: &inYear, Amount: dec("200")},
			{Type: "Payment In Lieu Of Dividends", Date: &inYear, Amount: dec("25")},
			{Type: "Withholding Tax", Date: &inYear, Amount: dec("-30")},
			{Type: "Broker Interest Received", Date: &inYear, Amount: dec("12")},
			{Type: "Bond Interest Received", Date: &inYear, Amount: dec("8")},
			{Type: "Broker Interest Paid", Date: &inYear, Amount: dec("-5")},
			// no date: applies unconditionally
			{Type: "Dividends", Amount: dec("100")},
			// dated outside the year: excluded
			{Type: "Dividends", Date: &outOfYear, Amount: dec("999")},
			// unknown and near-miss types: ignored
			{Type: "Deposits/Withdrawals", Date: &inYear, Amount: dec("5000")},
			{Type: "dividends", Date: &inYear, Amount: dec("77")},
		},
	}

	cf := s.TaxYear(2025).CashFlow

	if !cf.Dividends.Equal(dec("325")) {
		t.Errorf("Dividends = %s, want 325", cf.Dividends)
	}
	if !cf.Withholding.Equal(dec("-30")) {
		t.Errorf("Withholding = %s, want -30", cf.Withholding)
	}
	if !cf.Interest.Equal(dec("15")) {
		t.Errorf("Interest = %s, want 15", cf.Interest)
	}
	if !cf.NetDividends().Equal(dec("295")) {
		t.Errorf("NetDividends() = %s, want 295", cf.NetDividends())
	}
}

func TestTaxSystem_TaxYear_EmptyInputs(t *testing.T) {
	report := (&TaxSystem{}).TaxYear(2025)
	if report == nil {
		t.Fatal("TaxYear() = nil")
	}
	if len(report.WashSales) != 0 || len(report.Restricted) != 0 {
		t.Errorf("empty system produced events: %+v", report)
	}
	if !report.CapitalGains.TotalNet().IsZero() {
		t.Errorf("TotalNet() = %s, want 0", report.CapitalGains.TotalNet())
	}
}

func TestCapitalGainsSummary_Merge(t *testing.T) {
	a := CapitalGainsSummary{ShortTermGains: dec("10"), LongTermLosses: dec("5"), WashSaleDisallowed: dec("5")}
	b := CapitalGainsSummary{ShortTermGains: dec("2"), ShortTermLosses: dec("3"), LongTermGains: dec("7")}

	a.Merge(b)

	if !a.ShortTermGains.Equal(dec("12")) || !a.ShortTermLosses.Equal(dec("3")) ||
		!a.LongTermGains.Equal(dec("7")) || !a.LongTermLosses.Equal(dec("5")) ||
		!a.WashSaleDisallowed.Equal(dec("5")) {
		t.Errorf("Merge() = %+v", a)
	}
}

func TestActivityIndex_LossSales(t *testing.T) {
	index := ActivityIndex{}
	index.Add("ABC", Activity{Date: date.New(2025, time.March, 1), Pnl: dec("-100")})
	index.Add("ABC", Activity{Date: date.New(2025, time.March, 2), Pnl: dec("50")})
	index.Add("XYZ", Activity{Date: date.New(2025, time.March, 3), Pnl: dec("-1")})

	losses := index.LossSales("ABC")
	if len(losses) != 1 || !losses[0].Pnl.Equal(dec("-100")) {
		t.Errorf("LossSales(ABC) = %v, want the single -100 sale", losses)
	}
	if got := index.LossSales("NONE"); len(got) != 0 {
		t.Errorf("LossSales(NONE) = %v, want none", got)
	}
}

func TestNewTaxSystem(t *testing.T) {
	first := &Statement{
		AccountID: "U1234567",
		FromDate:  date.New(2025, time.January, 1),
		ToDate:    date.New(2025, time.January, 31),
		Trades:    []Trade{{Symbol: "AAA", TradeDate: date.New(2025, time.January, 5)}},
		Positions: []Position{{Symbol: "OLD"}},
	}
	last := &Statement{
		AccountID:        "U1234567",
		FromDate:         date.New(2025, time.February, 1),
		ToDate:           date.New(2025, time.February, 28),
		Trades:           []Trade{{Symbol: "BBB", TradeDate: date.New(2025, time.February, 5)}},
		Positions:        []Position{{Symbol: "NEW"}},
		CashTransactions: []CashTransaction{{Type: "Dividends", Amount: dec("1")}},
	}

	s := NewTaxSystem(first, last)

	if len(s.Trades) != 2 {
		t.Errorf("got %d trades, want 2 (from all statements)", len(s.Trades))
	}
	if len(s.Positions) != 1 || s.Positions[0].Symbol != "NEW" {
		t.Errorf("Positions = %v, want the last statement's", s.Positions)
	}
	if want := date.New(2025, time.February, 28); s.AsOf != want {
		t.Errorf("AsOf = %s, want %s (last statement period end)", s.AsOf, want)
	}
	if len(s.CashTransactions) != 1 {
		t.Errorf("got %d cash transactions, want 1", len(s.CashTransactions))
	}
}
