// Package renderer formats tax reports as markdown. It is a thin
// presentation layer: every figure comes computed from the flextax
// package, nothing is derived here.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/flextax"
	"github.com/shopspring/decimal"
)

// TaxReportMarkdown renders the complete tax report: capital gains,
// wash sales, restricted positions, and dividends & interest.
func TaxReportMarkdown(r *flextax.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Analysis Report %d\n\n", r.Year)
	fmt.Fprintf(&b, "Period: %s to %s, as of %s\n\n", r.Range.From, r.Range.To, r.AsOf)

	b.WriteString(CapitalGainsMarkdown(r))
	b.WriteString(WashSalesMarkdown(r))
	b.WriteString(RestrictedMarkdown(r))
	b.WriteString(CashFlowMarkdown(r))

	return b.String()
}

// money formats a signed amount in the report currency.
func money(v decimal.Decimal, currency string) string {
	return flextax.M(v, currency).SignedString()
}

// CapitalGainsMarkdown renders the short/long-term gain and loss
// buckets with their on-demand net figures.
func CapitalGainsMarkdown(r *flextax.TaxReport) string {
	var b strings.Builder
	cg := r.CapitalGains

	fmt.Fprint(&b, "## Capital Gains Summary\n\n")
	fmt.Fprintln(&b, "| | Gains | Losses | Net |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	fmt.Fprintf(&b, "| Short-Term (held <= 1 year) | %s | %s | %s |\n",
		money(cg.ShortTermGains, r.Currency),
		money(cg.ShortTermLosses, r.Currency),
		money(cg.NetShortTerm(), r.Currency),
	)
	fmt.Fprintf(&b, "| Long-Term (held > 1 year) | %s | %s | %s |\n",
		money(cg.LongTermGains, r.Currency),
		money(cg.LongTermLosses, r.Currency),
		money(cg.NetLongTerm(), r.Currency),
	)
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n\n", money(cg.TotalNet(), r.Currency))

	return b.String()
}

// WashSalesMarkdown renders the wash sale events in trade order.
func WashSalesMarkdown(r *flextax.TaxReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Wash Sales\n\n")
	if len(r.WashSales) == 0 {
		fmt.Fprint(&b, "No wash sales detected in the trading activity.\n\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Sell Date | Loss | Disallowed |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, ws := range r.WashSales {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			ws.Symbol, ws.SellDate,
			money(ws.Loss, r.Currency),
			money(ws.Disallowed, r.Currency),
		)
	}
	fmt.Fprintf(&b, "\nTotal wash sale loss disallowed: %s\n\n",
		money(r.CapitalGains.WashSaleDisallowed, r.Currency))
	fmt.Fprint(&b, "Disallowed losses are added to the cost basis of the replacement\n")
	fmt.Fprint(&b, "shares and will be recognized when those shares are sold.\n\n")

	return b.String()
}

// RestrictedMarkdown renders the positions still inside a wash sale
// window, one row per contributing loss sale.
func RestrictedMarkdown(r *flextax.TaxReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Positions Under Wash Sale Restriction\n\n")
	if len(r.Restricted) == 0 {
		fmt.Fprint(&b, "No positions currently under wash sale restriction.\n\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Acquired | Restriction Ends | Basis Adjustment |")
	fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|")
	for _, rp := range r.Restricted {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			rp.Symbol, rp.Quantity,
			rp.AcquisitionDate, rp.RestrictionEnds,
			money(rp.CostBasisAdjustment, r.Currency),
		)
	}
	fmt.Fprint(&b, "\nThe disallowed loss is added to the cost basis of these shares.\n\n")

	return b.String()
}

// CashFlowMarkdown renders the dividend, withholding and interest
// totals. Withholding is displayed as a magnitude.
func CashFlowMarkdown(r *flextax.TaxReport) string {
	var b strings.Builder
	cf := r.CashFlow

	fmt.Fprint(&b, "## Dividends & Interest\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Dividends Received | %s |\n", money(cf.Dividends, r.Currency))
	fmt.Fprintf(&b, "| Withholding Tax Paid | %s |\n", money(cf.Withholding.Abs(), r.Currency))
	fmt.Fprintf(&b, "| Net Dividends | %s |\n", money(cf.NetDividends(), r.Currency))
	fmt.Fprintf(&b, "| Interest (net) | %s |\n\n", money(cf.Interest, r.Currency))

	return b.String()
}
