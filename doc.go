// Package flextax classifies a brokerage account's activity for tax
// reporting. It consumes already-validated trade, position, and cash
// transaction records for an account and, for a requested tax year,
// derives:
//   - Capital Gains: realized P&L split into short-term and long-term
//     gain and loss buckets, with net figures computed on demand.
//   - Wash Sales: loss sales the broker flagged as wash sales, with the
//     disallowed loss accumulated alongside the normal buckets.
//   - Restricted Positions: open positions acquired within 30 days of a
//     same-symbol loss sale, whose cost-basis restriction has not yet
//     lapsed at the as-of date.
//   - Cash Flows: dividend, withholding-tax, and interest totals.
//
// The engine is a pure function of its inputs: it performs no I/O,
// keeps no state across invocations, and never fails on well-typed
// input: every ambiguous record (a missing reference date, an
// unparsable timestamp fragment) resolves to a documented conservative
// default instead of an error.
//
// Statement decoding (pre-converted Flex statements in JSON form) and
// markdown rendering live at the edges of the package tree; this
// package serves as the foundational logic for the `ftax` command-line
// tool.
package flextax
