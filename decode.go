package flextax

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/flextax/date"
	"github.com/shopspring/decimal"
)

const statementFilesGlob = "*.json"

// This file decodes account statements from JSON files. Statements are
// Flex statements already converted to JSON by the upstream tooling:
// either a bare statement object, a bare array of statements, or the
// full query response wrapper
// {"FlexQueryResponse":{"FlexStatements":{"FlexStatement":[...]}}}.
// jsonpath probing keeps the decoder indifferent to the wrapping.

// statementPaths are tried in order to locate the statement list.
var statementPaths = []string{
	"$.FlexQueryResponse.FlexStatements.FlexStatement",
	"$.FlexStatement",
	"$",
}

// jtrade is the object read from the file using json parser.
type jtrade struct {
	Symbol                string          `json:"symbol"`
	Conid                 string          `json:"conid"`
	TradeDate             date.Date       `json:"tradeDate"`
	Quantity              decimal.Decimal `json:"quantity"`
	FifoPnlRealized       decimal.Decimal `json:"fifoPnlRealized"`
	OrigTradeDate         *date.Date      `json:"origTradeDate,omitempty"`
	HoldingPeriodDateTime string          `json:"holdingPeriodDateTime,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
}

type jposition struct {
	Symbol                string          `json:"symbol"`
	Conid                 string          `json:"conid"`
	Quantity              decimal.Decimal `json:"quantity"`
	OpenDateTime          string          `json:"openDateTime,omitempty"`
	HoldingPeriodDateTime string          `json:"holdingPeriodDateTime,omitempty"`
	ReportDate            date.Date       `json:"reportDate"`
}

type jcash struct {
	Type   string          `json:"type"`
	Date   *date.Date      `json:"date,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type jstatement struct {
	AccountID        string      `json:"accountId"`
	FromDate         date.Date   `json:"fromDate"`
	ToDate           date.Date   `json:"toDate"`
	Trades           []jtrade    `json:"trades"`
	Positions        []jposition `json:"positions"`
	CashTransactions []jcash     `json:"cashTransactions"`
}

func (j jstatement) statement() *Statement {
	s := &Statement{
		AccountID: j.AccountID,
		FromDate:  j.FromDate,
		ToDate:    j.ToDate,
	}
	for _, t := range j.Trades {
		s.Trades = append(s.Trades, Trade{
			Symbol:                t.Symbol,
			ConID:                 t.Conid,
			TradeDate:             t.TradeDate,
			Quantity:              Q(t.Quantity),
			FifoPnlRealized:       t.FifoPnlRealized,
			OrigTradeDate:         t.OrigTradeDate,
			HoldingPeriodDateTime: t.HoldingPeriodDateTime,
			Notes:                 t.Notes,
		})
	}
	for _, p := range j.Positions {
		s.Positions = append(s.Positions, Position{
			Symbol:                p.Symbol,
			ConID:                 p.Conid,
			Quantity:              Q(p.Quantity),
			OpenDateTime:          p.OpenDateTime,
			HoldingPeriodDateTime: p.HoldingPeriodDateTime,
			ReportDate:            p.ReportDate,
		})
	}
	for _, c := range j.CashTransactions {
		s.CashTransactions = append(s.CashTransactions, CashTransaction{
			Type:   c.Type,
			Date:   c.Date,
			Amount: c.Amount,
		})
	}
	return s
}

// DecodeStatements decodes every statement contained in one JSON
// document, preserving document order.
func DecodeStatements(r io.Reader) ([]*Statement, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid statement document: %w", err)
	}

	var jval any
	for _, path := range statementPaths {
		v, err := jsonpath.Get(path, jobj)
		if err != nil || v == nil {
			continue
		}
		jval = v
		break
	}
	if jval == nil {
		return nil, fmt.Errorf("no statements found in document")
	}
	// because jsonpath is never clear about wheter it returns a list of
	// answers or a single one, normalize to a list here
	items, ok := jval.([]any)
	if !ok {
		items = []any{jval}
	}

	var statements []*Statement
	for i, item := range items {
		// Round-trip through json to decode the generic item into the
		// typed jstatement.
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("invalid statement #%d: %w", i, err)
		}
		var js jstatement
		if err := json.Unmarshal(raw, &js); err != nil {
			return nil, fmt.Errorf("invalid statement #%d: %w", i, err)
		}
		statements = append(statements, js.statement())
	}
	return statements, nil
}

// DecodeStatementFiles decodes all statement files (*.json) found in a
// directory, in filename order. By convention statement filenames start
// with their period, so filename order is chronological order.
func DecodeStatementFiles(dir string) ([]*Statement, error) {
	files, err := filepath.Glob(filepath.Join(dir, statementFilesGlob))
	if err != nil {
		return nil, fmt.Errorf("invalid statement directory %q: %w", dir, err)
	}
	if len(files) == 0 {
		log.Printf("warning, no statement files found in %q", dir)
	}
	sort.Strings(files)

	var statements []*Statement
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("cannot open statement file %q: %w", file, err)
		}
		decoded, err := DecodeStatements(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot decode statement file %q: %w", file, err)
		}
		statements = append(statements, decoded...)
	}
	return statements, nil
}
