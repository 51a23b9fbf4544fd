package cigarbutt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// This file contains the tabular (CSV) codecs: the list of symbols to scan in, the cigar butts found out.

// SymbolColumn is the header of the column holding the tickers in the input file.
const SymbolColumn = "Symbol"

// ResultHeader is the header row of the results file, in column order.
var ResultHeader = []string{
	"Ticker",
	"Price",
	"Current Assets",
	"Total Liabilities",
	"Shares Outstanding",
	"NCAV per Share",
	"BUY Signal",
	"Date",
}

// DecodeSymbols reads the Symbol column of a CSV document, in order.
//
// Blank cells are skipped. It is an error if there is no Symbol column.
func DecodeSymbols(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may be ragged, only the Symbol cell matters
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	col := -1
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff") // Excel likes to add a BOM
		if strings.TrimSpace(name) == SymbolColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("missing %q column in header %q", SymbolColumn, strings.Join(header, ","))
	}

	var symbols []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(record) {
			continue
		}
		if s := strings.TrimSpace(record[col]); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols, nil
}

// EncodeResults writes results as a CSV document, header first, one row per result in order.
func EncodeResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Ticker,
			r.Price.StringFixed(2),
			r.CurrentAssets.StringFixed(0),
			r.TotalLiabilities.StringFixed(0),
			r.SharesOutstanding.StringFixed(0),
			r.NCAVPerShare.StringFixed(2),
			r.Signal,
			r.Date.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SymbolSource provides the ordered list of tickers to scan.
type SymbolSource interface {
	Symbols() ([]string, error)
}

// ResultSink receives the results of a scan.
type ResultSink interface {
	WriteResults(results []Result) error
}

// SymbolFile is a SymbolSource reading a CSV file.
type SymbolFile string

// Symbols implements SymbolSource.
func (f SymbolFile) Symbols() ([]string, error) {
	r, err := os.Open(string(f))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	symbols, err := DecodeSymbols(r)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", string(f), err)
	}
	return symbols, nil
}

// ResultFile is a ResultSink writing a CSV file, replacing any previous content.
type ResultFile string

// WriteResults implements ResultSink.
func (f ResultFile) WriteResults(results []Result) (err error) {
	w, err := os.Create(string(f))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if err := EncodeResults(w, results); err != nil {
		return fmt.Errorf("cannot write %q: %w", string(f), err)
	}
	return nil
}

// SymbolList is an in memory SymbolSource.
type SymbolList []string

// Symbols implements SymbolSource.
func (s SymbolList) Symbols() ([]string, error) { return s, nil }
