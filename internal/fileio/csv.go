package fileio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"amount", "category", "date", "type"}

// DecodeCSV reads a CSV document whose header names the amount, category,
// date and type columns in any order. The first bad row aborts the decode.
func DecodeCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	index := make([]int, len(csvHeader))
	for i, name := range csvHeader {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrMalformedRecord, name)
		}
		index[i] = col
	}

	txs := []domain.Transaction{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}
		line, _ := reader.FieldPos(0)

		fields := make([]string, len(index))
		for i, col := range index {
			if col >= len(row) {
				return nil, fmt.Errorf("line %d: %w: missing %s", line, domain.ErrMalformedRecord, csvHeader[i])
			}
			fields[i] = row[col]
		}

		tx, err := record(fields[0], fields[1], fields[2], fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// EncodeCSV writes a header row followed by one row per transaction
func EncodeCSV(w io.Writer, txs []domain.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{tx.Amount.String(), tx.Category, tx.Date, string(tx.Type)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is required", domain.ErrMalformedRecord)
	}
	a, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid amount %q", domain.ErrMalformedRecord, s)
	}
	if a.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: negative amount %q", domain.ErrMalformedRecord, s)
	}
	return a, nil
}
