// Package fileio reads and writes transaction lists as CSV or JSON documents.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat accepts "csv" or "json" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, s)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, path)
	}
	return f, nil
}

// Decode reads a transaction list in the given format
func Decode(r io.Reader, f Format) ([]domain.Transaction, error) {
	switch f {
	case FormatCSV:
		return DecodeCSV(r)
	case FormatJSON:
		return DecodeJSON(r)
	}
	return nil, domain.ErrUnsupportedFileType
}

// Encode writes txs in the given format
func Encode(w io.Writer, f Format, txs []domain.Transaction) error {
	switch f {
	case FormatCSV:
		return EncodeCSV(w, txs)
	case FormatJSON:
		return EncodeJSON(w, txs)
	}
	return domain.ErrUnsupportedFileType
}

// Import reads the file at path, choosing the decoder by extension
func Import(path string) ([]domain.Transaction, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file, f)
}

// Export writes txs to path, choosing the encoder by extension.
// An existing file is truncated.
func Export(path string, txs []domain.Transaction) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(file, f, txs); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// record validates raw field values into a transaction.
// Every failure is reported as domain.ErrMalformedRecord.
func record(amount, category, date, txType string) (domain.Transaction, error) {
	a, err := parseAmount(amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if strings.TrimSpace(date) == "" {
		return domain.Transaction{}, fmt.Errorf("%w: date is required", domain.ErrMalformedRecord)
	}
	t, err := domain.ParseTransactionType(txType)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: unknown type %q", domain.ErrMalformedRecord, txType)
	}

	tx := domain.Transaction{
		Amount:   a,
		Category: strings.TrimSpace(category),
		Date:     strings.TrimSpace(date),
		Type:     t,
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}
	if _, err := tx.ParsedDate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}
	return tx, nil
}
