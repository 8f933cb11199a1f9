package fileio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
)

// jsonRecord matches keys case-insensitively through encoding/json
type jsonRecord struct {
	Amount   json.RawMessage `json:"amount"`
	Category *string         `json:"category"`
	Date     *string         `json:"date"`
	Type     *string         `json:"type"`
}

type jsonEnvelope struct {
	Transactions []jsonRecord `json:"transactions"`
}

type jsonOutput struct {
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
	Type     string      `json:"type"`
}

// DecodeJSON reads either a top-level array of transactions or an object
// holding them under "transactions".
func DecodeJSON(r io.Reader) ([]domain.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.Transaction{}, nil
	}

	var records []jsonRecord
	switch data[0] {
	case '[':
		err = json.Unmarshal(data, &records)
	case '{':
		var env jsonEnvelope
		err = json.Unmarshal(data, &env)
		records = env.Transactions
	default:
		return nil, fmt.Errorf("%w: expected array or object", domain.ErrMalformedRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}

	txs := make([]domain.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := rec.transaction()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (r jsonRecord) transaction() (domain.Transaction, error) {
	if r.Category == nil {
		return domain.Transaction{}, fmt.Errorf("%w: missing category", domain.ErrMalformedRecord)
	}
	if r.Date == nil {
		return domain.Transaction{}, fmt.Errorf("%w: missing date", domain.ErrMalformedRecord)
	}
	if r.Type == nil {
		return domain.Transaction{}, fmt.Errorf("%w: missing type", domain.ErrMalformedRecord)
	}

	amount := string(bytes.TrimSpace(r.Amount))
	if amount == "null" {
		amount = ""
	}
	if len(amount) > 0 && amount[0] == '"' {
		unquoted, err := strconv.Unquote(amount)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("%w: invalid amount %s", domain.ErrMalformedRecord, amount)
		}
		amount = unquoted
	}
	return record(amount, *r.Category, *r.Date, *r.Type)
}

// EncodeJSON writes txs as an indented array with numeric amounts
func EncodeJSON(w io.Writer, txs []domain.Transaction) error {
	out := make([]jsonOutput, len(txs))
	for i, tx := range txs {
		out[i] = jsonOutput{
			Amount:   json.Number(tx.Amount.String()),
			Category: tx.Category,
			Date:     tx.Date,
			Type:     string(tx.Type),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
