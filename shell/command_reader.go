package shell

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paystream/transaction-engine/core"
)

var (
	// ErrMissingHeader is returned when the command stream has no header row.
	ErrMissingHeader = errors.New("command stream has no header row")

	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("command stream header is missing a required column")

	// ErrMalformedRecord is returned for a row that cannot be decoded into a
	// command. Callers may skip the row and keep reading.
	ErrMalformedRecord = errors.New("malformed command record")
)

// CommandReader decodes the tabular wire format into commands, one record per
// transaction with header-named columns: type, client, tx, amount. Inputs of
// this format are routinely space-padded, so fields are trimmed. An empty
// amount cell means absent.
//
// Malformed rows never reach the aggregate; they fail here with
// ErrMalformedRecord.
type CommandReader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewCommandReader wraps the reader and consumes the header row.
func NewCommandReader(r io.Reader) (*CommandReader, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1 // the amount cell is optional for dispute/resolve/chargeback rows

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}

	for _, required := range []string{"type", "client", "tx"} {
		if _, found := columns[required]; !found {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	return &CommandReader{csv: csvReader, columns: columns}, nil
}

// Read returns the next command from the stream, or io.EOF when the stream
// is exhausted. Row-level decoding failures wrap ErrMalformedRecord.
func (cr *CommandReader) Read() (core.Command, error) {
	record, err := cr.csv.Read()
	if errors.Is(err, io.EOF) {
		return core.Command{}, io.EOF
	}
	if err != nil {
		return core.Command{}, errors.Join(ErrMalformedRecord, err)
	}

	return cr.commandFromRecord(record)
}

func (cr *CommandReader) commandFromRecord(record []string) (core.Command, error) {
	name := cr.field(record, "type")
	switch name {
	case core.DepositCommandType,
		core.WithdrawCommandType,
		core.DisputeCommandType,
		core.ResolveCommandType,
		core.ChargebackCommandType:
		// known lower-case token
	default:
		return core.Command{}, fmt.Errorf("%w: unknown type %q", ErrMalformedRecord, name)
	}

	client, err := strconv.ParseUint(cr.field(record, "client"), 10, 16)
	if err != nil {
		return core.Command{}, fmt.Errorf("%w: client: %v", ErrMalformedRecord, err)
	}

	tx, err := strconv.ParseUint(cr.field(record, "tx"), 10, 32)
	if err != nil {
		return core.Command{}, fmt.Errorf("%w: tx: %v", ErrMalformedRecord, err)
	}

	command := core.Command{
		Type:   name,
		Client: core.ClientID(client),
		Tx:     core.TransactionID(tx),
	}

	if amountText := cr.field(record, "amount"); amountText != "" {
		amount, parseErr := core.MoneyFromString(amountText)
		if parseErr != nil {
			return core.Command{}, fmt.Errorf("%w: amount: %v", ErrMalformedRecord, parseErr)
		}
		command.Amount = &amount
	}

	return command, nil
}

// field returns the trimmed cell for the named column, or "" when the column
// is absent from the header or the row is short.
func (cr *CommandReader) field(record []string, column string) string {
	idx, found := cr.columns[column]
	if !found || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
