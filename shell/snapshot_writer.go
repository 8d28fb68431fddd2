package shell

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"github.com/paystream/transaction-engine/core"
	"github.com/paystream/transaction-engine/ingest"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// SnapshotWriter encodes account views as tabular output, one row per client:
// client, available, held, total, locked. Amounts carry exactly 4 fractional
// digits. The output order of the snapshot is unspecified by the wire format;
// rows are sorted by client id so runs are diffable.
type SnapshotWriter struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewSnapshotWriter creates a SnapshotWriter on top of w.
func NewSnapshotWriter(w io.Writer) *SnapshotWriter {
	return &SnapshotWriter{csv: csv.NewWriter(w)}
}

// WriteAll writes every view sorted by client id and flushes.
func (sw *SnapshotWriter) WriteAll(views map[core.ClientID]ingest.AccountView) error {
	clients := make([]core.ClientID, 0, len(views))
	for client := range views {
		clients = append(clients, client)
	}
	slices.Sort(clients)

	for _, client := range clients {
		if err := sw.Write(views[client]); err != nil {
			return err
		}
	}

	return sw.Flush()
}

// Write appends one account view row, emitting the header first when needed.
func (sw *SnapshotWriter) Write(view ingest.AccountView) error {
	if !sw.wroteHeader {
		if err := sw.csv.Write(snapshotHeader); err != nil {
			return err
		}
		sw.wroteHeader = true
	}

	record := []string{
		strconv.FormatUint(uint64(view.Client), 10),
		view.Available.StringFixed(4),
		view.Held.StringFixed(4),
		view.Total.StringFixed(4),
		strconv.FormatBool(view.Locked),
	}

	return sw.csv.Write(record)
}

// Flush writes buffered rows through to the underlying writer.
func (sw *SnapshotWriter) Flush() error {
	sw.csv.Flush()

	return sw.csv.Error()
}
