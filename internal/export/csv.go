// Package export writes the CSV backup of a user's books.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"savings_ledger/internal/domain"
	"savings_ledger/internal/ledger"
)

// TimeLayout is the layout of the Tanggal column.
const TimeLayout = "2006-01-02 15:04"

// MainSource is the Sumber value of main account rows.
const MainSource = "utama"

// Header is the first CSV record.
var Header = []string{"Tanggal", "Tipe", "Jumlah", "Catatan", "Sumber"}

// kindLabels are the Tipe values of the backup format.
var kindLabels = map[domain.TxKind]string{
	domain.KindDeposit:    "nabung",
	domain.KindWithdrawal: "keluar",
}

// GoalSource is the Sumber value of rows belonging to the named goal.
func GoalSource(name string) string { return "target:" + name }

// Filename is the download name of a user's backup.
func Filename(username string) string { return username + "_backup.csv" }

// WriteCSV writes every main transaction in log order followed by each
// goal's transactions, grouped by goal in registry order. Records end in
// CRLF. Notes with a leading space are quoted; readers get them back
// verbatim.
func WriteCSV(w io.Writer, book *ledger.Book) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := writeRows(cw, book.Main().Transactions(), MainSource); err != nil {
		return err
	}
	for _, g := range book.Goals().List() {
		if err := writeRows(cw, g.Transactions(), GoalSource(g.Name())); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, txs []domain.Transaction, source string) error {
	for _, tx := range txs {
		rec := []string{
			tx.Timestamp.Format(TimeLayout),
			kindLabels[tx.Kind],
			strconv.FormatInt(tx.Amount, 10),
			tx.Note,
			source,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s row: %w", source, err)
		}
	}
	return nil
}
