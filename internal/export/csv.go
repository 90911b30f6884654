// Package export flattens the savings ledger and the expense
// collection into a tabular CSV dump, and parses the same shape back.
// The format is Excel-friendly: UTF-8 with a byte-order marker, comma
// separated, header row first.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

const bom = "\uFEFF"

const savingDetails = "Daily Saving"

var header = []string{"TYPE", "DATE", "AMOUNT", "DETAILS", "CATEGORY", "METHOD"}

// Write dumps one SAVING row per ledger entry and one EXPENSE row per
// record. Savings are sorted by date key; expenses keep insertion
// order.
func Write(w io.Writer, savings map[core.DateKey]float64, expenses []core.Expense) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	keys := make([]core.DateKey, 0, len(savings))
	for k := range savings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		row := []string{"SAVING", string(k), formatAmount(savings[k]), savingDetails, "", ""}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write saving row: %w", err)
		}
	}

	for _, e := range expenses {
		row := []string{"EXPENSE", string(e.Date), formatAmount(e.Amount), e.Title, string(e.Category), string(e.Method)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expense row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses a dump produced by Write back into a savings map and an
// expense slice. Record IDs are not part of the format, so imported
// expenses get fresh ones. Unknown row types are skipped.
func Read(r io.Reader) (map[core.DateKey]float64, []core.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	savings := map[core.DateKey]float64{}
	var expenses []core.Expense

	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		if first {
			first = false
			// Header row, possibly BOM-prefixed.
			continue
		}
		if len(row) < 3 {
			continue
		}

		kind := strings.TrimPrefix(row[0], bom)
		amount, err := strconv.ParseFloat(row[2], 64)
		if err != nil || !core.ValidAmount(amount) {
			continue
		}

		switch kind {
		case "SAVING":
			savings[core.DateKey(row[1])] = amount
		case "EXPENSE":
			e := core.Expense{
				ID:     uuid.NewString(),
				Date:   core.DateKey(row[1]),
				Amount: amount,
				Title:  core.DefaultTitle,
			}
			if len(row) > 3 && row[3] != "" {
				e.Title = row[3]
			}
			if len(row) > 4 {
				e.Category = core.Category(row[4])
			}
			if len(row) > 5 {
				e.Method = core.Method(row[5])
			}
			expenses = append(expenses, e)
		}
	}

	return savings, expenses, nil
}

// FileName returns the conventional export name for a given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("Bear365_Data_%s.csv", core.NewDateKey(now))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
