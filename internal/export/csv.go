package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"bet-dashboard/internal/model"
)

// DefaultPath is the export file name used when none is configured.
const DefaultPath = "apostas_filtradas.csv"

// Header matches the source field names.
var Header = []string{"data", "tipo", "jogo", "horario", "lado", "odd", "ev", "resultado"}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// WriteRecordsCSV writes view to path, replacing any existing file.
func WriteRecordsCSV(path string, view []model.BetRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteRecords(f, view); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

// WriteRecords writes the header and one row per record, in view order.
func WriteRecords(out io.Writer, view []model.BetRecord) error {
	w := csv.NewWriter(out)

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	layout := dateLayout
	if !allMidnight(view) {
		layout = dateTimeLayout
	}
	for i, r := range view {
		row := []string{
			r.Date.Format(layout),
			r.BetType,
			r.Match,
			r.ScheduledTime,
			r.Side,
			fmtFloat(r.Odd),
			fmtFloat(r.EV),
			r.Result,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	return w.Error()
}

func allMidnight(view []model.BetRecord) bool {
	for _, r := range view {
		h, m, s := r.Date.Clock()
		if h != 0 || m != 0 || s != 0 || r.Date.Nanosecond() != 0 {
			return false
		}
	}
	return true
}

// fmtFloat renders whole numbers with a trailing ".0" and NaN as empty.
func fmtFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return ""
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
