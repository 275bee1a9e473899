package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bet-dashboard/internal/model"
)

// ToRawRecords converts records back to the file shape. Dates at midnight are
// written as YYYY-MM-DD, others with their time of day down to the nanosecond.
func ToRawRecords(records []model.BetRecord) []model.RawRecord {
	out := make([]model.RawRecord, len(records))
	for i, r := range records {
		layout := "2006-01-02 15:04:05.999999999"
		if r.Date.Equal(r.Day()) {
			layout = "2006-01-02"
		}
		out[i] = model.RawRecord{
			Date:          r.Date.Format(layout),
			BetType:       r.BetType,
			Match:         r.Match,
			ScheduledTime: r.ScheduledTime,
			Side:          r.Side,
			Odd:           r.Odd,
			EV:            r.EV,
			Result:        r.Result,
		}
	}
	return out
}

// SaveRecordsJSON writes records as an array-of-objects picks file.
func SaveRecordsJSON(records []model.BetRecord, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(ToRawRecords(records), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	return nil
}
