package data

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"bet-dashboard/internal/model"
)

// Layouts that carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// Layouts read in the configured location.
var naiveLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseDate parses the ISO-like date strings found in the picks file.
// Values without an offset are interpreted in loc (UTC when loc is nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// NormalizeRecords converts raw rows into typed records, preserving order.
func NormalizeRecords(raws []model.RawRecord, loc *time.Location) ([]model.BetRecord, error) {
	out := make([]model.BetRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := normalizeRecord(i, raw, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalizeRecord(idx int, raw model.RawRecord, loc *time.Location) (model.BetRecord, error) {
	date, err := ParseDate(raw.Date, loc)
	if err != nil {
		return model.BetRecord{}, &MalformedRecordError{Index: idx, Field: "data", Value: raw.Date, Err: err}
	}
	if !(raw.Odd > 0) || math.IsInf(raw.Odd, 1) {
		return model.BetRecord{}, &MalformedRecordError{
			Index: idx,
			Field: "odd",
			Value: strconv.FormatFloat(raw.Odd, 'f', -1, 64),
			Err:   errors.New("odd must be a finite number > 0"),
		}
	}
	if math.IsNaN(raw.EV) || math.IsInf(raw.EV, 0) {
		return model.BetRecord{}, &MalformedRecordError{
			Index: idx,
			Field: "ev",
			Value: strconv.FormatFloat(raw.EV, 'f', -1, 64),
			Err:   errors.New("ev must be a finite number"),
		}
	}
	return model.BetRecord{
		Date:          date,
		BetType:       raw.BetType,
		Match:         raw.Match,
		ScheduledTime: raw.ScheduledTime,
		Side:          raw.Side,
		Odd:           raw.Odd,
		EV:            raw.EV,
		Result:        raw.Result,
	}, nil
}

// BetTypes returns the distinct bet types present in records, sorted.
func BetTypes(records []model.BetRecord) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if _, ok := seen[r.BetType]; ok {
			continue
		}
		seen[r.BetType] = struct{}{}
		out = append(out, r.BetType)
	}
	sort.Strings(out)
	return out
}

// GroupByType splits records into bet-type keyed slices, keeping input order.
func GroupByType(records []model.BetRecord) map[string][]model.BetRecord {
	out := map[string][]model.BetRecord{}
	for _, r := range records {
		out[r.BetType] = append(out[r.BetType], r)
	}
	return out
}
