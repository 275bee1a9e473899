package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"bet-dashboard/internal/model"
)

// DefaultMinEV is the EV threshold applied when the caller does not pick one.
const DefaultMinEV = 10.0

// RangeMode selects how a DateRange compares record dates with its bounds.
type RangeMode string

const (
	// RangeLiteral compares timestamps: a record later in the day than End
	// falls outside the range when End is at midnight.
	RangeLiteral RangeMode = "literal"
	// RangeDay compares calendar days and ignores time of day.
	RangeDay RangeMode = "day"
)

// ParseRangeMode maps a config value onto a RangeMode. Empty means RangeLiteral.
func ParseRangeMode(s string) (RangeMode, error) {
	switch RangeMode(s) {
	case "", RangeLiteral:
		return RangeLiteral, nil
	case RangeDay:
		return RangeDay, nil
	default:
		return "", fmt.Errorf("unknown range mode %q (want %q or %q)", s, RangeLiteral, RangeDay)
	}
}

// DateRange is an inclusive interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
	// Mode defaults to RangeLiteral.
	Mode RangeMode
}

// Contains reports whether t falls within [Start, End] under r.Mode.
func (r DateRange) Contains(t time.Time) bool {
	if r.Mode == RangeDay {
		d := dayNumber(t)
		return d >= dayNumber(r.Start) && d <= dayNumber(r.End)
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) key() string {
	mode := r.Mode
	if mode == "" {
		mode = RangeLiteral
	}
	return r.Start.Format(time.RFC3339Nano) + ".." + r.End.Format(time.RFC3339Nano) + "/" + string(mode)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Criteria selects a subset of records.
type Criteria struct {
	// BetType is matched exactly. Empty matches every type.
	BetType string
	// Range is optional; nil disables the date predicate.
	Range *DateRange
	// MinEV is inclusive.
	MinEV float64
}

// NewCriteria returns criteria for one bet type with the default EV threshold
// and no date range.
func NewCriteria(betType string) Criteria {
	return Criteria{BetType: betType, MinEV: DefaultMinEV}
}

// MatchAll returns criteria that keep every record.
func MatchAll() Criteria {
	return Criteria{MinEV: math.Inf(-1)}
}

// Key is a stable textual form of c, used for cache keys and logs.
func (c Criteria) Key() string {
	rng := "-"
	if c.Range != nil {
		rng = c.Range.key()
	}
	return fmt.Sprintf("type=%q range=%s min_ev=%v", c.BetType, rng, c.MinEV)
}

// Filter applies the bet-type, date-range and EV predicates in that order and
// returns the surviving records in input order. An empty intermediate result
// still flows through the remaining stages.
func Filter(records []model.BetRecord, c Criteria) []model.BetRecord {
	byType := make([]model.BetRecord, 0, len(records))
	for _, r := range records {
		if c.BetType == "" || r.BetType == c.BetType {
			byType = append(byType, r)
		}
	}

	byDate := byType
	if c.Range != nil {
		byDate = make([]model.BetRecord, 0, len(byType))
		for _, r := range byType {
			if c.Range.Contains(r.Date) {
				byDate = append(byDate, r)
			}
		}
	}

	out := make([]model.BetRecord, 0, len(byDate))
	for _, r := range byDate {
		if r.EV >= c.MinEV {
			out = append(out, r)
		}
	}
	return out
}

// SortChronological returns a copy of view ordered by date. Records on the
// same instant keep their relative order.
func SortChronological(view []model.BetRecord, desc bool) []model.BetRecord {
	out := make([]model.BetRecord, len(view))
	copy(out, view)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
