package analysis

import (
	"testing"
	"time"

	"bet-dashboard/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, betType string, odd, ev float64, result string) model.BetRecord {
	return model.BetRecord{
		Date:    date,
		BetType: betType,
		Match:   "Casa x Fora",
		Side:    betType,
		Odd:     odd,
		EV:      ev,
		Result:  result,
	}
}

func sample() []model.BetRecord {
	return []model.BetRecord{
		rec(day(2024, 1, 1), "Over", 2.0, 15, "Ganho"),
		rec(day(2024, 1, 1), "BTTS", 1.8, 5, "Perda"),
		rec(day(2024, 1, 2), "Over", 1.5, 10, "Perda"),
		rec(day(2024, 1, 3), "Over", 3.0, 25, "Ganho"),
		rec(day(2024, 1, 4), "BTTS", 2.2, 12, "Anulada"),
	}
}

func TestFilter_MatchAllKeepsEverything(t *testing.T) {
	in := sample()
	got := Filter(in, MatchAll())
	if len(got) != len(in) {
		t.Fatalf("len = %d, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("record %d reordered or changed", i)
		}
	}
}

func TestFilter(t *testing.T) {
	rng := func(a, b time.Time) *DateRange { return &DateRange{Start: a, End: b} }

	tests := []struct {
		name     string
		criteria Criteria
		wantEVs  []float64
	}{
		{"type with default threshold", NewCriteria("Over"), []float64{15, 10, 25}},
		{"threshold inclusive", Criteria{BetType: "Over", MinEV: 10}, []float64{15, 10, 25}},
		{"threshold excludes below", Criteria{BetType: "Over", MinEV: 10.5}, []float64{15, 25}},
		{"range inclusive at both bounds", Criteria{BetType: "Over", MinEV: 0, Range: rng(day(2024, 1, 1), day(2024, 1, 3))}, []float64{15, 10, 25}},
		{"range excludes day after end", Criteria{BetType: "Over", MinEV: 0, Range: rng(day(2024, 1, 1), day(2024, 1, 2))}, []float64{15, 10}},
		{"range excludes day before start", Criteria{BetType: "Over", MinEV: 0, Range: rng(day(2024, 1, 2), day(2024, 1, 3))}, []float64{10, 25}},
		{"unknown type", NewCriteria("Handicap"), []float64{}},
		{"empty type matches all", Criteria{MinEV: 12}, []float64{15, 25, 12}},
		{"type is case sensitive", NewCriteria("over"), []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sample(), tt.criteria)
			if len(got) != len(tt.wantEVs) {
				t.Fatalf("Filter(%s) returned %d records, want %d", tt.criteria.Key(), len(got), len(tt.wantEVs))
			}
			for i, r := range got {
				if r.EV != tt.wantEVs[i] {
					t.Errorf("record %d ev = %v, want %v", i, r.EV, tt.wantEVs[i])
				}
			}
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	start := day(2024, 1, 1)
	end := day(2024, 1, 3)
	tests := []struct {
		name string
		mode RangeMode
		at   time.Time
		want bool
	}{
		{"literal start bound", RangeLiteral, day(2024, 1, 1), true},
		{"literal end bound", RangeLiteral, day(2024, 1, 3), true},
		{"literal evening of end day", RangeLiteral, time.Date(2024, 1, 3, 21, 30, 0, 0, time.UTC), false},
		{"literal day before start", RangeLiteral, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"zero mode is literal", "", time.Date(2024, 1, 3, 0, 0, 1, 0, time.UTC), false},
		{"day start bound", RangeDay, day(2024, 1, 1), true},
		{"day evening of end day", RangeDay, time.Date(2024, 1, 3, 21, 30, 0, 0, time.UTC), true},
		{"day before start", RangeDay, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"day after end", RangeDay, day(2024, 1, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DateRange{Start: start, End: end, Mode: tt.mode}
			if got := r.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDateRange_DayModeIgnoresBoundTime(t *testing.T) {
	r := DateRange{
		Start: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		End:   day(2024, 1, 3),
		Mode:  RangeDay,
	}
	if !r.Contains(day(2024, 1, 1)) {
		t.Error("day mode should include the start day at midnight")
	}
}

func TestFilter_LiteralRangeDropsLateRecordsOnEndDay(t *testing.T) {
	records := []model.BetRecord{
		rec(day(2024, 1, 3), "Over", 2.0, 15, "Ganho"),
		rec(time.Date(2024, 1, 3, 21, 30, 0, 0, time.UTC), "Over", 1.9, 15, "Perda"),
	}
	c := Criteria{BetType: "Over", MinEV: 10, Range: &DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 3)}}
	if got := Filter(records, c); len(got) != 1 || got[0].Odd != 2.0 {
		t.Errorf("literal range kept %+v", got)
	}
	c.Range.Mode = RangeDay
	if got := Filter(records, c); len(got) != 2 {
		t.Errorf("day range kept %d records, want 2", len(got))
	}
}

func TestParseRangeMode(t *testing.T) {
	for in, want := range map[string]RangeMode{"": RangeLiteral, "literal": RangeLiteral, "day": RangeDay} {
		got, err := ParseRangeMode(in)
		if err != nil || got != want {
			t.Errorf("ParseRangeMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseRangeMode("week"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestCriteriaKey(t *testing.T) {
	a := Criteria{BetType: "Over", MinEV: 10, Range: &DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 2)}}
	b := a
	b.Range = nil
	if a.Key() == b.Key() {
		t.Error("range must be part of the key")
	}
	d := a
	d.Range = &DateRange{Start: a.Range.Start, End: a.Range.End, Mode: RangeDay}
	if a.Key() == d.Key() {
		t.Error("range mode must be part of the key")
	}
	if NewCriteria("Over").Key() != NewCriteria("Over").Key() {
		t.Error("key is not deterministic")
	}
}

func TestSortChronological(t *testing.T) {
	in := []model.BetRecord{
		rec(day(2024, 1, 2), "A", 2, 10, ""),
		rec(day(2024, 1, 1), "B", 2, 10, ""),
		rec(day(2024, 1, 2), "C", 2, 10, ""),
	}

	asc := SortChronological(in, false)
	if asc[0].BetType != "B" || asc[1].BetType != "A" || asc[2].BetType != "C" {
		t.Errorf("ascending order = %s %s %s", asc[0].BetType, asc[1].BetType, asc[2].BetType)
	}
	desc := SortChronological(in, true)
	if desc[0].BetType != "A" || desc[1].BetType != "C" || desc[2].BetType != "B" {
		t.Errorf("descending order = %s %s %s", desc[0].BetType, desc[1].BetType, desc[2].BetType)
	}
	if in[0].BetType != "A" {
		t.Error("input was mutated")
	}
}
