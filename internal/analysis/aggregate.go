package analysis

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"strings"
	"time"

	"bet-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// FixedStake is the notional amount every pick is assumed to carry.
const FixedStake = 100.0

// ProfitModel selects how realized profit is computed.
type ProfitModel string

const (
	// ProfitLiteral credits odd*stake - stake for wins and nothing otherwise.
	ProfitLiteral ProfitModel = "literal"
	// ProfitNet additionally debits the stake for records settled as a loss.
	ProfitNet ProfitModel = "net"
)

// ParseProfitModel accepts "literal" or "net". Empty means literal.
func ParseProfitModel(s string) (ProfitModel, error) {
	switch ProfitModel(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProfitLiteral:
		return ProfitLiteral, nil
	case ProfitNet:
		return ProfitNet, nil
	default:
		return "", fmt.Errorf("unknown profit model %q (want literal or net)", s)
	}
}

// Options tunes Aggregate.
type Options struct {
	FixedStake  float64
	WonLabel    string
	LossLabels  []string
	ProfitModel ProfitModel
}

// DefaultOptions returns the dashboard's stock settings.
func DefaultOptions() Options {
	return Options{
		FixedStake:  FixedStake,
		WonLabel:    model.ResultWon,
		LossLabels:  []string{"Perda"},
		ProfitModel: ProfitLiteral,
	}
}

// Validate checks that opts can produce a report.
func (o Options) Validate() error {
	if !(o.FixedStake > 0) {
		return fmt.Errorf("fixed stake must be > 0 (got %v)", o.FixedStake)
	}
	if o.WonLabel == "" {
		return fmt.Errorf("won label must not be empty")
	}
	if _, err := ParseProfitModel(string(o.ProfitModel)); err != nil {
		return err
	}
	return nil
}

func (o Options) key() string {
	return fmt.Sprintf("stake=%v won=%q loss=%q model=%s",
		o.FixedStake, o.WonLabel, strings.Join(o.LossLabels, ","), o.ProfitModel)
}

// OutcomeCount is one entry of the result tally.
type OutcomeCount struct {
	Result string
	Count  int
}

// DayEV is the mean EV of the picks on one calendar day.
type DayEV struct {
	Day    time.Time
	MeanEV float64
}

// Report summarizes a filtered view.
type Report struct {
	Count int
	// MeanOdd and MeanEV are NaN for an empty view.
	MeanOdd      float64
	MeanEV       float64
	DistinctDays int
	Wins         int

	Profit  decimal.Decimal
	ROI     float64
	HitRate float64

	// Outcomes is sorted by count descending, then label ascending.
	Outcomes []OutcomeCount
	// DailyEV is sorted by day ascending.
	DailyEV []DayEV

	ProfitModel ProfitModel
	FixedStake  float64
}

// Aggregate computes the report for view. An empty view yields Count 0,
// ROI 0 and HitRate 0 with NaN means.
func Aggregate(view []model.BetRecord, opts Options) Report {
	if opts.WonLabel == "" {
		opts.WonLabel = model.ResultWon
	}
	if opts.ProfitModel == "" {
		opts.ProfitModel = ProfitLiteral
	}
	rep := Report{
		Count:       len(view),
		MeanOdd:     math.NaN(),
		MeanEV:      math.NaN(),
		Profit:      decimal.Zero,
		Outcomes:    Tally(view),
		DailyEV:     DailyEV(view),
		ProfitModel: opts.ProfitModel,
		FixedStake:  opts.FixedStake,
	}
	if len(view) == 0 {
		return rep
	}

	losses := make(map[string]struct{}, len(opts.LossLabels))
	for _, l := range opts.LossLabels {
		losses[l] = struct{}{}
	}

	stake := decimal.NewFromFloat(opts.FixedStake)
	days := make(map[int]struct{})
	var sumOdd, sumEV float64
	for _, r := range view {
		sumOdd += r.Odd
		sumEV += r.EV
		days[dayNumber(r.Date)] = struct{}{}

		switch {
		case r.Result == opts.WonLabel:
			rep.Wins++
			rep.Profit = rep.Profit.Add(decimal.NewFromFloat(r.Odd).Mul(stake).Sub(stake))
		case opts.ProfitModel == ProfitNet:
			if _, ok := losses[r.Result]; ok {
				rep.Profit = rep.Profit.Sub(stake)
			}
		}
	}

	n := float64(len(view))
	rep.MeanOdd = sumOdd / n
	rep.MeanEV = sumEV / n
	rep.DistinctDays = len(days)
	rep.HitRate = float64(rep.Wins) / n * 100

	invested := decimal.NewFromInt(int64(len(view))).Mul(stake)
	if invested.IsPositive() {
		rep.ROI = rep.Profit.Div(invested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return rep
}

// Tally counts records per result label.
func Tally(view []model.BetRecord) []OutcomeCount {
	counts := map[string]int{}
	for _, r := range view {
		counts[r.Result]++
	}
	out := make([]OutcomeCount, 0, len(counts))
	for result, n := range counts {
		out = append(out, OutcomeCount{Result: result, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Result < out[j].Result
	})
	return out
}

// DailyEV groups view by calendar day and averages EV per day.
func DailyEV(view []model.BetRecord) []DayEV {
	type acc struct {
		day time.Time
		sum float64
		n   int
	}
	byDay := map[int]*acc{}
	for _, r := range view {
		k := dayNumber(r.Date)
		a, ok := byDay[k]
		if !ok {
			a = &acc{day: r.Day()}
			byDay[k] = a
		}
		a.sum += r.EV
		a.n++
	}

	keys := make([]int, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]DayEV, 0, len(keys))
	for _, k := range keys {
		a := byDay[k]
		out = append(out, DayEV{Day: a.day, MeanEV: a.sum / float64(a.n)})
	}
	return out
}

// DailyEVSeq yields the daily EV series in ascending day order. The sequence
// can be ranged over any number of times.
func (r Report) DailyEVSeq() iter.Seq2[time.Time, float64] {
	return func(yield func(time.Time, float64) bool) {
		for _, p := range r.DailyEV {
			if !yield(p.Day, p.MeanEV) {
				return
			}
		}
	}
}
