package daily

import (
	"errors"
	"fmt"
	"math"
	"time"

	"bet-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Simulator defaults mirror the stake input on the dashboard.
const (
	DefaultStake = 100.0
	MinStake     = 1.0
	StakeStep    = 10.0
)

// ErrInvalidStake is returned when a simulated stake is not a finite amount > 0.
var ErrInvalidStake = errors.New("stake must be > 0")

// ErrInvalidOdd is returned when an odd is not a finite value > 0.
var ErrInvalidOdd = errors.New("odd must be > 0")

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// TodaysPicks returns every record whose calendar day equals target's, in input order.
func TodaysPicks(records []model.BetRecord, target time.Time) []model.BetRecord {
	out := []model.BetRecord{}
	for _, r := range records {
		if model.SameDay(r.Date, target) {
			out = append(out, r)
		}
	}
	return out
}

// SelectForDate returns the featured pick for target's calendar day.
// When several records share the day, the first one in input order wins.
func SelectForDate(records []model.BetRecord, target time.Time) (model.BetRecord, bool) {
	for _, r := range records {
		if model.SameDay(r.Date, target) {
			return r, true
		}
	}
	return model.BetRecord{}, false
}

// Simulation is the outcome of staking an amount on a single pick.
// Values are exact; presentation decides the rounding.
type Simulation struct {
	Stake       decimal.Decimal
	Odd         decimal.Decimal
	GrossReturn decimal.Decimal
	Profit      decimal.Decimal
}

// Simulate computes the gross return and profit of staking stake on record.
func Simulate(record model.BetRecord, stake float64) (Simulation, error) {
	return SimulateOdd(record.Odd, stake)
}

// SimulateOdd is Simulate for a bare decimal odd.
func SimulateOdd(odd, stake float64) (Simulation, error) {
	if !positiveFinite(stake) {
		return Simulation{}, fmt.Errorf("%w (got %v)", ErrInvalidStake, stake)
	}
	if !positiveFinite(odd) {
		return Simulation{}, fmt.Errorf("%w (got %v)", ErrInvalidOdd, odd)
	}
	s := decimal.NewFromFloat(stake)
	o := decimal.NewFromFloat(odd)
	gross := s.Mul(o)
	return Simulation{
		Stake:       s,
		Odd:         o,
		GrossReturn: gross,
		Profit:      gross.Sub(s),
	}, nil
}
