package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/daily"
	"bet-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q must be in YYYY-MM-DD format", s)
	}
	return t, nil
}

// FilterLimits bounds the user-selectable EV threshold and fixes how date
// ranges compare.
type FilterLimits struct {
	DefaultMinEV int
	MaxMinEV     int
	RangeMode    analysis.RangeMode
}

// buildCriteria validates query parameters into filter criteria. It writes a
// 400 response and returns false on invalid input.
func buildCriteria(c *gin.Context, betType, start, end string, minEV *int, limits FilterLimits, loc *time.Location) (analysis.Criteria, models.CriteriaInfo, bool) {
	ev := limits.DefaultMinEV
	if minEV != nil {
		ev = *minEV
	}
	if ev < 0 || ev > limits.MaxMinEV {
		badRequest(c, "INVALID_MIN_EV", fmt.Sprintf("min_ev must be between 0 and %d", limits.MaxMinEV))
		return analysis.Criteria{}, models.CriteriaInfo{}, false
	}

	criteria := analysis.Criteria{BetType: betType, MinEV: float64(ev)}
	info := models.CriteriaInfo{BetType: betType, MinEV: ev}

	if (start == "") != (end == "") {
		badRequest(c, "INVALID_DATE_RANGE", "start_date and end_date must be given together")
		return analysis.Criteria{}, models.CriteriaInfo{}, false
	}
	if start != "" {
		s, err := parseDay(start, loc)
		if err != nil {
			badRequest(c, "INVALID_DATE", "start_date "+err.Error())
			return analysis.Criteria{}, models.CriteriaInfo{}, false
		}
		e, err := parseDay(end, loc)
		if err != nil {
			badRequest(c, "INVALID_DATE", "end_date "+err.Error())
			return analysis.Criteria{}, models.CriteriaInfo{}, false
		}
		criteria.Range = &analysis.DateRange{Start: s, End: e, Mode: limits.RangeMode}
		info.StartDate = start
		info.EndDate = end
	}
	return criteria, info, true
}

func toRecord(r model.BetRecord) models.Record {
	return models.Record{
		Date:          r.Date,
		BetType:       r.BetType,
		Match:         r.Match,
		ScheduledTime: r.ScheduledTime,
		Side:          r.Side,
		Odd:           r.Odd,
		EV:            r.EV,
		Result:        r.Result,
	}
}

func toRecords(view []model.BetRecord) []models.Record {
	out := make([]models.Record, len(view))
	for i, r := range view {
		out[i] = toRecord(r)
	}
	return out
}

func optionalFloat(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

func toReport(rep analysis.Report) models.Report {
	out := models.Report{
		Count:        rep.Count,
		MeanOdd:      optionalFloat(rep.MeanOdd),
		MeanEV:       optionalFloat(rep.MeanEV),
		DistinctDays: rep.DistinctDays,
		Wins:         rep.Wins,
		Profit:       rep.Profit,
		ROI:          rep.ROI,
		HitRate:      rep.HitRate,
		Outcomes:     make([]models.OutcomeCount, 0, len(rep.Outcomes)),
		DailyEV:      make([]models.DailyEVPoint, 0, len(rep.DailyEV)),
		ProfitModel:  string(rep.ProfitModel),
		FixedStake:   rep.FixedStake,
	}
	for _, o := range rep.Outcomes {
		out.Outcomes = append(out.Outcomes, models.OutcomeCount{Result: o.Result, Count: o.Count})
	}
	for day, ev := range rep.DailyEVSeq() {
		out.DailyEV = append(out.DailyEV, models.DailyEVPoint{Date: day.Format(dayLayout), MeanEV: ev})
	}
	return out
}

func toSimulation(s daily.Simulation) *models.SimulationResponse {
	return &models.SimulationResponse{
		Stake:         s.Stake,
		Odd:           s.Odd,
		GrossReturn:   s.GrossReturn,
		Profit:        s.Profit,
		GrossDisplay:  "R$" + s.GrossReturn.StringFixed(2),
		ProfitDisplay: "R$" + s.Profit.StringFixed(2),
	}
}
