package analysis

import (
	"sort"

	"bet-dashboard/internal/data"
	"bet-dashboard/internal/model"
)

// TypeReport is the report for one bet type.
type TypeReport struct {
	BetType string
	Report
}

// BreakdownByType applies c's date and EV predicates to each bet type and
// ranks the resulting reports by ROI descending. c.BetType is ignored. Types
// with no surviving records are left out.
func BreakdownByType(records []model.BetRecord, c Criteria, opts Options) []TypeReport {
	byType := data.GroupByType(records)
	out := make([]TypeReport, 0, len(byType))
	for betType, group := range byType {
		tc := c
		tc.BetType = betType
		view := Filter(group, tc)
		if len(view) == 0 {
			continue
		}
		out = append(out, TypeReport{BetType: betType, Report: Aggregate(view, opts)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ROI != out[j].ROI {
			return out[i].ROI > out[j].ROI
		}
		return out[i].BetType < out[j].BetType
	})
	return out
}
