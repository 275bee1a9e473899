package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Record represents one pick
type Record struct {
	Date          time.Time `json:"date"`
	BetType       string    `json:"bet_type"`
	Match         string    `json:"match"`
	ScheduledTime string    `json:"scheduled_time"`
	Side          string    `json:"side"`
	Odd           float64   `json:"odd"`
	EV            float64   `json:"ev"`
	Result        string    `json:"result"`
}

// SimulationResponse contains exact simulator values plus 2-place renderings
type SimulationResponse struct {
	Stake         decimal.Decimal `json:"stake"`
	Odd           decimal.Decimal `json:"odd"`
	GrossReturn   decimal.Decimal `json:"gross_return"`
	Profit        decimal.Decimal `json:"profit"`
	GrossDisplay  string          `json:"gross_return_display"`
	ProfitDisplay string          `json:"profit_display"`
}

// SimulatorDefaults describes the stake input
type SimulatorDefaults struct {
	DefaultStake float64 `json:"default_stake"`
	MinStake     float64 `json:"min_stake"`
	Step         float64 `json:"step"`
}

// TodayResponse represents the featured pick of a day
type TodayResponse struct {
	Date       string              `json:"date"`
	Pick       *Record             `json:"pick"`
	Picks      []Record            `json:"picks"`
	Simulation *SimulationResponse `json:"simulation,omitempty"`
	Simulator  SimulatorDefaults   `json:"simulator"`
	Message    string              `json:"message,omitempty"`

	Animation        json.RawMessage `json:"animation,omitempty"`
	AnimationMessage string          `json:"animation_message,omitempty"`
}

// CriteriaInfo echoes the applied filter
type CriteriaInfo struct {
	BetType   string `json:"bet_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	MinEV     int    `json:"min_ev"`
}

// OutcomeCount is one bar of the results chart
type OutcomeCount struct {
	Result string `json:"result"`
	Count  int    `json:"count"`
}

// DailyEVPoint is one point of the daily EV line
type DailyEVPoint struct {
	Date   string  `json:"date"`
	MeanEV float64 `json:"mean_ev"`
}

// Report contains aggregated analytics. Means are null for an empty view.
type Report struct {
	Count        int             `json:"count"`
	MeanOdd      *float64        `json:"mean_odd"`
	MeanEV       *float64        `json:"mean_ev"`
	DistinctDays int             `json:"distinct_days"`
	Wins         int             `json:"wins"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          float64         `json:"roi"`
	HitRate      float64         `json:"hit_rate"`
	Outcomes     []OutcomeCount  `json:"outcomes"`
	DailyEV      []DailyEVPoint  `json:"daily_ev"`
	ProfitModel  string          `json:"profit_model"`
	FixedStake   float64         `json:"fixed_stake"`
}

// AnalyticsResponse represents the analytics panel
type AnalyticsResponse struct {
	Criteria CriteriaInfo `json:"criteria"`
	Report   Report       `json:"report"`
	Records  []Record     `json:"records"` // date descending
}

// BreakdownResponse represents the per-type ranking
type BreakdownResponse struct {
	Criteria CriteriaInfo  `json:"criteria"`
	Rankings []TypeRanking `json:"rankings"`
}

// TypeRanking represents one ranked bet type
type TypeRanking struct {
	Rank    int    `json:"rank"`
	BetType string `json:"bet_type"`
	Report  Report `json:"report"`
}

// ExportResponse represents the result of an export
type ExportResponse struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

// BetTypesResponse lists the selectable bet types
type BetTypesResponse struct {
	BetTypes []string `json:"bet_types"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
