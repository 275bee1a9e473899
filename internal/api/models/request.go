package models

// TodayRequest represents the query for GET /api/v1/today
type TodayRequest struct {
	Date  string   `form:"date"`  // YYYY-MM-DD, default: today in the data time zone
	Stake *float64 `form:"stake"` // default: simulator.default_stake
}

// SimulateRequest represents the request body for POST /api/v1/simulate.
// Either Odd or Date must be set; Odd wins when both are present.
type SimulateRequest struct {
	Odd   *float64 `json:"odd,omitempty"`
	Date  string   `json:"date,omitempty"` // YYYY-MM-DD, simulate that day's featured pick
	Stake float64  `json:"stake" binding:"required"`
}

// AnalyticsRequest represents the query for GET /api/v1/analytics and POST /api/v1/export
type AnalyticsRequest struct {
	BetType   string `form:"bet_type" binding:"required"`
	StartDate string `form:"start_date"` // YYYY-MM-DD, requires end_date
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, requires start_date
	MinEV     *int   `form:"min_ev"`     // default: analytics.default_min_ev
}

// BreakdownRequest represents the query for GET /api/v1/analytics/breakdown
type BreakdownRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	MinEV     *int   `form:"min_ev"`
}
