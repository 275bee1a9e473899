package model

import "time"

// ResultWon is the result label that marks a winning pick.
const ResultWon = "Ganho"

// RawRecord matches the JSON shape of apostas_reais.json.
//
// Example:
// [
//   {"data": "2024-01-01", "tipo": "Over", "jogo": "A x B", "horario": "16:00",
//    "lado": "Over 2.5", "odd": 2.0, "ev": 15, "resultado": "Ganho"}
// ]
type RawRecord struct {
	Date          string  `json:"data"`
	BetType       string  `json:"tipo"`
	Match         string  `json:"jogo"`
	ScheduledTime string  `json:"horario"`
	Side          string  `json:"lado"`
	Odd           float64 `json:"odd"`
	EV            float64 `json:"ev"`
	Result        string  `json:"resultado"`
}

// BetRecord is one historical or scheduled pick. Records are read-only once loaded.
type BetRecord struct {
	Date          time.Time
	BetType       string
	Match         string
	ScheduledTime string
	Side          string

	// Odd uses the decimal convention: stake*Odd is the gross return.
	Odd float64
	// EV is the expected value in percentage points.
	EV float64

	Result string
}

// Won reports whether the record settled as a win.
func (r BetRecord) Won() bool {
	return r.Result == ResultWon
}

// Day returns the record's calendar day at midnight in the record's location.
func (r BetRecord) Day() time.Time {
	return Day(r.Date)
}

// Day truncates t to midnight of its calendar day, keeping t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
// Each side is read in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
