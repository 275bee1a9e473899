package data

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"bet-dashboard/internal/model"

	_ "github.com/lib/pq"
)

// DefaultPostgresQuery selects the picks table in insertion order.
// Columns must come back in the JSON file's field order.
const DefaultPostgresQuery = `
	SELECT data::text, tipo, jogo, horario, lado, odd, ev, resultado
	FROM apostas
	ORDER BY id
`

// PostgresSource loads records from a PostgreSQL table.
type PostgresSource struct {
	db       *sql.DB
	dsn      string
	query    string
	location *time.Location
}

// NewPostgresSource opens a connection pool for dsn. The connection is
// established lazily on the first Load.
func NewPostgresSource(dsn, query string, loc *time.Location) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	if query == "" {
		query = DefaultPostgresQuery
	}
	return &PostgresSource{db: db, dsn: dsn, query: query, location: loc}, nil
}

// Load runs the query once and normalizes every row.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	raws, fingerprint, err := scanRawRecords(rows)
	if err != nil {
		return nil, err
	}
	return newDataset(s.String(), raws, fingerprint, s.location)
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

func (s *PostgresSource) String() string {
	return "postgres:" + redactDSN(s.dsn)
}

// rowScanner is the subset of *sql.Rows used by scanRawRecords.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRawRecords(rows rowScanner) ([]model.RawRecord, string, error) {
	h := sha256.New()
	var out []model.RawRecord
	for rows.Next() {
		var (
			date, tipo, jogo, horario, lado, resultado sql.NullString
			odd, ev                                    sql.NullFloat64
		)
		if err := rows.Scan(&date, &tipo, &jogo, &horario, &lado, &odd, &ev, &resultado); err != nil {
			return nil, "", fmt.Errorf("scan pick row %d: %w", len(out), err)
		}
		raw := model.RawRecord{
			Date:          date.String,
			BetType:       tipo.String,
			Match:         jogo.String,
			ScheduledTime: horario.String,
			Side:          lado.String,
			Odd:           odd.Float64,
			EV:            ev.Float64,
			Result:        resultado.String,
		}
		for _, f := range []string{
			raw.Date, raw.BetType, raw.Match, raw.ScheduledTime, raw.Side,
			strconv.FormatFloat(raw.Odd, 'g', -1, 64),
			strconv.FormatFloat(raw.EV, 'g', -1, 64),
			raw.Result,
		} {
			h.Write([]byte(f))
			h.Write([]byte{0})
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate pick rows: %w", err)
	}
	return out, hex.EncodeToString(h.Sum(nil)), nil
}
