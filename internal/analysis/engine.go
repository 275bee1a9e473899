package analysis

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"bet-dashboard/internal/cache"
	"bet-dashboard/internal/data"
	"bet-dashboard/internal/logging"
	"bet-dashboard/internal/model"

	"github.com/sirupsen/logrus"
)

// Engine answers analytics queries over one immutable dataset. It is safe for
// concurrent use.
type Engine struct {
	ds    *data.Dataset
	opts  Options
	cache cache.Cache
	log   *logrus.Entry
}

// NewEngine binds ds and opts. c may be nil to disable memoization.
func NewEngine(ds *data.Dataset, opts Options, c cache.Cache) *Engine {
	return &Engine{
		ds:    ds,
		opts:  opts,
		cache: c,
		log:   logging.For("analysis"),
	}
}

// Options returns the aggregation options the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// Dataset returns the bound snapshot.
func (e *Engine) Dataset() *data.Dataset { return e.ds }

// Records returns every record in load order.
func (e *Engine) Records() []model.BetRecord {
	if e.ds == nil {
		return nil
	}
	return e.ds.Records
}

// BetTypes returns the sorted distinct bet types.
func (e *Engine) BetTypes() []string {
	return data.BetTypes(e.Records())
}

// Filter runs c over the dataset.
func (e *Engine) Filter(c Criteria) []model.BetRecord {
	return Filter(e.Records(), c)
}

// Report returns the aggregate report for c. Cache failures are logged and
// the report is computed directly.
func (e *Engine) Report(ctx context.Context, c Criteria) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	compute := func() Report { return Aggregate(e.Filter(c), e.opts) }
	return memoize(ctx, e, "report", c, compute, normalizeReport), nil
}

// Breakdown ranks bet types under c's date and EV predicates. Results are
// cached like Report.
func (e *Engine) Breakdown(ctx context.Context, c Criteria) ([]TypeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	compute := func() []TypeReport { return BreakdownByType(e.Records(), c, e.opts) }
	return memoize(ctx, e, "breakdown", c, compute, normalizeBreakdown), nil
}

// memoize serves kind/c from the engine cache, computing and storing it on a
// miss. normalize repairs what gob drops on decode.
func memoize[T any](ctx context.Context, e *Engine, kind string, c Criteria, compute func() T, normalize func(*T)) T {
	if e.cache == nil {
		return compute()
	}

	fingerprint := ""
	if e.ds != nil {
		fingerprint = e.ds.Fingerprint
	}
	key := cache.Key(kind, fingerprint, e.opts.key(), c.Key())
	log := e.log.WithFields(logrus.Fields{"kind": kind, "criteria": c.Key()})

	if raw, ok, err := e.cache.Get(ctx, key); err != nil {
		log.WithError(err).Warn("cache read failed")
	} else if ok {
		var v T
		err := gobDecode(raw, &v)
		if err == nil {
			normalize(&v)
			log.Debug("cache hit")
			return v
		}
		log.WithError(err).Warn("discarding undecodable cache entry")
	}

	v := compute()
	raw, err := gobEncode(v)
	if err != nil {
		log.WithError(err).Warn("encode for cache")
		return v
	}
	if err := e.cache.Set(ctx, key, raw); err != nil {
		log.WithError(err).Warn("cache write failed")
	}
	return v
}

func gobEncode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func gobDecode(raw []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return fmt.Errorf("gob decode: %w", err)
	}
	return nil
}

// gob drops empty slices.
func normalizeReport(rep *Report) {
	if rep.Outcomes == nil {
		rep.Outcomes = []OutcomeCount{}
	}
	if rep.DailyEV == nil {
		rep.DailyEV = []DayEV{}
	}
}

func normalizeBreakdown(ranked *[]TypeReport) {
	if *ranked == nil {
		*ranked = []TypeReport{}
	}
	for i := range *ranked {
		normalizeReport(&(*ranked)[i].Report)
	}
}
