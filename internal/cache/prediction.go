package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// Predictions is a typed cache over a Store. Backend failures degrade to a
// miss with a warning; a broken cache must never fail a prediction.
type Predictions struct {
	Store Store
	TTL   time.Duration
	Log   *logrus.Logger
}

// NewPredictions wraps a store.
func NewPredictions(store Store, ttl time.Duration, log *logrus.Logger) *Predictions {
	return &Predictions{Store: store, TTL: ttl, Log: log}
}

func (p *Predictions) warn(op, key string, err error) {
	if p.Log != nil {
		p.Log.WithFields(logrus.Fields{"op": op, "key": key}).Warnf("cache degraded: %v", err)
	}
}

func (p *Predictions) get(ctx context.Context, key string, dest interface{}) bool {
	if p == nil || p.Store == nil {
		return false
	}
	data, err := p.Store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			p.warn("get", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		p.warn("decode", key, err)
		return false
	}
	return true
}

func (p *Predictions) put(ctx context.Context, key string, value interface{}) {
	if p == nil || p.Store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		p.warn("encode", key, err)
		return
	}
	if err := p.Store.Set(ctx, key, data, p.TTL); err != nil {
		p.warn("set", key, err)
	}
}

// GetMatchup returns a cached single-pairing prediction, or false on miss.
func (p *Predictions) GetMatchup(ctx context.Context, league, team string, week int) (*ninecat.MatchupPrediction, bool) {
	var pred ninecat.MatchupPrediction
	if !p.get(ctx, MatchupKey(league, team, week), &pred) {
		return nil, false
	}
	return &pred, true
}

// PutMatchup stores a single-pairing prediction.
func (p *Predictions) PutMatchup(ctx context.Context, league, team string, week int, pred *ninecat.MatchupPrediction) {
	p.put(ctx, MatchupKey(league, team, week), pred)
}

// cachedScoreboard is the serializable form of a clean batch. Batches with
// a failed pairing are never stored, so errors need no wire form.
type cachedScoreboard struct {
	Predictions []*ninecat.MatchupPrediction
	Pairings    []ninecat.Pairing
}

// GetScoreboard returns a cached batch prediction, or false on miss.
func (p *Predictions) GetScoreboard(ctx context.Context, league string, week int) ([]ninecat.MatchupResult, bool) {
	var sb cachedScoreboard
	if !p.get(ctx, ScoreboardKey(league, week), &sb) {
		return nil, false
	}
	if len(sb.Predictions) != len(sb.Pairings) {
		return nil, false
	}
	out := make([]ninecat.MatchupResult, len(sb.Pairings))
	for i := range sb.Pairings {
		out[i] = ninecat.MatchupResult{Pairing: sb.Pairings[i], Prediction: sb.Predictions[i]}
	}
	return out, true
}

// PutScoreboard stores a batch prediction. Batches with any failed pairing
// are not cached so the failure is retried next run.
func (p *Predictions) PutScoreboard(ctx context.Context, league string, week int, results []ninecat.MatchupResult) {
	sb := cachedScoreboard{
		Predictions: make([]*ninecat.MatchupPrediction, len(results)),
		Pairings:    make([]ninecat.Pairing, len(results)),
	}
	for i, r := range results {
		if r.Err != nil {
			return
		}
		sb.Predictions[i] = r.Prediction
		sb.Pairings[i] = r.Pairing
	}
	p.put(ctx, ScoreboardKey(league, week), sb)
}

// GetSpan returns a cached multi-week projection, or false on miss.
func (p *Predictions) GetSpan(ctx context.Context, league, team string, from, to int) (*ninecat.SpanProjection, bool) {
	var span ninecat.SpanProjection
	if !p.get(ctx, SpanKey(league, team, from, to), &span) {
		return nil, false
	}
	return &span, true
}

// PutSpan stores a multi-week projection.
func (p *Predictions) PutSpan(ctx context.Context, league, team string, from, to int, span *ninecat.SpanProjection) {
	p.put(ctx, SpanKey(league, team, from, to), span)
}
