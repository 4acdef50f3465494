package ninecat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Pairing is one head-to-head matchup on a week's scoreboard.
// Determined is false on a playoff week whose seeds are still open.
type Pairing struct {
	TeamA      TeamWeekIdentity
	TeamB      TeamWeekIdentity
	Determined bool
}

// RosterSource resolves a team's roster for a week.
type RosterSource interface {
	Roster(ctx context.Context, league, team string, week int) ([]PlayerRecord, error)
}

// StatSource resolves a player's statistic line. Implementations return
// ErrNoStats when they have nothing for the player; the projection then
// falls back to the roster-embedded stats.
type StatSource interface {
	PlayerStats(ctx context.Context, playerID string) (StatLine, error)
}

// ScheduleSource resolves the league game schedule over a date range.
// Days the source knows nothing about must be absent from the result, not
// filled with guesses.
type ScheduleSource interface {
	DaySchedule(ctx context.Context, r WeekRange) (DaySchedule, error)
}

// TotalsSource resolves a team's accumulated category totals for a week.
// A nil map with a nil error means the week has not started for the team.
type TotalsSource interface {
	AccumulatedTotals(ctx context.Context, league, team string, week int) (ActualTotals, error)
}

// WeekSource resolves week numbers to platform week date ranges, including
// the platform's irregular double weeks.
type WeekSource interface {
	CurrentWeek(ctx context.Context, league string) (int, error)
	ResolveWeek(ctx context.Context, league string, week int) (Week, error)
}

// MatchupSource resolves pairings.
type MatchupSource interface {
	Matchup(ctx context.Context, league, team string, week int) (Pairing, error)
	Scoreboard(ctx context.Context, league string, week int) ([]Pairing, error)
}

// WindowSource resolves mid-week roster-change accounting from the league
// transaction log: per-player acquisition dates and inactive-list windows.
type WindowSource interface {
	AvailabilityWindows(ctx context.Context, league, team string, r WeekRange) (map[string]time.Time, map[string]ILWindow, error)
}

// Feed bundles every collaborator the predictor consumes. The concrete
// implementations live outside the engine; the engine sees only data.
type Feed interface {
	RosterSource
	StatSource
	ScheduleSource
	TotalsSource
	WeekSource
	MatchupSource
	WindowSource
}

// MatchupPrediction is the full outcome for one pairing.
type MatchupPrediction struct {
	League string
	Week   Week

	TeamA TeamWeekProjection
	TeamB TeamWeekProjection
	Comparison

	// Final marks a fully-resolved past week: Totals are the platform's
	// actual final numbers, not a simulation.
	Final bool

	// Baseline, set on final weeks, is the from-scratch projection computed
	// as if no games had been played, kept for comparing the prediction
	// against what actually happened.
	Baseline *Comparison
}

// MatchupResult is one entry of a batch prediction. Err is set when this
// pairing failed; sibling pairings are unaffected.
type MatchupResult struct {
	Pairing    Pairing
	Prediction *MatchupPrediction
	Err        error
}

// DefaultWorkers bounds the parallel external fetches in batch mode.
const DefaultWorkers = 4

// Predictor orchestrates the projection pipeline: resolve the week, fetch
// rosters and stats, split days, simulate, blend, compare. Each prediction
// is a pure function of the fetched inputs; the predictor itself holds no
// per-request state.
type Predictor struct {
	Feed    Feed
	Blender *Blender

	// Location is the platform's timezone convention for day boundaries.
	Location *time.Location
	// Now is injectable for tests.
	Now func() time.Time
	// Workers bounds parallel fetches in batch mode.
	Workers int
}

// NewPredictor returns a predictor over the given feed with defaults:
// US Eastern day boundaries (NBA schedule convention) and the standard
// simulator.
func NewPredictor(feed Feed) *Predictor {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Predictor{
		Feed:     feed,
		Blender:  NewBlender(),
		Location: loc,
		Now:      time.Now,
		Workers:  DefaultWorkers,
	}
}

func (p *Predictor) now() time.Time {
	t := time.Now()
	if p.Now != nil {
		t = p.Now()
	}
	if p.Location != nil {
		t = t.In(p.Location)
	}
	return t
}

func (p *Predictor) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return DefaultWorkers
}

// teamData is everything fetched for one side of a matchup.
type teamData struct {
	identity TeamWeekIdentity
	roster   []PlayerRecord
	actual   ActualTotals
}

// loadTeam fetches and assembles one team's inputs: roster, resolved stat
// lines, availability windows, and accumulated totals.
func (p *Predictor) loadTeam(ctx context.Context, league string, id TeamWeekIdentity, wk Week) (teamData, error) {
	roster, err := p.Feed.Roster(ctx, league, id.ID, wk.Number)
	if err != nil {
		return teamData{}, fmt.Errorf("loadTeam: unable to get roster for %s: %w", id.ID, err)
	}

	for i := range roster {
		line, err := p.Feed.PlayerStats(ctx, roster[i].ID)
		switch {
		case err == nil:
			roster[i].Stats = line
		case errors.Is(err, ErrNoStats):
			// keep the roster-embedded line, even if empty
		default:
			return teamData{}, fmt.Errorf("loadTeam: unable to get stats for %s: %w", roster[i].ID, err)
		}
	}

	acquired, il, err := p.Feed.AvailabilityWindows(ctx, league, id.ID, wk.Range)
	if err != nil {
		return teamData{}, fmt.Errorf("loadTeam: unable to get availability windows for %s: %w", id.ID, err)
	}
	ApplyWindows(roster, acquired, il)

	actual, err := p.Feed.AccumulatedTotals(ctx, league, id.ID, wk.Number)
	if err != nil {
		return teamData{}, fmt.Errorf("loadTeam: unable to get accumulated totals for %s: %w", id.ID, err)
	}

	return teamData{identity: id, roster: roster, actual: actual}, nil
}

// project blends one side for the resolved week state.
func (p *Predictor) project(td teamData, sched DaySchedule, wk Week, final bool) (totals TeamWeekProjection, baseline TeamWeekProjection) {
	past, remaining := wk.Range.Split(p.now())
	if final {
		past, remaining = wk.Range.Days(), nil
	}

	// The from-scratch projection treats every day as still ahead of us with
	// nothing accumulated. On a final week it is kept for comparison; at the
	// very start of a week it is the prediction itself.
	baseline = p.Blender.Blend(td.identity, td.roster, sched, nil, wk.Range.Days(), nil)

	if final {
		if td.actual == nil {
			// Platform has no totals for a concluded week (rare: a team that
			// never fielded a lineup). The projection is the best stand-in.
			return baseline, baseline
		}
		totals = finalProjection(td.identity, td.actual)
		return totals, baseline
	}

	totals = p.Blender.Blend(td.identity, td.roster, sched, past, remaining, td.actual)
	return totals, baseline
}

// finalProjection wraps a concluded week's actual totals in projection form.
func finalProjection(id TeamWeekIdentity, actual ActualTotals) TeamWeekProjection {
	totals := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		v := actual[c]
		if c.Percentage() {
			v = NormalizePercent(v)
		}
		totals[c] = v
	}
	return TeamWeekProjection{
		TeamID:   id.ID,
		TeamName: id.Name,
		Totals:   totals,
		Shooting: actualShooting(actual),
	}
}

// PredictMatchup predicts the head-to-head result of the given team's
// pairing for a week. Week 0 means the league's current week. A past week
// returns the platform's final totals with Final set; a playoff week whose
// pairing is unknown returns ErrMatchupNotSet.
func (p *Predictor) PredictMatchup(ctx context.Context, league, team string, week int) (*MatchupPrediction, error) {
	current, err := p.Feed.CurrentWeek(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("PredictMatchup: unable to get current week: %w", err)
	}
	if week == 0 {
		week = current
	}

	pairing, err := p.Feed.Matchup(ctx, league, team, week)
	if err != nil {
		return nil, fmt.Errorf("PredictMatchup: unable to get matchup: %w", err)
	}

	return p.predictPairing(ctx, league, pairing, week, current)
}

func (p *Predictor) predictPairing(ctx context.Context, league string, pairing Pairing, week, current int) (*MatchupPrediction, error) {
	if !pairing.Determined {
		return nil, fmt.Errorf("predictPairing: week %d: %w", week, ErrMatchupNotSet)
	}

	wk, err := p.Feed.ResolveWeek(ctx, league, week)
	if err != nil {
		return nil, fmt.Errorf("predictPairing: unable to resolve week %d: %w", week, err)
	}

	sched, err := p.Feed.DaySchedule(ctx, wk.Range)
	if err != nil {
		return nil, fmt.Errorf("predictPairing: unable to get schedule: %w", err)
	}

	a, err := p.loadTeam(ctx, league, pairing.TeamA, wk)
	if err != nil {
		return nil, fmt.Errorf("predictPairing: %w", err)
	}
	b, err := p.loadTeam(ctx, league, pairing.TeamB, wk)
	if err != nil {
		return nil, fmt.Errorf("predictPairing: %w", err)
	}

	return p.assemble(league, wk, week < current, sched, a, b), nil
}

// assemble is the pure tail of the pipeline: everything fetched, nothing
// left that can fail.
func (p *Predictor) assemble(league string, wk Week, final bool, sched DaySchedule, a, b teamData) *MatchupPrediction {
	projA, baseA := p.project(a, sched, wk, final)
	projB, baseB := p.project(b, sched, wk, final)

	pred := &MatchupPrediction{
		League:     league,
		Week:       wk,
		TeamA:      projA,
		TeamB:      projB,
		Comparison: Compare(projA, projB),
		Final:      final,
	}
	if final {
		baseline := Compare(baseA, baseB)
		pred.Baseline = &baseline
	}
	return pred
}

// PredictWeek predicts every pairing on a league's scoreboard for a week.
// Team fetches run on a bounded worker pool purely to hide external-call
// latency; results are merged only after every fetch completes, so the
// per-matchup outcome is identical to running PredictMatchup serially.
// One team's failure fails only the pairings it appears in.
func (p *Predictor) PredictWeek(ctx context.Context, league string, week int) ([]MatchupResult, error) {
	current, err := p.Feed.CurrentWeek(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("PredictWeek: unable to get current week: %w", err)
	}
	if week == 0 {
		week = current
	}

	pairings, err := p.Feed.Scoreboard(ctx, league, week)
	if err != nil {
		return nil, fmt.Errorf("PredictWeek: unable to get scoreboard: %w", err)
	}

	wk, err := p.Feed.ResolveWeek(ctx, league, week)
	if err != nil {
		return nil, fmt.Errorf("PredictWeek: unable to resolve week %d: %w", week, err)
	}
	sched, err := p.Feed.DaySchedule(ctx, wk.Range)
	if err != nil {
		return nil, fmt.Errorf("PredictWeek: unable to get schedule: %w", err)
	}

	// Fetch each distinct team once, in parallel.
	type fetched struct {
		data teamData
		err  error
	}
	teams := make(map[string]TeamWeekIdentity)
	for _, pairing := range pairings {
		if !pairing.Determined {
			continue
		}
		teams[pairing.TeamA.ID] = pairing.TeamA
		teams[pairing.TeamB.ID] = pairing.TeamB
	}

	var mu sync.Mutex
	results := make(map[string]fetched, len(teams))
	ids := make(chan TeamWeekIdentity)
	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				data, err := p.loadTeam(ctx, league, id, wk)
				mu.Lock()
				results[id.ID] = fetched{data: data, err: err}
				mu.Unlock()
			}
		}()
	}
	for _, id := range teams {
		ids <- id
	}
	close(ids)
	wg.Wait()

	out := make([]MatchupResult, len(pairings))
	for i, pairing := range pairings {
		out[i].Pairing = pairing
		if !pairing.Determined {
			out[i].Err = fmt.Errorf("PredictWeek: week %d: %w", week, ErrMatchupNotSet)
			continue
		}
		a := results[pairing.TeamA.ID]
		b := results[pairing.TeamB.ID]
		if a.err != nil {
			out[i].Err = fmt.Errorf("PredictWeek: %w", a.err)
			continue
		}
		if b.err != nil {
			out[i].Err = fmt.Errorf("PredictWeek: %w", b.err)
			continue
		}
		out[i].Prediction = p.assemble(league, wk, week < current, sched, a.data, b.data)
	}
	return out, nil
}

// SpanProjection aggregates one team's projections over an inclusive week
// range. Counting totals sum; percentages recombine from the summed makes
// and attempts.
type SpanProjection struct {
	Team      TeamWeekIdentity
	FromWeek  int
	ToWeek    int
	Totals    map[Category]float64
	Shooting  ShootingTotals
	Remaining int
}

// ProjectSpan projects a single team across every week in [from, to].
func (p *Predictor) ProjectSpan(ctx context.Context, league, team string, from, to int) (*SpanProjection, error) {
	if to < from {
		return nil, fmt.Errorf("ProjectSpan: week range %d-%d is inverted", from, to)
	}
	current, err := p.Feed.CurrentWeek(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("ProjectSpan: unable to get current week: %w", err)
	}

	span := &SpanProjection{FromWeek: from, ToWeek: to, Totals: make(map[Category]float64, len(Categories))}
	for week := from; week <= to; week++ {
		wk, err := p.Feed.ResolveWeek(ctx, league, week)
		if err != nil {
			return nil, fmt.Errorf("ProjectSpan: unable to resolve week %d: %w", week, err)
		}
		sched, err := p.Feed.DaySchedule(ctx, wk.Range)
		if err != nil {
			return nil, fmt.Errorf("ProjectSpan: unable to get schedule for week %d: %w", week, err)
		}
		pairing, err := p.Feed.Matchup(ctx, league, team, week)
		if err != nil {
			return nil, fmt.Errorf("ProjectSpan: unable to get matchup for week %d: %w", week, err)
		}
		// The pairing only decorates the identity with a display name. An
		// undetermined playoff pairing carries empty IDs; the team argument is
		// authoritative either way.
		id := TeamWeekIdentity{ID: team}
		switch team {
		case pairing.TeamA.ID:
			id = pairing.TeamA
		case pairing.TeamB.ID:
			id = pairing.TeamB
		}
		td, err := p.loadTeam(ctx, league, id, wk)
		if err != nil {
			return nil, fmt.Errorf("ProjectSpan: %w", err)
		}
		proj, _ := p.project(td, sched, wk, week < current)
		if span.Team.ID == "" || td.identity.Name != "" {
			span.Team = td.identity
		}
		for _, c := range CountingCategories {
			span.Totals[c] += proj.Totals[c]
		}
		span.Shooting.Add(proj.Shooting)
		span.Remaining += proj.RemainingGames
	}
	span.Totals[FGPct] = pct(span.Shooting.FGMade, span.Shooting.FGAttempted)
	span.Totals[FTPct] = pct(span.Shooting.FTMade, span.Shooting.FTAttempted)
	return span, nil
}
