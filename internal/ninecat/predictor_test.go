package ninecat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeFeed struct {
	current   int
	weeks     map[int]Week
	pairings  map[int][]Pairing
	rosters   map[string][]PlayerRecord
	stats     map[string]StatLine
	totals    map[string]ActualTotals
	sched     DaySchedule
	rosterErr map[string]error
}

func (f *fakeFeed) Roster(_ context.Context, _, team string, _ int) ([]PlayerRecord, error) {
	if err := f.rosterErr[team]; err != nil {
		return nil, err
	}
	roster := f.rosters[team]
	out := make([]PlayerRecord, len(roster))
	copy(out, roster)
	return out, nil
}

func (f *fakeFeed) PlayerStats(_ context.Context, playerID string) (StatLine, error) {
	if line, ok := f.stats[playerID]; ok {
		return line, nil
	}
	return StatLine{}, ErrNoStats
}

func (f *fakeFeed) DaySchedule(_ context.Context, _ WeekRange) (DaySchedule, error) {
	return f.sched, nil
}

func (f *fakeFeed) AccumulatedTotals(_ context.Context, _, team string, week int) (ActualTotals, error) {
	return f.totals[fmt.Sprintf("%s:%d", team, week)], nil
}

func (f *fakeFeed) CurrentWeek(_ context.Context, _ string) (int, error) {
	return f.current, nil
}

func (f *fakeFeed) ResolveWeek(_ context.Context, _ string, week int) (Week, error) {
	wk, ok := f.weeks[week]
	if !ok {
		return Week{}, fmt.Errorf("no week %d", week)
	}
	return wk, nil
}

func (f *fakeFeed) Matchup(_ context.Context, _, team string, week int) (Pairing, error) {
	for _, p := range f.pairings[week] {
		if p.TeamA.ID == team || p.TeamB.ID == team || !p.Determined {
			return p, nil
		}
	}
	return Pairing{}, fmt.Errorf("no matchup for %s", team)
}

func (f *fakeFeed) Scoreboard(_ context.Context, _ string, week int) ([]Pairing, error) {
	return f.pairings[week], nil
}

func (f *fakeFeed) AvailabilityWindows(_ context.Context, _, _ string, _ WeekRange) (map[string]time.Time, map[string]ILWindow, error) {
	return nil, nil, nil
}

func testFeed() *fakeFeed {
	wk10 := Week{Number: 10, Range: WeekRange{Start: day("2026-01-05"), End: day("2026-01-11")}}
	wk9 := Week{Number: 9, Range: WeekRange{Start: day("2025-12-29"), End: day("2026-01-04")}}
	wk20 := Week{Number: 20, Range: WeekRange{Start: day("2026-03-16"), End: day("2026-03-22")}, Playoffs: true}

	sched := DaySchedule{}
	for _, wk := range []Week{wk9, wk10} {
		for _, d := range wk.Range.Days() {
			sched.Set(d, NewTeamSet("BOS", "LAL", "GSW", "DEN"))
		}
	}

	id := func(t string) TeamWeekIdentity { return TeamWeekIdentity{ID: t, Name: "Team " + t} }

	mkRoster := func(team, nbaTeam string, pts float64) []PlayerRecord {
		return []PlayerRecord{{
			ID:    team + "-p0",
			Team:  nbaTeam,
			Slot:  SlotUtil,
			Stats: StatLine{Values: map[string]float64{Points.StatID(): pts}, Averaged: true},
		}}
	}

	return &fakeFeed{
		current: 10,
		weeks:   map[int]Week{9: wk9, 10: wk10, 20: wk20},
		pairings: map[int][]Pairing{
			9:  {{TeamA: id("t1"), TeamB: id("t2"), Determined: true}},
			10: {{TeamA: id("t1"), TeamB: id("t2"), Determined: true}, {TeamA: id("t3"), TeamB: id("t4"), Determined: true}},
			20: {{Determined: false}},
		},
		rosters: map[string][]PlayerRecord{
			"t1": mkRoster("t1", "BOS", 30),
			"t2": mkRoster("t2", "LAL", 25),
			"t3": mkRoster("t3", "GSW", 20),
			"t4": mkRoster("t4", "DEN", 22),
		},
		sched:     sched,
		stats:     map[string]StatLine{},
		totals:    map[string]ActualTotals{},
		rosterErr: map[string]error{},
	}
}

func testPredictor(f *fakeFeed) *Predictor {
	p := NewPredictor(f)
	p.Location = time.UTC
	p.Now = func() time.Time { return time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestPredictMatchupCurrentWeek(t *testing.T) {
	f := testFeed()
	f.totals["t1:10"] = ActualTotals{Points: 120}
	f.totals["t2:10"] = ActualTotals{Points: 100}
	p := testPredictor(f)

	pred, err := p.PredictMatchup(context.Background(), "L", "t1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Week.Number != 10 {
		t.Errorf("week 0 should resolve to current week 10, got %d", pred.Week.Number)
	}
	if pred.Final {
		t.Error("current week must not be final")
	}

	// 5 remaining days (Jan 7-11) of 30 points on top of the accumulated 120.
	if !almostEqual(pred.TeamA.Totals[Points], 120+5*30) {
		t.Errorf("team A PTS: expected 270, got %v", pred.TeamA.Totals[Points])
	}
	if pred.Categories[Points].Winner != SideA {
		t.Errorf("expected side A to take PTS, got %v", pred.Categories[Points].Winner)
	}
	if pred.TeamA.RemainingGames != 5 {
		t.Errorf("expected 5 remaining games, got %d", pred.TeamA.RemainingGames)
	}
}

func TestPredictMatchupPastWeekReturnsActuals(t *testing.T) {
	f := testFeed()
	f.totals["t1:9"] = ActualTotals{Points: 432, Rebounds: 150, FGPct: 44.4}
	f.totals["t2:9"] = ActualTotals{Points: 401, Rebounds: 180, FGPct: 46.0}
	p := testPredictor(f)

	pred, err := p.PredictMatchup(context.Background(), "L", "t1", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pred.Final {
		t.Error("past week must be final")
	}
	// The platform's final totals pass through unchanged.
	if !almostEqual(pred.TeamA.Totals[Points], 432) {
		t.Errorf("team A PTS: expected 432 unchanged, got %v", pred.TeamA.Totals[Points])
	}
	if !almostEqual(pred.TeamA.Totals[FGPct], 44.4) {
		t.Errorf("team A FG%%: expected 44.4 unchanged, got %v", pred.TeamA.Totals[FGPct])
	}
	// The from-scratch projection is still computed for comparison display.
	if pred.Baseline == nil {
		t.Fatal("expected a baseline projection on a final week")
	}
	if got := pred.Baseline.Categories[Points]; almostEqual(got.A, 432) {
		t.Error("baseline must be the simulated projection, not the actual totals")
	}
}

func TestPredictMatchupPlayoffNotSet(t *testing.T) {
	p := testPredictor(testFeed())

	_, err := p.PredictMatchup(context.Background(), "L", "t1", 20)
	if !errors.Is(err, ErrMatchupNotSet) {
		t.Errorf("expected ErrMatchupNotSet, got %v", err)
	}
}

func TestPredictMatchupStatsFallback(t *testing.T) {
	f := testFeed()
	// A preferred-source line for one player only; the other keeps the
	// roster-embedded numbers.
	f.stats["t1-p0"] = StatLine{Values: map[string]float64{Points.StatID(): 40}, Averaged: true}
	p := testPredictor(f)

	pred, err := p.PredictMatchup(context.Background(), "L", "t1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No accumulated totals yet, so all 7 days are simulated.
	if !almostEqual(pred.TeamA.Totals[Points], 7*40) {
		t.Errorf("team A should use source stats: expected 280, got %v", pred.TeamA.Totals[Points])
	}
	if !almostEqual(pred.TeamB.Totals[Points], 7*25) {
		t.Errorf("team B should keep roster stats: expected 175, got %v", pred.TeamB.Totals[Points])
	}
}

func TestPredictWeekPartialFailure(t *testing.T) {
	f := testFeed()
	f.rosterErr["t3"] = errors.New("platform timeout")
	p := testPredictor(f)

	results, err := p.PredictWeek(context.Background(), "L", 10)
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var ok, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		ok++
		if r.Prediction == nil {
			t.Error("successful result missing prediction")
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("expected 1 success and 1 failure, got %d/%d", ok, failed)
	}
}

func TestPredictWeekMatchesSingle(t *testing.T) {
	f := testFeed()
	f.totals["t1:10"] = ActualTotals{Points: 90}
	p := testPredictor(f)

	single, err := p.PredictMatchup(context.Background(), "L", "t1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	results, err := p.PredictWeek(context.Background(), "L", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var batch *MatchupPrediction
	for _, r := range results {
		if r.Pairing.TeamA.ID == "t1" {
			batch = r.Prediction
		}
	}
	if batch == nil {
		t.Fatal("t1 pairing missing from batch results")
	}
	for _, c := range Categories {
		if !almostEqual(batch.TeamA.Totals[c], single.TeamA.Totals[c]) {
			t.Errorf("%s: batch %v != single %v", c, batch.TeamA.Totals[c], single.TeamA.Totals[c])
		}
	}
}

func TestProjectSpan(t *testing.T) {
	f := testFeed()
	p := testPredictor(f)

	span, err := p.ProjectSpan(context.Background(), "L", "t1", 9, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.FromWeek != 9 || span.ToWeek != 10 {
		t.Errorf("expected span 9-10, got %d-%d", span.FromWeek, span.ToWeek)
	}
	// Week 9 has no actual totals recorded, so its stand-in projection is
	// 7 days x 30 points; week 10 contributes 5 remaining days x 30 plus 2
	// simulated past days x 30 (no actuals yet).
	if !almostEqual(span.Totals[Points], 7*30+7*30) {
		t.Errorf("span PTS: expected %v, got %v", 7*30+7*30.0, span.Totals[Points])
	}
}

func TestProjectSpanPlayoffPairingOpen(t *testing.T) {
	f := testFeed()
	for _, d := range f.weeks[20].Range.Days() {
		f.sched.Set(d, NewTeamSet("BOS", "LAL", "GSW", "DEN"))
	}
	p := testPredictor(f)

	// The week 20 pairing has no identities yet; the span still projects
	// from the requested team's roster.
	span, err := p.ProjectSpan(context.Background(), "L", "t1", 20, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Team.ID != "t1" {
		t.Errorf("expected team t1, got %q", span.Team.ID)
	}
	if !almostEqual(span.Totals[Points], 7*30) {
		t.Errorf("span PTS: expected 210, got %v", span.Totals[Points])
	}
}
