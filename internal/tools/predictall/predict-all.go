package predictall

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	progressbar "github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/reallyasi9/hooppickem/internal/feed"
	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// PredictAll predicts every pairing on a week's scoreboard and renders the
// results with league-wide context. One pairing's failure is reported
// inline; the rest still render.
func PredictAll(ctx *Context) error {
	results, err := predictWeek(ctx)
	if err != nil {
		return fmt.Errorf("PredictAll: %w", err)
	}

	renderResults(ctx, results)
	renderLeagueBaseline(results)
	return nil
}

// Warm computes and caches the week's predictions without rendering, for
// running from cron ahead of interactive use.
func Warm(ctx *Context) error {
	if ctx.Cache == nil {
		return errors.New("Warm: no cache configured")
	}
	results, err := predictWeek(ctx)
	if err != nil {
		return fmt.Errorf("Warm: %w", err)
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	ctx.Log.WithField("matchups", len(results)-failed).Info("cache warmed")
	if failed > 0 {
		return fmt.Errorf("Warm: %d of %d pairings failed", failed, len(results))
	}
	return nil
}

// WarmDaemon re-warms the cache on an interval until the context is
// canceled. A tick that arrives while a warm is still in flight is skipped.
// A failed warm is logged and the daemon keeps ticking.
func WarmDaemon(ctx *Context, interval time.Duration) error {
	if ctx.Cache == nil {
		return errors.New("WarmDaemon: no cache configured")
	}
	if interval <= 0 {
		return fmt.Errorf("WarmDaemon: refresh interval %v is not positive", interval)
	}
	r := &feed.Refresher{
		Interval: interval,
		Log:      ctx.Log,
		Run: func(context.Context) error {
			return Warm(ctx)
		},
	}
	ctx.Log.WithField("interval", interval).Info("warming on an interval")
	r.Start(ctx)
	return nil
}

func predictWeek(ctx *Context) ([]ninecat.MatchupResult, error) {
	if ctx.Cache != nil && !ctx.NoCache && ctx.Week > 0 {
		if results, ok := ctx.Cache.GetScoreboard(ctx, ctx.League, ctx.Week); ok {
			ctx.Log.WithField("week", ctx.Week).Debug("serving cached scoreboard")
			return results, nil
		}
	}

	// The heavy lifting runs on the predictor's worker pool; spin an
	// indeterminate bar so a slow feed does not look like a hang.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("predicting"),
		progressbar.OptionSetVisibility(!ctx.NoProgress),
	)
	type outcome struct {
		results []ninecat.MatchupResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := ctx.Predictor.PredictWeek(ctx, ctx.League, ctx.Week)
		done <- outcome{results: results, err: err}
	}()

	var out outcome
	for waiting := true; waiting; {
		select {
		case out = <-done:
			waiting = false
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	bar.Finish()
	if out.err != nil {
		return nil, out.err
	}

	if ctx.Cache != nil && len(out.results) > 0 {
		week := ctx.Week
		if week == 0 {
			for _, r := range out.results {
				if r.Prediction != nil {
					week = r.Prediction.Week.Number
					break
				}
			}
		}
		if week > 0 {
			ctx.Cache.PutScoreboard(ctx, ctx.League, week, out.results)
		}
	}
	return out.results, nil
}

func renderResults(ctx *Context, results []ninecat.MatchupResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Matchup", "Projected Score", "Winner"})
	for _, r := range results {
		name := fmt.Sprintf("%s vs %s", r.Pairing.TeamA.Name, r.Pairing.TeamB.Name)
		if r.Err != nil {
			t.AppendRow(table.Row{name, "-", fmt.Sprintf("error: %v", r.Err)})
			ctx.Log.WithError(r.Err).Warn("pairing failed")
			continue
		}
		p := r.Prediction
		winner := "tie"
		switch p.Score.Winner() {
		case ninecat.SideA:
			winner = p.TeamA.TeamName
		case ninecat.SideB:
			winner = p.TeamB.TeamName
		}
		t.AppendRow(table.Row{name, fmt.Sprintf("%d-%d", p.Score.A, p.Score.B), winner})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// renderLeagueBaseline summarizes where each team's counting totals sit
// relative to the league this week.
func renderLeagueBaseline(results []ninecat.MatchupResult) {
	totals := make(map[ninecat.Category][]float64)
	var names []string
	var points []float64
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, proj := range []ninecat.TeamWeekProjection{r.Prediction.TeamA, r.Prediction.TeamB} {
			for _, c := range ninecat.CountingCategories {
				totals[c] = append(totals[c], proj.Totals[c])
			}
			names = append(names, proj.TeamName)
			points = append(points, proj.Totals[ninecat.Points])
		}
	}
	if len(points) < 2 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "League Mean", "League StdDev"})
	for _, c := range ninecat.CountingCategories {
		mean, std := stat.MeanStdDev(totals[c], nil)
		t.AppendRow(table.Row{string(c), fmt.Sprintf("%0.1f", mean), fmt.Sprintf("%0.1f", std)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	mean, std := stat.MeanStdDev(points, nil)
	if std == 0 {
		return
	}
	dist := distuv.Normal{Mu: mean, Sigma: std}
	pt := table.NewWriter()
	pt.SetOutputMirror(os.Stdout)
	pt.AppendHeader(table.Row{"Team", "PTS", "League Percentile"})
	for i, name := range names {
		pt.AppendRow(table.Row{name, fmt.Sprintf("%0.0f", points[i]), fmt.Sprintf("%0.0f%%", 100*dist.CDF(points[i]))})
	}
	pt.SetStyle(table.StyleLight)
	pt.Render()
}
