package predictmatchup

import (
	"errors"
	"fmt"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/reallyasi9/hooppickem/internal/feed"
	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// Predict runs one pairing prediction end to end: resolve identifiers,
// consult the cache, predict, render, and optionally export.
func Predict(ctx *Context) error {
	if err := resolveIdentifiers(ctx); err != nil {
		return err
	}

	pred, cached := cachedPrediction(ctx)
	if !cached {
		var err error
		pred, err = ctx.Predictor.PredictMatchup(ctx, ctx.League, ctx.Team, ctx.Week)
		if err != nil {
			return describeFailure(ctx, err)
		}
		if ctx.Cache != nil {
			ctx.Cache.PutMatchup(ctx, ctx.League, ctx.Team, pred.Week.Number, pred)
		}
	}

	renderPrediction(pred)

	if ctx.Output != "" {
		if err := exportPrediction(ctx, pred); err != nil {
			return fmt.Errorf("Predict: %w", err)
		}
		ctx.Log.WithField("output", ctx.Output).Info("exported prediction")
	}
	return nil
}

// PredictSpan projects a single team over an inclusive week range.
func PredictSpan(ctx *Context, from, to int) error {
	if err := resolveIdentifiers(ctx); err != nil {
		return err
	}

	span, ok := (*ninecat.SpanProjection)(nil), false
	if ctx.Cache != nil && !ctx.NoCache {
		span, ok = ctx.Cache.GetSpan(ctx, ctx.League, ctx.Team, from, to)
	}
	if !ok {
		var err error
		span, err = ctx.Predictor.ProjectSpan(ctx, ctx.League, ctx.Team, from, to)
		if err != nil {
			return describeFailure(ctx, err)
		}
		if ctx.Cache != nil {
			ctx.Cache.PutSpan(ctx, ctx.League, ctx.Team, from, to, span)
		}
	}

	renderSpan(span)
	return nil
}

func cachedPrediction(ctx *Context) (*ninecat.MatchupPrediction, bool) {
	if ctx.Cache == nil || ctx.NoCache || ctx.Week == 0 {
		// Week 0 resolves server-side; the cache key would be ambiguous.
		return nil, false
	}
	pred, ok := ctx.Cache.GetMatchup(ctx, ctx.League, ctx.Team, ctx.Week)
	if ok {
		ctx.Log.WithField("week", ctx.Week).Debug("serving cached prediction")
	}
	return pred, ok
}

// resolveIdentifiers fills in missing league and team identifiers, prompting
// when interactive.
func resolveIdentifiers(ctx *Context) error {
	if ctx.League == "" {
		if !ctx.Interactive {
			return errors.New("no league given: supply one or run interactively")
		}
		q := &survey.Input{Message: "League ID:"}
		if err := survey.AskOne(q, &ctx.League, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("resolveIdentifiers: %w", err)
		}
	}

	if ctx.Team != "" {
		return nil
	}
	if !ctx.Interactive {
		return errors.New("no team given: supply one or run interactively")
	}

	// Offer the teams on the requested week's scoreboard.
	pairings, err := ctx.Predictor.Feed.Scoreboard(ctx, ctx.League, ctx.Week)
	if err != nil {
		return describeFailure(ctx, err)
	}
	byDisplay := make(map[string]string)
	displays := make([]string, 0, 2*len(pairings))
	names := make([]string, 0, 2*len(pairings))
	for _, p := range pairings {
		for _, id := range []ninecat.TeamWeekIdentity{p.TeamA, p.TeamB} {
			if id.ID == "" {
				continue
			}
			display := fmt.Sprintf("%s (%s)", id.Name, id.ID)
			byDisplay[display] = id.ID
			displays = append(displays, display)
			names = append(names, id.Name)
		}
	}
	if len(displays) == 0 {
		return fmt.Errorf("no teams on the week %d scoreboard of %s", ctx.Week, ctx.League)
	}
	sort.Sort(ByOther[string, string]{Slice: displays, SortBy: names})

	q := &survey.Select{Message: "Which team?", Options: displays}
	var answer string
	if err := survey.AskOne(q, &answer); err != nil {
		return fmt.Errorf("resolveIdentifiers: %w", err)
	}
	ctx.Team = byDisplay[answer]
	return nil
}

// describeFailure maps known failure classes to actionable messages.
func describeFailure(ctx *Context, err error) error {
	switch {
	case errors.Is(err, feed.ErrNotAuthenticated):
		return fmt.Errorf("data source refused credentials (check your GCP project and application default credentials): %w", err)
	case errors.Is(err, feed.ErrNoData):
		return fmt.Errorf("no ingested data for league %s (has the ingest run?): %w", ctx.League, err)
	case errors.Is(err, ninecat.ErrMatchupNotSet):
		return fmt.Errorf("the week %d pairing is not determined yet (playoff seeds still open): %w", ctx.Week, err)
	}
	return err
}
