package main

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/reallyasi9/hooppickem/internal/cache"
	"github.com/reallyasi9/hooppickem/internal/config"
	"github.com/reallyasi9/hooppickem/internal/feed"
	"github.com/reallyasi9/hooppickem/internal/logger"
	"github.com/reallyasi9/hooppickem/internal/ninecat"
	"github.com/reallyasi9/hooppickem/internal/tools/predictall"
	"github.com/reallyasi9/hooppickem/internal/tools/predictmatchup"
)

type globalCmd struct {
	ProjectID string `help:"GCP project ID." env:"GCP_PROJECT"`
	League    string `help:"League ID. Defaults to the configured league." short:"l"`
	LogLevel  string `help:"Log level (trace, debug, info, warn, error)."`
	NoCache   bool   `help:"Bypass cached predictions."`
}

type predictCmd struct {
	Team   string `help:"Team ID. Prompted for interactively when omitted." short:"t"`
	Week   int    `help:"Week number. 0 means the current week." short:"w"`
	Output string `help:"Write the prediction to this spreadsheet (local path or gs:// URL)." short:"o"`
	Batch  bool   `help:"Fail instead of prompting for missing identifiers."`
}

type predictAllCmd struct {
	Week       int  `help:"Week number. 0 means the current week." short:"w"`
	NoProgress bool `help:"Suppress the progress bar."`
}

type predictSpanCmd struct {
	Team string `help:"Team ID. Prompted for interactively when omitted." short:"t"`
	From int    `arg:"" help:"First week of the span."`
	To   int    `arg:"" help:"Last week of the span (inclusive)."`
}

type warmCmd struct {
	Week     int           `help:"Week number. 0 means the current week." short:"w"`
	Daemon   bool          `help:"Keep running, re-warming on an interval."`
	Interval time.Duration `help:"Re-warm interval in daemon mode. Defaults to the configured REFRESH_INTERVAL."`
}

var CLI struct {
	globalCmd

	Predict     predictCmd     `cmd:"" help:"Predict one head-to-head matchup."`
	PredictAll  predictAllCmd  `cmd:"" help:"Predict every matchup on a week's scoreboard."`
	PredictSpan predictSpanCmd `cmd:"" help:"Project one team's totals over a span of weeks."`
	Warm        warmCmd        `cmd:"" help:"Compute and cache the week's predictions without rendering."`
}

func main() {
	kctx := kong.Parse(&CLI)
	err := run(kctx)
	kctx.FatalIfErrorf(err)
}

// deps is everything the subcommands share.
type deps struct {
	cfg       *config.Config
	predictor *ninecat.Predictor
	cache     *cache.Predictions
}

func run(kctx *kong.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := CLI.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	log := logger.Init(level)

	if CLI.League == "" {
		CLI.League = cfg.LeagueID
	}
	if CLI.League == "" {
		return fmt.Errorf("no league: use --league or set LEAGUE_ID")
	}
	project := CLI.ProjectID
	if project == "" {
		project = cfg.GCPProject
	}
	if project == "" {
		log.Warn("no GCP project ID; firestore access will probably fail")
	}

	fsClient, err := fs.NewClient(ctx, project)
	if err != nil {
		return fmt.Errorf("unable to create firestore client: %w", err)
	}
	defer fsClient.Close()

	d, err := buildDeps(ctx, cfg, fsClient, log)
	if err != nil {
		return err
	}

	switch kctx.Command() {
	case "predict":
		tctx := predictmatchup.NewContext(ctx)
		tctx.Predictor = d.predictor
		tctx.Cache = d.cache
		tctx.Log = log
		tctx.League = CLI.League
		tctx.Team = firstNonEmpty(CLI.Predict.Team, cfg.TeamID)
		tctx.Week = CLI.Predict.Week
		tctx.Interactive = !CLI.Predict.Batch
		tctx.Output = CLI.Predict.Output
		tctx.NoCache = CLI.NoCache
		return predictmatchup.Predict(tctx)

	case "predict-all":
		tctx := predictall.NewContext(ctx)
		tctx.Predictor = d.predictor
		tctx.Cache = d.cache
		tctx.Log = log
		tctx.League = CLI.League
		tctx.Week = CLI.PredictAll.Week
		tctx.NoProgress = CLI.PredictAll.NoProgress
		tctx.NoCache = CLI.NoCache
		return predictall.PredictAll(tctx)

	case "predict-span <from> <to>":
		tctx := predictmatchup.NewContext(ctx)
		tctx.Predictor = d.predictor
		tctx.Cache = d.cache
		tctx.Log = log
		tctx.League = CLI.League
		tctx.Team = firstNonEmpty(CLI.PredictSpan.Team, cfg.TeamID)
		tctx.Interactive = true
		tctx.NoCache = CLI.NoCache
		return predictmatchup.PredictSpan(tctx, CLI.PredictSpan.From, CLI.PredictSpan.To)

	case "warm":
		tctx := predictall.NewContext(ctx)
		tctx.Predictor = d.predictor
		tctx.Cache = d.cache
		tctx.Log = log
		tctx.League = CLI.League
		tctx.Week = CLI.Warm.Week
		tctx.NoProgress = true
		tctx.NoCache = true
		if CLI.Warm.Daemon {
			interval := CLI.Warm.Interval
			if interval == 0 {
				interval = cfg.RefreshInterval
			}
			return predictall.WarmDaemon(tctx, interval)
		}
		return predictall.Warm(tctx)
	}
	return fmt.Errorf("unrecognized command: %s", kctx.Command())
}

func buildDeps(ctx context.Context, cfg *config.Config, fsClient *fs.Client, log *logrus.Logger) (*deps, error) {
	fire := feed.NewFire(fsClient)

	var dataFeed ninecat.Feed = fire
	if cfg.SeasonStatsXL != "" {
		season, err := feed.OpenSeasonStats(ctx, cfg.SeasonStatsXL)
		if err != nil {
			return nil, fmt.Errorf("unable to load season stats from '%s': %w", cfg.SeasonStatsXL, err)
		}
		log.WithField("players", season.Len()).Info("loaded season stats fallback")
		dataFeed = feed.WithStats(fire, feed.Resolver{fire, season})
	}

	predictor := ninecat.NewPredictor(dataFeed)
	predictor.Workers = cfg.Workers
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("unrecognized timezone '%s': %w", cfg.Timezone, err)
		}
		predictor.Location = loc
	}

	sim := predictor.Blender.Sim
	if cfg.DailyCap > 0 {
		sim.DailyCap = cfg.DailyCap
	}
	switch cfg.Ordering {
	case "", "roster":
		sim.Order = ninecat.OrderRoster{}
	case "starters":
		sim.Order = ninecat.OrderStartersFirst{}
	default:
		return nil, fmt.Errorf("unrecognized ordering '%s' (want roster or starters)", cfg.Ordering)
	}
	overrides, err := cfg.ParseInjuryOverrides()
	if err != nil {
		return nil, err
	}
	for status, prob := range overrides {
		sim.Injuries[status] = prob
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var predCache *cache.Predictions
	if store != nil {
		predCache = cache.NewPredictions(store, cfg.CacheTTL, logger.Get())
	}

	return &deps{cfg: cfg, predictor: predictor, cache: predCache}, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		return cache.NewMemory(), nil
	case "redis":
		return cache.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "firestore":
		fsClient, err := fs.NewClient(ctx, cfg.GCPProject)
		if err != nil {
			return nil, fmt.Errorf("unable to create firestore cache client: %w", err)
		}
		return cache.NewFirestore(fsClient), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unrecognized cache backend '%s'", cfg.CacheBackend)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
