package feed

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// Collection paths. Leagues own their weeks, scoreboards, and teams; the
// game schedule and player stats are league-independent.
const (
	LeaguesCollection   = "leagues"
	WeeksCollection     = "weeks"
	BoardsCollection    = "scoreboards"
	TeamsCollection     = "teams"
	RostersCollection   = "rosters"
	PlayersCollection   = "players"
	TotalsCollection    = "totals"
	WindowsCollection   = "windows"
	ScheduleCollection  = "schedule"
	StatsCollection     = "stats"
)

// League is the root document of a league.
type League struct {
	Name        string `firestore:"name"`
	CurrentWeek int    `firestore:"current_week"`
}

// WeekDoc is one scoring period. Double weeks simply span more days.
type WeekDoc struct {
	Number   int       `firestore:"number"`
	Start    time.Time `firestore:"start"`
	End      time.Time `firestore:"end"`
	Playoffs bool      `firestore:"playoffs"`
}

// MatchupDoc is one pairing on a week's scoreboard. Team IDs are empty on
// playoff weeks whose seeds are still open.
type MatchupDoc struct {
	TeamAID   string `firestore:"team_a_id"`
	TeamAName string `firestore:"team_a_name"`
	TeamBID   string `firestore:"team_b_id"`
	TeamBName string `firestore:"team_b_name"`
}

// ScoreboardDoc is a week's full set of pairings.
type ScoreboardDoc struct {
	Week     int          `firestore:"week"`
	Matchups []MatchupDoc `firestore:"matchups"`
}

// PlayerDoc is one roster row as ingested from the platform.
type PlayerDoc struct {
	PlayerID string `firestore:"player_id"`
	Name     string `firestore:"name"`
	Team     string `firestore:"team"`
	Slot     string `firestore:"slot"`
	Status   string `firestore:"status"`
	Note     string `firestore:"note"`
	Order    int    `firestore:"order"`

	// Embedded per-game averages from the roster page, the fallback when no
	// richer stat line exists for the player.
	Averages map[string]float64 `firestore:"averages"`
}

// StatsDoc is a player's stat line from the stats ingest, richer than the
// roster-embedded averages.
type StatsDoc struct {
	Values      map[string]float64 `firestore:"values"`
	Averaged    bool               `firestore:"averaged"`
	GamesPlayed float64            `firestore:"games_played"`
	FGMade      float64            `firestore:"fg_made"`
	FGAttempted float64            `firestore:"fg_attempted"`
	FTMade      float64            `firestore:"ft_made"`
	FTAttempted float64            `firestore:"ft_attempted"`
	HasShooting bool               `firestore:"has_shooting"`
}

// TotalsDoc is a team's accumulated category totals for a week.
type TotalsDoc struct {
	Started bool               `firestore:"started"`
	Values  map[string]float64 `firestore:"values"`
}

// ILDoc is one inactive-list stay from the transaction log.
type ILDoc struct {
	PlayerID  string     `firestore:"player_id"`
	PlacedOn  time.Time  `firestore:"placed_on"`
	RemovedOn *time.Time `firestore:"removed_on"`
}

// WindowsDoc is a team-week's roster-change accounting.
type WindowsDoc struct {
	Acquired map[string]time.Time `firestore:"acquired"`
	IL       []ILDoc              `firestore:"il"`
}

// ScheduleDayDoc is the set of teams with a game on one day. A present
// document with no teams is a confirmed league-wide off day.
type ScheduleDayDoc struct {
	Date  time.Time `firestore:"date"`
	Teams []string  `firestore:"teams"`
}

// Fire serves predictions from ingested firestore data. It implements the
// full feed contract.
type Fire struct {
	Client *fs.Client
}

// NewFire wraps an existing client.
func NewFire(client *fs.Client) *Fire {
	return &Fire{Client: client}
}

// wrapAuth maps credential failures to ErrNotAuthenticated so the tools can
// render them distinctly.
func wrapAuth(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return err
}

func (f *Fire) league(league string) *fs.DocumentRef {
	return f.Client.Collection(LeaguesCollection).Doc(league)
}

func (f *Fire) team(league, team string) *fs.DocumentRef {
	return f.league(league).Collection(TeamsCollection).Doc(team)
}

// CurrentWeek reads the league's current scoring period.
func (f *Fire) CurrentWeek(ctx context.Context, league string) (int, error) {
	snap, err := f.league(league).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return 0, fmt.Errorf("CurrentWeek: %w: %s", ErrNoData, league)
	}
	if err != nil {
		return 0, fmt.Errorf("CurrentWeek: %w", wrapAuth(err))
	}
	var l League
	if err := snap.DataTo(&l); err != nil {
		return 0, fmt.Errorf("CurrentWeek: %w", err)
	}
	return l.CurrentWeek, nil
}

// ResolveWeek reads a week's date range.
func (f *Fire) ResolveWeek(ctx context.Context, league string, week int) (ninecat.Week, error) {
	q := f.league(league).Collection(WeeksCollection).Where("number", "==", week).Limit(1)
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return ninecat.Week{}, fmt.Errorf("ResolveWeek: %w", wrapAuth(err))
	}
	if len(docs) == 0 {
		return ninecat.Week{}, fmt.Errorf("ResolveWeek: %w: no week %d in %s", ErrNoData, week, league)
	}
	var w WeekDoc
	if err := docs[0].DataTo(&w); err != nil {
		return ninecat.Week{}, fmt.Errorf("ResolveWeek: %w", err)
	}
	return ninecat.Week{
		Number:   w.Number,
		Range:    ninecat.WeekRange{Start: ninecat.Day(w.Start), End: ninecat.Day(w.End)},
		Playoffs: w.Playoffs,
	}, nil
}

func (d MatchupDoc) pairing() ninecat.Pairing {
	return ninecat.Pairing{
		TeamA:      ninecat.TeamWeekIdentity{ID: d.TeamAID, Name: d.TeamAName},
		TeamB:      ninecat.TeamWeekIdentity{ID: d.TeamBID, Name: d.TeamBName},
		Determined: d.TeamAID != "" && d.TeamBID != "",
	}
}

// Scoreboard reads every pairing for a week.
func (f *Fire) Scoreboard(ctx context.Context, league string, week int) ([]ninecat.Pairing, error) {
	snap, err := f.league(league).Collection(BoardsCollection).Doc(fmt.Sprintf("%d", week)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("Scoreboard: %w: no scoreboard for week %d in %s", ErrNoData, week, league)
	}
	if err != nil {
		return nil, fmt.Errorf("Scoreboard: %w", wrapAuth(err))
	}
	var sb ScoreboardDoc
	if err := snap.DataTo(&sb); err != nil {
		return nil, fmt.Errorf("Scoreboard: %w", err)
	}
	out := make([]ninecat.Pairing, len(sb.Matchups))
	for i, m := range sb.Matchups {
		out[i] = m.pairing()
	}
	return out, nil
}

// Matchup finds the pairing containing the given team on a week's
// scoreboard.
func (f *Fire) Matchup(ctx context.Context, league, team string, week int) (ninecat.Pairing, error) {
	pairings, err := f.Scoreboard(ctx, league, week)
	if err != nil {
		return ninecat.Pairing{}, fmt.Errorf("Matchup: %w", err)
	}
	for _, p := range pairings {
		if p.TeamA.ID == team || p.TeamB.ID == team {
			return p, nil
		}
	}
	// Playoff boards list pairings with empty identities until seeds settle;
	// hand one back so the engine reports the pairing as not yet set.
	for _, p := range pairings {
		if !p.Determined {
			return p, nil
		}
	}
	return ninecat.Pairing{}, fmt.Errorf("Matchup: team %s not on week %d scoreboard of %s", team, week, league)
}

// Roster reads a team's roster rows for a week, in roster order.
func (f *Fire) Roster(ctx context.Context, league, team string, week int) ([]ninecat.PlayerRecord, error) {
	col := f.team(league, team).Collection(RostersCollection).Doc(fmt.Sprintf("%d", week)).Collection(PlayersCollection)
	iter := col.OrderBy("order", fs.Asc).Documents(ctx)
	defer iter.Stop()

	var out []ninecat.PlayerRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Roster: %w", wrapAuth(err))
		}
		var p PlayerDoc
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("Roster: %w", err)
		}
		out = append(out, ninecat.PlayerRecord{
			ID:     p.PlayerID,
			Name:   p.Name,
			Team:   ResolveTeamCode(p.Team),
			Slot:   ninecat.RosterSlot(p.Slot),
			Status: p.Status,
			Note:   p.Note,
			Stats:  ninecat.StatLine{Values: p.Averages, Averaged: true},
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("Roster: %w: no roster for team %s week %d in %s", ErrNoData, team, week, league)
	}
	return out, nil
}

// PlayerStats reads the ingested stat line for a player. A missing document
// is ErrNoStats; the projection falls back to roster-embedded averages.
func (f *Fire) PlayerStats(ctx context.Context, playerID string) (ninecat.StatLine, error) {
	snap, err := f.Client.Collection(PlayersCollection).Doc(playerID).Collection(StatsCollection).Doc("latest").Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ninecat.StatLine{}, ninecat.ErrNoStats
	}
	if err != nil {
		return ninecat.StatLine{}, fmt.Errorf("PlayerStats: %w", wrapAuth(err))
	}
	var s StatsDoc
	if err := snap.DataTo(&s); err != nil {
		return ninecat.StatLine{}, fmt.Errorf("PlayerStats: %w", err)
	}
	return ninecat.StatLine{
		Values:      s.Values,
		Averaged:    s.Averaged,
		GamesPlayed: s.GamesPlayed,
		HasShooting: s.HasShooting,
		FGMade:      s.FGMade,
		FGAttempted: s.FGAttempted,
		FTMade:      s.FTMade,
		FTAttempted: s.FTAttempted,
	}, nil
}

// AccumulatedTotals reads a team's running category totals for a week. A
// missing document or an unstarted week returns nil, meaning "nothing
// accumulated yet".
func (f *Fire) AccumulatedTotals(ctx context.Context, league, team string, week int) (ninecat.ActualTotals, error) {
	snap, err := f.team(league, team).Collection(TotalsCollection).Doc(fmt.Sprintf("%d", week)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("AccumulatedTotals: %w", wrapAuth(err))
	}
	var t TotalsDoc
	if err := snap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("AccumulatedTotals: %w", err)
	}
	if !t.Started {
		return nil, nil
	}
	out := make(ninecat.ActualTotals, len(t.Values))
	for id, v := range t.Values {
		if c, ok := ninecat.CategoryByStatID(id); ok {
			out[c] = v
		}
	}
	return out, nil
}

// AvailabilityWindows reads the team-week's transaction accounting. A
// missing document means no mid-week moves.
func (f *Fire) AvailabilityWindows(ctx context.Context, league, team string, _ ninecat.WeekRange) (map[string]time.Time, map[string]ninecat.ILWindow, error) {
	snap, err := f.team(league, team).Collection(WindowsCollection).Doc("current").Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("AvailabilityWindows: %w", wrapAuth(err))
	}
	var w WindowsDoc
	if err := snap.DataTo(&w); err != nil {
		return nil, nil, fmt.Errorf("AvailabilityWindows: %w", err)
	}
	il := make(map[string]ninecat.ILWindow, len(w.IL))
	for _, d := range w.IL {
		window := ninecat.ILWindow{PlacedOn: ninecat.Day(d.PlacedOn)}
		if d.RemovedOn != nil {
			removed := ninecat.Day(*d.RemovedOn)
			window.RemovedOn = &removed
		}
		il[d.PlayerID] = window
	}
	acquired := make(map[string]time.Time, len(w.Acquired))
	for id, t := range w.Acquired {
		acquired[id] = ninecat.Day(t)
	}
	return acquired, il, nil
}

// DaySchedule reads the league game schedule over a date range. Days absent
// from the collection stay absent from the result.
func (f *Fire) DaySchedule(ctx context.Context, r ninecat.WeekRange) (ninecat.DaySchedule, error) {
	q := f.Client.Collection(ScheduleCollection).
		Where("date", ">=", r.Start).
		Where("date", "<=", r.End)
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := ninecat.DaySchedule{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("DaySchedule: %w", wrapAuth(err))
		}
		var d ScheduleDayDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("DaySchedule: %w", err)
		}
		teams := ninecat.NewTeamSet()
		for _, code := range d.Teams {
			teams[NormalizeTricode(code)] = struct{}{}
		}
		out.Set(ninecat.Day(d.Date), teams)
	}
	return out, nil
}
