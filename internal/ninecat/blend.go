package ninecat

import "time"

// Attempt-estimation constants. Most sources publish percentages without
// makes/attempts, so attempts are estimated from scoring volume: league-wide,
// a point of scoring costs about 1/2.1 field-goal attempts and 1/6 free-throw
// attempts. Players with no scoring data get a typical starter's volume.
const (
	pointsPerFGAttempt = 2.1
	pointsPerFTAttempt = 6.0
	fallbackFGAttempts = 8.0
	fallbackFTAttempts = 3.0
	fallbackFGPct      = 0.45
	fallbackFTPct      = 0.75
)

// ShootingTotals accumulates estimated makes and attempts for the two rate
// categories. Percentage totals are always derived from these sums, never
// averaged, so they are kept alongside the category totals for later
// aggregation (multi-week spans recombine them the same way).
type ShootingTotals struct {
	FGMade, FGAttempted float64
	FTMade, FTAttempted float64
}

// Add accumulates another set of totals into s.
func (s *ShootingTotals) Add(o ShootingTotals) {
	s.FGMade += o.FGMade
	s.FGAttempted += o.FGAttempted
	s.FTMade += o.FTMade
	s.FTAttempted += o.FTAttempted
}

func pct(makes, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return makes / attempts * 100
}

// simTotals is the output of simulating one day-bucket.
type simTotals struct {
	counts    map[Category]float64
	shoot     ShootingTotals
	games     int
	perPlayer map[string]int
}

// ActualTotals is a team's accumulated category totals as reported by the
// platform for the days of the week already played. Nil means the week has
// not started for this team and nothing has accrued.
type ActualTotals map[Category]float64

// PlayerProjection is a per-player display line: how many remaining games
// the simulator counted for the player and what those games are worth.
type PlayerProjection struct {
	PlayerID   string
	Name       string
	Team       string
	Slot       RosterSlot
	Status     string
	Note       string
	Multiplier float64
	Games      int
	Projected  map[Category]float64
}

// TeamWeekProjection is one side of a matchup: the blended category totals
// for the full week plus the per-player breakdown of the remaining days.
type TeamWeekProjection struct {
	TeamID         string
	TeamName       string
	Totals         map[Category]float64
	Shooting       ShootingTotals
	RemainingGames int
	Players        []PlayerProjection
}

// Blender combines actual accumulated stats with simulated contributions
// from the days still to be played.
type Blender struct {
	Sim *Simulator
}

// NewBlender returns a Blender over a default simulator.
func NewBlender() *Blender {
	return &Blender{Sim: NewSimulator()}
}

// simulate runs the eligibility simulator over a bucket of days and
// accumulates one game's worth of stats, scaled by injury probability, for
// every counted player-day.
func (b *Blender) simulate(days []time.Time, roster []PlayerRecord, sched DaySchedule, mode Mode) simTotals {
	out := simTotals{
		counts:    make(map[Category]float64, len(CountingCategories)),
		perPlayer: make(map[string]int),
	}
	for _, day := range days {
		for _, p := range b.Sim.CountDay(day, roster, sched, mode) {
			prob := b.Sim.Injuries.Probability(p.Status)
			out.games++
			out.perPlayer[p.ID]++
			for _, c := range CountingCategories {
				out.counts[c] += p.Stats.PerGame(c) * prob
			}
			out.shoot.Add(playerGameShooting(p.Stats, prob))
		}
	}
	return out
}

// playerGameShooting returns one game's worth of makes and attempts for a
// player. Actual splits are used when the source exposes them; otherwise
// attempts are estimated from scoring and converted to makes through the
// player's shooting percentages.
func playerGameShooting(line StatLine, prob float64) ShootingTotals {
	if line.HasShooting {
		g := 1.0
		if !line.Averaged {
			g = line.games()
		}
		return ShootingTotals{
			FGMade:      line.FGMade / g * prob,
			FGAttempted: line.FGAttempted / g * prob,
			FTMade:      line.FTMade / g * prob,
			FTAttempted: line.FTAttempted / g * prob,
		}
	}

	pts := line.PerGame(Points)
	fga, fta := estimateAttempts(pts)

	fgPct := NormalizeFraction(line.Values[FGPct.StatID()])
	if fgPct <= 0 {
		fgPct = fallbackFGPct
	}
	ftPct := NormalizeFraction(line.Values[FTPct.StatID()])
	if ftPct <= 0 {
		ftPct = fallbackFTPct
	}

	return ShootingTotals{
		FGMade:      fga * fgPct * prob,
		FGAttempted: fga * prob,
		FTMade:      fta * ftPct * prob,
		FTAttempted: fta * prob,
	}
}

// estimateAttempts estimates per-game field-goal and free-throw attempts
// from per-game scoring.
func estimateAttempts(pts float64) (fga, fta float64) {
	if pts > 0 {
		return pts / pointsPerFGAttempt, pts / pointsPerFTAttempt
	}
	return fallbackFGAttempts, fallbackFTAttempts
}

// actualShooting reconstructs the week-to-date makes and attempts implied by
// a team's accumulated points and shooting percentages, using the same
// estimation formulas applied to simulated days so past and remaining
// contributions combine on equal footing.
func actualShooting(actual ActualTotals) ShootingTotals {
	pts := actual[Points]
	if pts <= 0 {
		return ShootingTotals{}
	}
	fga := pts / pointsPerFGAttempt
	fta := pts / pointsPerFTAttempt
	return ShootingTotals{
		FGMade:      fga * NormalizeFraction(actual[FGPct]),
		FGAttempted: fga,
		FTMade:      fta * NormalizeFraction(actual[FTPct]),
		FTAttempted: fta,
	}
}

// Blend produces a team's full-week projection. Past days are simulated
// only as a stand-in: as soon as the platform reports accumulated totals,
// those replace the past-day simulation outright and only the remaining-day
// simulation is added on top. Percentage categories are never averaged;
// they are recombined from summed makes and attempts.
func (b *Blender) Blend(team TeamWeekIdentity, roster []PlayerRecord, sched DaySchedule, past, remaining []time.Time, actual ActualTotals) TeamWeekProjection {
	pastSim := b.simulate(past, roster, sched, PastDay)
	remSim := b.simulate(remaining, roster, sched, RemainingDay)

	totals := make(map[Category]float64, len(Categories))
	for _, c := range CountingCategories {
		if actual != nil {
			totals[c] = actual[c] + remSim.counts[c]
		} else {
			totals[c] = pastSim.counts[c] + remSim.counts[c]
		}
	}

	var combined ShootingTotals
	if actual != nil {
		combined = actualShooting(actual)
	} else {
		combined = pastSim.shoot
	}
	combined.Add(remSim.shoot)
	totals[FGPct] = pct(combined.FGMade, combined.FGAttempted)
	totals[FTPct] = pct(combined.FTMade, combined.FTAttempted)

	return TeamWeekProjection{
		TeamID:         team.ID,
		TeamName:       team.Name,
		Totals:         totals,
		Shooting:       combined,
		RemainingGames: remSim.games,
		Players:        playerProjections(roster, remSim.perPlayer, b.Sim.Injuries),
	}
}

// TeamWeekIdentity names the team a projection belongs to.
type TeamWeekIdentity struct {
	ID   string
	Name string
}

// playerProjections builds the per-player display lines from the
// remaining-day game counts.
func playerProjections(roster []PlayerRecord, games map[string]int, injuries InjuryModel) []PlayerProjection {
	out := make([]PlayerProjection, len(roster))
	for i, p := range roster {
		prob := injuries.Probability(p.Status)
		g := games[p.ID]
		proj := make(map[Category]float64, len(Categories))
		for _, c := range CountingCategories {
			proj[c] = p.Stats.PerGame(c) * float64(g) * prob
		}
		proj[FGPct] = p.Stats.PerGame(FGPct)
		proj[FTPct] = p.Stats.PerGame(FTPct)
		out[i] = PlayerProjection{
			PlayerID:   p.ID,
			Name:       p.Name,
			Team:       p.Team,
			Slot:       p.Slot,
			Status:     p.Status,
			Note:       p.Note,
			Multiplier: prob,
			Games:      g,
			Projected:  proj,
		}
	}
	return out
}
