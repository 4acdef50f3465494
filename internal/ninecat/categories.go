package ninecat

// Category is one of the nine scoring categories of a standard 9-CAT
// head-to-head fantasy basketball league.
type Category string

const (
	FGPct     Category = "FG%"
	FTPct     Category = "FT%"
	ThreePM   Category = "3PTM"
	Points    Category = "PTS"
	Rebounds  Category = "REB"
	Assists   Category = "AST"
	Steals    Category = "STL"
	Blocks    Category = "BLK"
	Turnovers Category = "TO"
)

// Categories lists all nine categories in the platform's display order.
var Categories = []Category{FGPct, FTPct, ThreePM, Points, Rebounds, Assists, Steals, Blocks, Turnovers}

// CountingCategories are the categories summed game over game. The two
// percentage categories are reconstructed from makes and attempts instead.
var CountingCategories = []Category{ThreePM, Points, Rebounds, Assists, Steals, Blocks, Turnovers}

// LowerWins reports whether a smaller total wins the category.
// Turnovers is the only such category in the 9-CAT model.
func (c Category) LowerWins() bool {
	return c == Turnovers
}

// Percentage reports whether the category is a rate statistic.
func (c Category) Percentage() bool {
	return c == FGPct || c == FTPct
}

// StatID returns the platform's numeric stat identifier for the category.
// Accumulated matchup totals and roster-embedded stat maps arrive keyed by
// these identifiers rather than by display name.
func (c Category) StatID() string {
	return statIDs[c]
}

// StatIDGamesPlayed is the platform stat identifier for games played.
const StatIDGamesPlayed = "0"

var statIDs = map[Category]string{
	FGPct:     "5",
	FTPct:     "8",
	ThreePM:   "10",
	Points:    "12",
	Rebounds:  "15",
	Assists:   "16",
	Steals:    "17",
	Blocks:    "18",
	Turnovers: "19",
}

// CategoryByStatID resolves a platform stat identifier back to a category.
func CategoryByStatID(id string) (Category, bool) {
	for c, sid := range statIDs {
		if sid == id {
			return c, true
		}
	}
	return "", false
}

// NormalizePercent converts a rate value to the 0-100 scale. Sources are
// inconsistent about whether percentages arrive as decimals (0.482) or as
// percents (48.2); values below 1 are treated as decimals.
func NormalizePercent(v float64) float64 {
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

// NormalizeFraction converts a rate value to the 0-1 scale using the same
// auto-detection rule as NormalizePercent.
func NormalizeFraction(v float64) float64 {
	if v >= 1 {
		return v / 100
	}
	return v
}
