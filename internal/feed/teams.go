package feed

import (
	"fmt"
	"sort"
	"strings"

	edlib "github.com/hbollon/go-edlib"
)

// tricodeAliases maps the abbreviations some feeds emit to the codes the
// schedule data uses.
var tricodeAliases = map[string]string{
	"GS":  "GSW",
	"NO":  "NOP",
	"NY":  "NYK",
	"PHX": "PHO",
	"SA":  "SAS",
}

// NormalizeTricode canonicalizes a team abbreviation: trimmed, uppercased,
// and mapped through the known alias table.
func NormalizeTricode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := tricodeAliases[code]; ok {
		return canonical
	}
	return code
}

// TeamNames resolves free-text team names to tricodes, for sources that
// spell out "Golden State Warriors" instead of an abbreviation.
type TeamNames struct {
	names  []string
	byName map[string]string
}

// NewTeamNames builds a resolver from full name to tricode. Name keys are
// matched case-insensitively.
func NewTeamNames(byName map[string]string) *TeamNames {
	names := make([]string, 0, len(byName))
	lowered := make(map[string]string, len(byName))
	for name, code := range byName {
		names = append(names, name)
		lowered[strings.ToLower(name)] = NormalizeTricode(code)
	}
	sort.Strings(names)
	return &TeamNames{names: names, byName: lowered}
}

// Lookup resolves a name to a tricode, falling back to fuzzy matching when
// the spelling is close but not exact. Ambiguous names fail with the
// closest candidates in the error.
func (t *TeamNames) Lookup(name string) (string, error) {
	if code, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code, nil
	}
	closest, err := edlib.FuzzySearchSet(name, t.names, 3, edlib.Jaccard)
	if err != nil {
		return "", fmt.Errorf("Lookup: no team matching '%s'", name)
	}
	if len(closest) > 0 && closest[0] != "" {
		if code, ok := t.byName[strings.ToLower(closest[0])]; ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("Lookup: no team matching '%s': best matches are %v", name, closest)
}

// franchiseNames covers every NBA franchise, keyed by the full name the
// platform's player pages spell out.
var franchiseNames = NewTeamNames(map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHO",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
})

// ResolveTeamCode canonicalizes a team field that may hold either an
// abbreviation or a spelled-out franchise name.
func ResolveTeamCode(team string) string {
	team = strings.TrimSpace(team)
	if len(team) <= 3 {
		return NormalizeTricode(team)
	}
	if code, err := franchiseNames.Lookup(team); err == nil {
		return code
	}
	return NormalizeTricode(team)
}
