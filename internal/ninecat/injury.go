package ninecat

import "strings"

// InjuryModel maps a platform injury status string to the probability that
// the player suits up for a given game. It is a static table, not a learned
// model: the platform publishes a small vocabulary of statuses and the
// multipliers are tunable configuration.
type InjuryModel map[string]float64

// DefaultInjuryModel returns the standard status table. Abbreviated and
// long-form statuses map to the same value. Inactive-list designations are
// hard zeros regardless of the underlying injury.
func DefaultInjuryModel() InjuryModel {
	return InjuryModel{
		"Out":                0.0,
		"O":                  0.0,
		"INJ":                0.0,
		"Doubtful":           0.0,
		"D":                  0.0,
		"SUSP":               0.0,
		"Suspended":          0.0,
		"IL":                 0.0,
		"IL+":                0.0,
		"Probable":           0.85,
		"P":                  0.85,
		"Questionable":       0.45,
		"Q":                  0.45,
		"GTD":                0.45,
		"Game-Time Decision": 0.45,
		"DTD":                0.65,
		"Day-to-Day":         0.65,
		"Healthy":            1.0,
		"":                   1.0,
	}
}

// Probability returns the play probability for a status string.
// Unrecognized statuses count as fully healthy: the platform adds status
// codes from time to time and skipping a player on an unknown code would
// silently zero out a healthy contributor.
func (m InjuryModel) Probability(status string) float64 {
	if p, ok := m[strings.TrimSpace(status)]; ok {
		return p
	}
	return 1.0
}
