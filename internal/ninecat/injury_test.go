package ninecat

import "testing"

func TestInjuryProbability(t *testing.T) {
	m := DefaultInjuryModel()

	cases := []struct {
		status string
		want   float64
	}{
		{"Out", 0},
		{"O", 0},
		{"INJ", 0},
		{"SUSP", 0},
		{"Suspended", 0},
		{"Doubtful", 0},
		{"D", 0},
		{"IL", 0},
		{"IL+", 0},
		{"Probable", 0.85},
		{"P", 0.85},
		{"Questionable", 0.45},
		{"Q", 0.45},
		{"GTD", 0.45},
		{"Game-Time Decision", 0.45},
		{"DTD", 0.65},
		{"Day-to-Day", 0.65},
		{"", 1},
		{"Healthy", 1},
		{"  Healthy  ", 1},
	}
	for _, c := range cases {
		if got := m.Probability(c.status); got != c.want {
			t.Errorf("Probability(%q): expected %v, got %v", c.status, c.want, got)
		}
	}
}

func TestInjuryProbabilityFailsOpen(t *testing.T) {
	m := DefaultInjuryModel()

	// The platform grows new status codes from time to time; an unknown
	// code must count the player, not zero them out.
	for _, status := range []string{"NWT", "Personal", "Rest Day", "???"} {
		if got := m.Probability(status); got != 1.0 {
			t.Errorf("Probability(%q): expected 1.0, got %v", status, got)
		}
	}
}
