package ninecat

import (
	"math"

	"github.com/atgjack/prob"
)

// Side identifies a winner of a category or matchup.
type Side int

const (
	Tie Side = iota
	SideA
	SideB
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	}
	return "tie"
}

// likelihoodSigma is the spread of the fixed Normal used to turn a relative
// category margin into a win likelihood for display. It is a constant
// mapping, not a calibrated model.
const likelihoodSigma = 0.15

// CategoryResult is the comparison outcome for a single category.
type CategoryResult struct {
	A, B       float64
	Winner     Side
	Confidence float64 // min(|a-b| / (|a|+|b|), 1); 0.5 when both are zero
	Likelihood float64 // Normal CDF of the relative margin, side A's win chance
}

// Score is the predicted category tally (ties count toward neither side).
type Score struct {
	A, B int
}

// Winner returns which side takes the matchup on categories won.
func (s Score) Winner() Side {
	switch {
	case s.A > s.B:
		return SideA
	case s.B > s.A:
		return SideB
	}
	return Tie
}

// Comparison is the category-by-category outcome of one matchup.
type Comparison struct {
	Categories map[Category]CategoryResult
	Score      Score
}

// Compare pits two blended team projections against each other. It is pure
// and total: any pair of projections yields a result. Turnovers are negated
// before comparison so higher-wins logic applies uniformly.
func Compare(a, b TeamWeekProjection) Comparison {
	dist := prob.Normal{Mu: 0, Sigma: likelihoodSigma}
	out := Comparison{Categories: make(map[Category]CategoryResult, len(Categories))}
	for _, c := range Categories {
		va := a.Totals[c]
		vb := b.Totals[c]
		cmpA, cmpB := va, vb
		if c.LowerWins() {
			cmpA, cmpB = -va, -vb
		}

		r := CategoryResult{A: va, B: vb}
		switch {
		case cmpA > cmpB:
			r.Winner = SideA
			out.Score.A++
		case cmpB > cmpA:
			r.Winner = SideB
			out.Score.B++
		default:
			r.Winner = Tie
		}

		denom := math.Abs(cmpA) + math.Abs(cmpB)
		if denom > 0 {
			margin := (cmpA - cmpB) / denom
			r.Confidence = math.Min(math.Abs(margin), 1.0)
			r.Likelihood = dist.Cdf(margin)
		} else {
			r.Confidence = 0.5
			r.Likelihood = 0.5
		}
		out.Categories[c] = r
	}
	return out
}
