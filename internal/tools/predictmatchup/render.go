package predictmatchup

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

func renderPrediction(pred *ninecat.MatchupPrediction) {
	title := fmt.Sprintf("Week %d: %s vs %s", pred.Week.Number, pred.TeamA.TeamName, pred.TeamB.TeamName)
	if pred.Final {
		title += " (final)"
	}
	fmt.Println(title)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", pred.TeamA.TeamName, pred.TeamB.TeamName, "Winner", "Confidence", "Likelihood"})
	for _, c := range ninecat.Categories {
		r := pred.Categories[c]
		t.AppendRow(table.Row{
			string(c),
			formatCategory(c, r.A),
			formatCategory(c, r.B),
			winnerName(r.Winner, pred.TeamA.TeamName, pred.TeamB.TeamName),
			fmt.Sprintf("%0.2f", r.Confidence),
			fmt.Sprintf("%0.4f", r.Likelihood),
		})
	}
	t.AppendFooter(table.Row{"Score", pred.Score.A, pred.Score.B, winnerName(pred.Score.Winner(), pred.TeamA.TeamName, pred.TeamB.TeamName), "", ""})
	t.SetStyle(table.StyleLight)
	t.Render()

	for _, side := range []*ninecat.TeamWeekProjection{&pred.TeamA, &pred.TeamB} {
		renderRoster(side)
	}

	if pred.Baseline != nil {
		fmt.Printf("Preseason-style baseline score: %d-%d\n", pred.Baseline.Score.A, pred.Baseline.Score.B)
	}
}

func renderRoster(proj *ninecat.TeamWeekProjection) {
	if len(proj.Players) == 0 {
		return
	}
	fmt.Printf("%s: %d games remaining\n", proj.TeamName, proj.RemainingGames)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Player", "Team", "Slot", "Games", "PTS", "REB", "AST", "Status"})
	var injured []ninecat.PlayerProjection
	for _, p := range proj.Players {
		if p.Multiplier == 0 {
			injured = append(injured, p)
			continue
		}
		status := p.Status
		if p.Multiplier < 1 {
			status = fmt.Sprintf("%s (x%0.2f)", p.Status, p.Multiplier)
		}
		t.AppendRow(table.Row{
			p.Name,
			p.Team,
			string(p.Slot),
			p.Games,
			fmt.Sprintf("%0.1f", p.Projected[ninecat.Points]),
			fmt.Sprintf("%0.1f", p.Projected[ninecat.Rebounds]),
			fmt.Sprintf("%0.1f", p.Projected[ninecat.Assists]),
			status,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	if len(injured) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Not Counted", "Team", "Slot", "Status", "Note"})
		for _, p := range injured {
			t.AppendRow(table.Row{p.Name, p.Team, string(p.Slot), p.Status, p.Note})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
	}
}

func renderSpan(span *ninecat.SpanProjection) {
	fmt.Printf("%s: weeks %d-%d, %d games remaining\n", span.Team.Name, span.FromWeek, span.ToWeek, span.Remaining)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Projected"})
	for _, c := range ninecat.Categories {
		t.AppendRow(table.Row{string(c), formatCategory(c, span.Totals[c])})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func formatCategory(c ninecat.Category, v float64) string {
	if c.Percentage() {
		return fmt.Sprintf("%0.1f%%", v)
	}
	return fmt.Sprintf("%0.1f", v)
}

func winnerName(s ninecat.Side, a, b string) string {
	switch s {
	case ninecat.SideA:
		return a
	case ninecat.SideB:
		return b
	}
	return "tie"
}
