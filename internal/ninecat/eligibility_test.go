package ninecat

import (
	"fmt"
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func healthyRoster(n int, team string) []PlayerRecord {
	roster := make([]PlayerRecord, n)
	for i := range roster {
		roster[i] = PlayerRecord{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("Player %d", i),
			Team: team,
			Slot: SlotBench,
		}
	}
	return roster
}

func TestCountDayCap(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	for _, size := range []int{0, 1, 10, 11, 14, 30} {
		counted := sim.CountDay(d, healthyRoster(size, "BOS"), sched, RemainingDay)
		want := size
		if want > DefaultDailyCap {
			want = DefaultDailyCap
		}
		if len(counted) != want {
			t.Errorf("roster of %d: expected %d counted, got %d", size, want, len(counted))
		}
	}
}

func TestCountDayRosterOrder(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	counted := sim.CountDay(d, healthyRoster(12, "BOS"), sched, RemainingDay)
	for i, p := range counted {
		if want := fmt.Sprintf("p%d", i); p.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, p.ID)
		}
	}
}

func TestCountDayUnknownDaySkipped(t *testing.T) {
	sim := NewSimulator()
	d := day("2026-01-05")

	// No entry at all: the schedule source had no data. Do not guess.
	if counted := sim.CountDay(d, healthyRoster(10, "BOS"), DaySchedule{}, RemainingDay); len(counted) != 0 {
		t.Errorf("unknown day: expected 0 counted, got %d", len(counted))
	}

	// Present but empty: confirmed league-wide off day.
	sched := DaySchedule{}
	sched.Set(d, NewTeamSet())
	if counted := sim.CountDay(d, healthyRoster(10, "BOS"), sched, RemainingDay); len(counted) != 0 {
		t.Errorf("off day: expected 0 counted, got %d", len(counted))
	}
}

func TestCountDayTeamNotPlaying(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("LAL", "GSW"))

	if counted := sim.CountDay(d, healthyRoster(5, "BOS"), sched, RemainingDay); len(counted) != 0 {
		t.Errorf("team without a game: expected 0 counted, got %d", len(counted))
	}
}

func TestCountDayInjuredExcluded(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	roster := healthyRoster(3, "BOS")
	roster[0].Status = "Out"
	roster[2].Status = "Questionable"

	counted := sim.CountDay(d, roster, sched, RemainingDay)
	if len(counted) != 2 {
		t.Fatalf("expected 2 counted, got %d", len(counted))
	}
	if counted[0].ID != "p1" || counted[1].ID != "p2" {
		t.Errorf("expected p1 and p2 counted, got %s and %s", counted[0].ID, counted[1].ID)
	}
}

func TestCountDayAcquisitionDate(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	before := day("2026-01-05")
	after := day("2026-01-07")
	sched.Set(before, NewTeamSet("BOS"))
	sched.Set(after, NewTeamSet("BOS"))

	roster := healthyRoster(1, "BOS")
	acq := day("2026-01-06")
	roster[0].AcquiredOn = &acq

	if counted := sim.CountDay(before, roster, sched, RemainingDay); len(counted) != 0 {
		t.Errorf("day before acquisition: expected 0 counted, got %d", len(counted))
	}
	if counted := sim.CountDay(after, roster, sched, RemainingDay); len(counted) != 1 {
		t.Errorf("day after acquisition: expected 1 counted, got %d", len(counted))
	}
}

func TestCountDayInactiveList(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	roster := healthyRoster(1, "BOS")
	roster[0].Slot = SlotIL

	for _, mode := range []Mode{PastDay, RemainingDay} {
		if counted := sim.CountDay(d, roster, sched, mode); len(counted) != 0 {
			t.Errorf("mode %v: IL slot with no window: expected 0 counted, got %d", mode, len(counted))
		}
	}
}

func TestCountDayInactiveListWindow(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	early := day("2026-01-05")
	late := day("2026-01-08")
	sched.Set(early, NewTeamSet("BOS"))
	sched.Set(late, NewTeamSet("BOS"))

	// Placed on the IL mid-week: the earlier day counted when it was played,
	// and reconstructing the past must still count it. Projecting forward
	// never counts an IL player.
	roster := healthyRoster(1, "BOS")
	roster[0].Slot = SlotILPlus
	roster[0].IL = &ILWindow{PlacedOn: day("2026-01-07")}

	if counted := sim.CountDay(early, roster, sched, PastDay); len(counted) != 1 {
		t.Errorf("past day before placement: expected 1 counted, got %d", len(counted))
	}
	if counted := sim.CountDay(late, roster, sched, PastDay); len(counted) != 0 {
		t.Errorf("past day after placement: expected 0 counted, got %d", len(counted))
	}
	if counted := sim.CountDay(early, roster, sched, RemainingDay); len(counted) != 0 {
		t.Errorf("remaining day: expected 0 counted, got %d", len(counted))
	}
}

func TestCountDayFormerILPlayer(t *testing.T) {
	sim := NewSimulator()
	sched := DaySchedule{}
	during := day("2026-01-06")
	after := day("2026-01-08")
	sched.Set(during, NewTeamSet("BOS"))
	sched.Set(after, NewTeamSet("BOS"))

	// Back in an active slot now, but was on the IL earlier in the week.
	roster := healthyRoster(1, "BOS")
	roster[0].Slot = SlotUtil
	removed := day("2026-01-07")
	roster[0].IL = &ILWindow{PlacedOn: day("2026-01-05"), RemovedOn: &removed}

	if counted := sim.CountDay(during, roster, sched, PastDay); len(counted) != 0 {
		t.Errorf("day inside IL window: expected 0 counted, got %d", len(counted))
	}
	if counted := sim.CountDay(after, roster, sched, PastDay); len(counted) != 1 {
		t.Errorf("day after IL removal: expected 1 counted, got %d", len(counted))
	}
}

func TestOrderStartersFirst(t *testing.T) {
	sim := NewSimulator()
	sim.Order = OrderStartersFirst{}
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	roster := healthyRoster(12, "BOS")
	// Everyone is bench except two starters buried at the end.
	roster[10].Slot = SlotPG
	roster[11].Slot = SlotC

	counted := sim.CountDay(d, roster, sched, RemainingDay)
	if len(counted) != DefaultDailyCap {
		t.Fatalf("expected %d counted, got %d", DefaultDailyCap, len(counted))
	}
	if counted[0].ID != "p10" || counted[1].ID != "p11" {
		t.Errorf("expected starters p10, p11 first, got %s, %s", counted[0].ID, counted[1].ID)
	}
}

func TestOrderingIrrelevantUnderCap(t *testing.T) {
	sched := DaySchedule{}
	d := day("2026-01-05")
	sched.Set(d, NewTeamSet("BOS"))

	roster := healthyRoster(8, "BOS")
	roster[3].Slot = SlotPG

	for _, ord := range []Ordering{OrderRoster{}, OrderStartersFirst{}} {
		sim := NewSimulator()
		sim.Order = ord
		if counted := sim.CountDay(d, roster, sched, RemainingDay); len(counted) != 8 {
			t.Errorf("%T: expected all 8 counted, got %d", ord, len(counted))
		}
	}
}
