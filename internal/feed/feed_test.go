package feed

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

func TestNormalizeTricode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BOS", "BOS"},
		{"bos", "BOS"},
		{" lal ", "LAL"},
		{"GS", "GSW"},
		{"NO", "NOP"},
		{"NY", "NYK"},
		{"PHX", "PHO"},
		{"SA", "SAS"},
		{"GSW", "GSW"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeTricode(c.in), "NormalizeTricode(%q)", c.in)
	}
}

func TestTeamNamesLookup(t *testing.T) {
	names := NewTeamNames(map[string]string{
		"Golden State Warriors": "GS",
		"Boston Celtics":        "BOS",
		"New Orleans Pelicans":  "NO",
	})

	code, err := names.Lookup("Boston Celtics")
	require.NoError(t, err)
	assert.Equal(t, "BOS", code)

	// Exact matches normalize aliases too.
	code, err = names.Lookup("golden state warriors")
	require.NoError(t, err)
	assert.Equal(t, "GSW", code)

	// Near-miss spellings resolve by edit distance.
	code, err = names.Lookup("Boston Celtic")
	require.NoError(t, err)
	assert.Equal(t, "BOS", code)
}

func TestResolveTeamCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BOS", "BOS"},
		{" gs ", "GSW"},
		{"Golden State Warriors", "GSW"},
		{"PHOENIX SUNS", "PHO"},
		// Roster pages drop the plural now and then.
		{"Boston Celtic", "BOS"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveTeamCode(c.in), "ResolveTeamCode(%q)", c.in)
	}
}

func TestParseStatValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"0.482", 0.482},
		{" 7 ", 7},
		{"", 0},
		{"-", 0},
	}
	for _, c := range cases {
		got, err := ParseStatValue(c.in)
		require.NoError(t, err, "ParseStatValue(%q)", c.in)
		assert.Equal(t, c.want, got, "ParseStatValue(%q)", c.in)
	}

	_, err := ParseStatValue("abc")
	assert.Error(t, err)
}

func TestParseFraction(t *testing.T) {
	made, att, err := ParseFraction("3/7")
	require.NoError(t, err)
	assert.Equal(t, 3.0, made)
	assert.Equal(t, 7.0, att)

	made, att, err = ParseFraction("-")
	require.NoError(t, err)
	assert.Zero(t, made)
	assert.Zero(t, att)

	_, _, err = ParseFraction("7")
	assert.Error(t, err)
}

type fixedStats map[string]ninecat.StatLine

func (f fixedStats) PlayerStats(_ context.Context, id string) (ninecat.StatLine, error) {
	line, ok := f[id]
	if !ok {
		return ninecat.StatLine{}, ninecat.ErrNoStats
	}
	return line, nil
}

type brokenStats struct{}

func (brokenStats) PlayerStats(context.Context, string) (ninecat.StatLine, error) {
	return ninecat.StatLine{}, assert.AnError
}

func TestResolverPreferenceOrder(t *testing.T) {
	ctx := context.Background()
	primary := fixedStats{"p1": {GamesPlayed: 10}}
	fallback := fixedStats{"p1": {GamesPlayed: 99}, "p2": {GamesPlayed: 20}}
	r := Resolver{primary, fallback}

	line, err := r.PlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, line.GamesPlayed, "first source wins")

	line, err = r.PlayerStats(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 20.0, line.GamesPlayed, "miss falls through")

	_, err = r.PlayerStats(ctx, "p3")
	assert.ErrorIs(t, err, ninecat.ErrNoStats, "miss everywhere")
}

func TestResolverStopsOnFailure(t *testing.T) {
	r := Resolver{brokenStats{}, fixedStats{"p1": {}}}
	_, err := r.PlayerStats(context.Background(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ninecat.ErrNoStats, "a source failure is not a miss")
}

func TestRefresherSkipsOverlappingRuns(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once

	r := &Refresher{
		Run: func(context.Context) error {
			mu.Lock()
			runs++
			mu.Unlock()
			startedOnce.Do(func() { close(started) })
			<-release
			return nil
		},
	}

	done := make(chan struct{})
	go func() {
		r.TryRun(context.Background())
		close(done)
	}()
	<-started

	assert.False(t, r.TryRun(context.Background()), "second run must be skipped while the first is in flight")

	close(release)
	<-done
	assert.True(t, r.TryRun(context.Background()), "runs resume once the first completes")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, runs)
}
