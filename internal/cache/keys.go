package cache

import (
	"fmt"
	"strings"

	"github.com/segmentio/fasthash/jody"
)

// Key builds a stable cache key from its parts. The parts are hashed so
// user-supplied league and team identifiers can never collide with the
// key namespace separators of a backend.
func Key(kind string, parts ...string) string {
	h := jody.HashString64(kind)
	for _, p := range parts {
		h = jody.AddString64(h, strings.ToLower(p))
	}
	return fmt.Sprintf("hooppickem:%s:%016x", kind, h)
}

// MatchupKey is the cache key for a single-pairing prediction.
func MatchupKey(league, team string, week int) string {
	return Key("matchup", league, team, fmt.Sprintf("%d", week))
}

// ScoreboardKey is the cache key for a full-week batch prediction.
func ScoreboardKey(league string, week int) string {
	return Key("scoreboard", league, fmt.Sprintf("%d", week))
}

// SpanKey is the cache key for a multi-week projection.
func SpanKey(league, team string, from, to int) string {
	return Key("span", league, team, fmt.Sprintf("%d-%d", from, to))
}
