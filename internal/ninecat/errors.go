package ninecat

import "errors"

// ErrMatchupNotSet signals that the requested week's pairing has not been
// determined yet (a playoff week whose seeds are still open). Callers must
// be able to tell this apart from a data failure: the right response is
// "check back later", not an error page.
var ErrMatchupNotSet = errors.New("matchup not yet determined")

// ErrNoStats is returned by a stats source that has no data for a player.
// It terminates a fallback chain; the projection then proceeds with the
// roster-embedded stats or, failing that, an all-zero line.
var ErrNoStats = errors.New("no stats for player")
