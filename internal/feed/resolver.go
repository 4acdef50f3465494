package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// Resolver chains stat sources in preference order: the first source with a
// line for the player wins. Only a source failure stops the chain; a plain
// miss falls through to the next source, and a miss everywhere is
// ErrNoStats so the projection can fall back to roster-embedded averages.
type Resolver []ninecat.StatSource

// PlayerStats resolves a player's stat line through the chain.
func (r Resolver) PlayerStats(ctx context.Context, playerID string) (ninecat.StatLine, error) {
	for _, src := range r {
		line, err := src.PlayerStats(ctx, playerID)
		switch {
		case err == nil:
			return line, nil
		case errors.Is(err, ninecat.ErrNoStats):
			continue
		default:
			return ninecat.StatLine{}, fmt.Errorf("PlayerStats: %w", err)
		}
	}
	return ninecat.StatLine{}, ninecat.ErrNoStats
}

// WithStats derives a feed whose stat lookups go through the given chain
// instead of the base feed's own. The base feed is usually the first link.
type statOverride struct {
	ninecat.Feed
	chain Resolver
}

func WithStats(base ninecat.Feed, chain Resolver) ninecat.Feed {
	return statOverride{Feed: base, chain: chain}
}

func (s statOverride) PlayerStats(ctx context.Context, playerID string) (ninecat.StatLine, error) {
	return s.chain.PlayerStats(ctx, playerID)
}
