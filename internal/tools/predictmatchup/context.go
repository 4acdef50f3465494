package predictmatchup

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/reallyasi9/hooppickem/internal/cache"
	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

type Context struct {
	context.Context

	Predictor *ninecat.Predictor
	Cache     *cache.Predictions
	Log       *logrus.Logger

	League string
	Team   string
	Week   int

	// Interactive prompts for missing league and team identifiers instead
	// of failing.
	Interactive bool

	// Output is an optional spreadsheet destination, a local path or a
	// gs:// URL.
	Output string

	// NoCache bypasses cached predictions without invalidating them.
	NoCache bool
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
