package predictall

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
	Week   int

	// NoProgress suppresses the progress bar for non-interactive runs.
	NoProgress bool

	// NoCache bypasses cached predictions without invalidating them.
	NoCache bool
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx}
}
