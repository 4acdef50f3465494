package feed

import "errors"

// ErrNotAuthenticated reports a data source that refused credentials. The
// tools give it a friendlier rendering than a generic fetch failure.
var ErrNotAuthenticated = errors.New("not authenticated with data source")

// ErrNoData reports a league or week the source has never ingested.
var ErrNoData = errors.New("no data for league")
