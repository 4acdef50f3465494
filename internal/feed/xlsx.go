package feed

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/tealeg/xlsx"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// SeasonStats is a StatSource over a season-totals spreadsheet export, the
// offline stand-in when no stats have been ingested for a player. Lines are
// season totals with a games-played column, not per-game averages.
type SeasonStats struct {
	lines map[string]ninecat.StatLine
}

// header columns recognized in the export. Shooting splits come from the
// makes/attempts pair columns; percentage columns in the sheet are ignored
// because they are always recomputed from the splits.
const (
	colID       = "id"
	colPlayer   = "player"
	colGames    = "gp"
	colFGSplits = "fgm/a"
	colFTSplits = "ftm/a"
)

// OpenSeasonStats slurps and parses a season-totals export from a local
// path or a gs:// URL.
func OpenSeasonStats(ctx context.Context, path string) (*SeasonStats, error) {
	reader, err := openFileOrGSReader(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("OpenSeasonStats: failed to open '%s': %w", path, err)
	}
	defer reader.Close()

	slurp, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("OpenSeasonStats: failed to read '%s': %w", path, err)
	}
	return ParseSeasonStats(slurp)
}

// ParseSeasonStats parses an already-slurped export.
func ParseSeasonStats(slurp []byte) (*SeasonStats, error) {
	xl, err := xlsx.OpenBinary(slurp)
	if err != nil {
		return nil, fmt.Errorf("ParseSeasonStats: %w", err)
	}
	if len(xl.Sheets) == 0 {
		return nil, fmt.Errorf("ParseSeasonStats: workbook has no sheets")
	}
	sheet := xl.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("ParseSeasonStats: sheet '%s' is empty", sheet.Name)
	}

	// Column positions come from the header row, so reordered exports still
	// parse. Stat columns are recognized by category abbreviation.
	type colKind struct {
		stat    ninecat.Category
		special string
	}
	columns := make(map[int]colKind)
	for i, cell := range sheet.Rows[0].Cells {
		name := strings.ToLower(strings.TrimSpace(cell.Value))
		switch name {
		case colID, colPlayer, colGames, colFGSplits, colFTSplits:
			columns[i] = colKind{special: name}
			continue
		}
		if c, ok := categoryByName(name); ok {
			columns[i] = colKind{stat: c}
		}
	}

	s := &SeasonStats{lines: make(map[string]ninecat.StatLine)}
	for irow, row := range sheet.Rows[1:] {
		var id string
		line := ninecat.StatLine{Values: make(map[string]float64)}
		for icol, cell := range row.Cells {
			kind, ok := columns[icol]
			if !ok {
				continue
			}
			var err error
			switch kind.special {
			case colID:
				id = strings.TrimSpace(cell.Value)
			case colPlayer:
				// display only
			case colGames:
				line.GamesPlayed, err = ParseStatValue(cell.Value)
			case colFGSplits:
				line.FGMade, line.FGAttempted, err = ParseFraction(cell.Value)
				line.HasShooting = line.HasShooting || line.FGAttempted > 0
			case colFTSplits:
				line.FTMade, line.FTAttempted, err = ParseFraction(cell.Value)
				line.HasShooting = line.HasShooting || line.FTAttempted > 0
			default:
				var v float64
				v, err = ParseStatValue(cell.Value)
				line.Values[kind.stat.StatID()] = v
			}
			if err != nil {
				return nil, fmt.Errorf("ParseSeasonStats: row %d: %w", irow+2, err)
			}
		}
		if id == "" {
			continue
		}
		s.lines[id] = line
	}
	return s, nil
}

// categoryByName matches a header label to a category, tolerating the "TOV"
// spelling some exports use for turnovers.
func categoryByName(name string) (ninecat.Category, bool) {
	upper := strings.ToUpper(name)
	if upper == "TOV" {
		return ninecat.Turnovers, true
	}
	for _, c := range ninecat.Categories {
		if upper == string(c) {
			return c, true
		}
	}
	return "", false
}

// PlayerStats returns the spreadsheet line for a player.
func (s *SeasonStats) PlayerStats(_ context.Context, playerID string) (ninecat.StatLine, error) {
	line, ok := s.lines[playerID]
	if !ok {
		return ninecat.StatLine{}, ninecat.ErrNoStats
	}
	return line, nil
}

// Len reports the number of player lines loaded.
func (s *SeasonStats) Len() int {
	return len(s.lines)
}

func openFileOrGSReader(ctx context.Context, f string) (io.ReadCloser, error) {
	u, err := url.Parse(f)
	if err != nil {
		return nil, err
	}
	var r io.ReadCloser
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		bucket := gsClient.Bucket(u.Host)
		obj := bucket.Object(strings.Trim(u.Path, "/"))
		r, err = obj.NewReader(ctx)
		if err != nil {
			return nil, err
		}

	case "file":
		fallthrough
	case "":
		r, err = os.Open(u.Path)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unable to determine how to open '%s'", f)
	}

	return r, nil
}
