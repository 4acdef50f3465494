package predictmatchup

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	excelize "github.com/xuri/excelize/v2"

	"github.com/reallyasi9/hooppickem/internal/ninecat"
)

// exportPrediction writes the prediction to a spreadsheet at ctx.Output.
func exportPrediction(ctx *Context, pred *ninecat.MatchupPrediction) error {
	xl, err := makePredictionExcelFile(pred)
	if err != nil {
		return fmt.Errorf("exportPrediction: %w", err)
	}

	writer, err := openFileOrGSWriter(ctx, ctx.Output)
	if err != nil {
		return fmt.Errorf("exportPrediction: failed to open '%s': %w", ctx.Output, err)
	}
	defer writer.Close()

	if _, err := xl.WriteTo(writer); err != nil {
		return fmt.Errorf("exportPrediction: failed to write Excel file: %w", err)
	}
	return nil
}

func makePredictionExcelFile(pred *ninecat.MatchupPrediction) (*excelize.File, error) {
	xl := excelize.NewFile()
	sheetName := xl.GetSheetName(xl.GetActiveSheetIndex())

	header := []string{"Category", pred.TeamA.TeamName, pred.TeamB.TeamName, "Winner", "Confidence", "Likelihood"}
	for col, str := range header {
		index, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		xl.SetCellStr(sheetName, index, str)
	}

	for i, c := range ninecat.Categories {
		r := pred.Categories[c]
		cells := []string{
			string(c),
			formatCategory(c, r.A),
			formatCategory(c, r.B),
			winnerName(r.Winner, pred.TeamA.TeamName, pred.TeamB.TeamName),
			fmt.Sprintf("%0.2f", r.Confidence),
			fmt.Sprintf("%0.4f", r.Likelihood),
		}
		for col, str := range cells {
			index, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			xl.SetCellStr(sheetName, index, str)
		}
	}

	scoreRow := len(ninecat.Categories) + 2
	scores := []string{
		"Score",
		fmt.Sprintf("%d", pred.Score.A),
		fmt.Sprintf("%d", pred.Score.B),
		winnerName(pred.Score.Winner(), pred.TeamA.TeamName, pred.TeamB.TeamName),
	}
	for col, str := range scores {
		index, err := excelize.CoordinatesToCellName(col+1, scoreRow)
		if err != nil {
			return nil, err
		}
		xl.SetCellStr(sheetName, index, str)
	}

	return xl, nil
}

func openFileOrGSWriter(ctx context.Context, f string) (io.WriteCloser, error) {
	u, err := url.Parse(f)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		bucket := gsClient.Bucket(u.Host)
		// URL path has leading slash, but GS expects path relative to bucket.
		path := strings.TrimPrefix(u.Path, "/")
		obj := bucket.Object(path)
		w = obj.NewWriter(ctx)

	case "file":
		fallthrough
	case "":
		w, err = os.Create(u.Path)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unable to determine how to open '%s'", f)
	}

	return w, nil
}
