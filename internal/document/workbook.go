package document

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/fetcher"
	"github.com/sells-group/schedule-cli/internal/model"
)

// Workbook loads a spreadsheet export of the schedule. Each sheet is one
// page with a single table and no words.
type Workbook struct{}

// Load reads every sheet of the workbook at path.
func (Workbook) Load(ctx context.Context, path string) ([]model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "document: load workbook")
	}

	sheets, err := fetcher.ReadWorkbook(path)
	if err != nil {
		return nil, eris.Wrapf(err, "document: read workbook %s", path)
	}

	pages := make([]model.Page, len(sheets))
	for i, s := range sheets {
		pages[i] = model.Page{Number: i + 1}
		if len(s.Rows) > 0 {
			pages[i].Tables = []model.Grid{model.Grid(s.Rows)}
		}
	}
	return pages, nil
}
