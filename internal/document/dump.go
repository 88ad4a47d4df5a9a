package document

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/model"
)

// Dump loads a JSON export of already extracted pages:
//
//	{"pages": [{"grid": [[...]], "tables": [[[...]]], "words": [{"text", "top", "left", "width"}]}]}
//
// Word exports from pdfplumber use x0/x1 instead of left/width; both forms
// are accepted.
type Dump struct{}

type dumpFile struct {
	Pages []dumpPage `json:"pages"`
}

type dumpPage struct {
	Scale  float64      `json:"scale"`
	Grid   model.Grid   `json:"grid"`
	Tables []model.Grid `json:"tables"`
	Words  []dumpWord   `json:"words"`
}

type dumpWord struct {
	Text  string   `json:"text"`
	Top   float64  `json:"top"`
	Left  *float64 `json:"left"`
	Width *float64 `json:"width"`
	X0    *float64 `json:"x0"`
	X1    *float64 `json:"x1"`
}

func (w dumpWord) word() model.Word {
	out := model.Word{Text: w.Text, Top: w.Top}
	switch {
	case w.Left != nil:
		out.Left = *w.Left
	case w.X0 != nil:
		out.Left = *w.X0
	}
	switch {
	case w.Width != nil:
		out.Width = *w.Width
	case w.X1 != nil:
		out.Width = *w.X1 - out.Left
	}
	return out
}

// Load decodes the dump at path.
func (Dump) Load(ctx context.Context, path string) ([]model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "document: load dump")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "document: read dump %s", path)
	}

	var f dumpFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "document: decode dump %s", path)
	}

	pages := make([]model.Page, len(f.Pages))
	for i, dp := range f.Pages {
		p := model.Page{Number: i + 1, Scale: dp.Scale}
		if len(dp.Grid) > 0 {
			p.Tables = append(p.Tables, dp.Grid)
		}
		p.Tables = append(p.Tables, dp.Tables...)
		for _, w := range dp.Words {
			p.Words = append(p.Words, w.word())
		}
		pages[i] = p
	}
	return pages, nil
}
