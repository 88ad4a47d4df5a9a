package schedule

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/schedule-cli/internal/model"
)

// PageSource is a page exposing both extraction views.
type PageSource interface {
	ExtractTables() []model.Grid
	ExtractWords() []model.Word
}

// PagesOf adapts loaded pages to PageSource.
func PagesOf(pages []model.Page) []PageSource {
	out := make([]PageSource, len(pages))
	for i := range pages {
		out[i] = &pages[i]
	}
	return out
}

// pageView is the single view chosen for a page.
type pageView struct {
	strategy model.Strategy
	tables   []model.Grid
	rows     []wordRow
}

// choosePage prefers the primary table when it has at least minRows rows,
// falls back to the words, and as a last resort takes whatever table there
// is. A page with neither view yields StrategyNone.
func choosePage(src PageSource, minRows int) pageView {
	tables := nonEmptyTables(src.ExtractTables())
	if len(tables) > 0 && len(tables[0]) >= minRows {
		return pageView{strategy: model.StrategyGrid, tables: tables}
	}
	if words := src.ExtractWords(); len(words) > 0 {
		return pageView{strategy: model.StrategyWords, rows: groupRows(words)}
	}
	if len(tables) > 0 {
		return pageView{strategy: model.StrategyGrid, tables: tables}
	}
	return pageView{strategy: model.StrategyNone}
}

func nonEmptyTables(tables []model.Grid) []model.Grid {
	var out []model.Grid
	for _, t := range tables {
		if len(t) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// wordRow is the set of words whose top rounds to the same point.
type wordRow struct {
	Y     float64
	Words []model.Word
}

func (r wordRow) text() string {
	parts := make([]string, len(r.Words))
	for i, w := range r.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// groupRows buckets words by their rounded top coordinate. Rows come back
// top to bottom, words within a row left to right.
func groupRows(words []model.Word) []wordRow {
	buckets := make(map[float64][]model.Word)
	for _, w := range words {
		y := math.Round(w.Top)
		buckets[y] = append(buckets[y], w)
	}

	rows := make([]wordRow, 0, len(buckets))
	for y, ws := range buckets {
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].Left < ws[j].Left })
		rows = append(rows, wordRow{Y: y, Words: ws})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Y < rows[j].Y })
	return rows
}
