package schedule

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/model"
)

// addressPattern matches a duplex address pair such as "346/354".
var addressPattern = regexp.MustCompile(`\d{3,4}/\d{3,4}`)

// ResolveGridColumns finds the anchor row among the first AnchorScanRows
// rows of g and returns its index with one column per address cell. Column
// 0 holds dates on every row, so ordinal i lives in cell i+1.
func ResolveGridColumns(g model.Grid, layout Layout) (int, []*model.ColumnIdentity, error) {
	limit := min(layout.AnchorScanRows, len(g))
	for r := 0; r < limit; r++ {
		var cols []*model.ColumnIdentity
		for c := 1; c < len(g[r]); c++ {
			cell := g.Cell(r, c)
			if !addressPattern.MatchString(cell) {
				continue
			}
			cols = append(cols, &model.ColumnIdentity{Ordinal: len(cols), RawLabel: cell})
		}
		if len(cols) > 0 {
			return r, cols, nil
		}
	}
	return -1, nil, eris.Wrapf(ErrNoAnchorFound, "grid: none of the first %d rows has an address pair", limit)
}

// ResolveWordColumns finds the first row, top to bottom, whose text holds at
// least MinAnchorSlashes slashes and an address pair. Each address word in
// it becomes a column whose band is padded asymmetrically, wider on the
// right where task text tends to start.
func ResolveWordColumns(rows []wordRow, layout Layout) (int, []*model.ColumnIdentity, error) {
	for i, row := range rows {
		text := row.text()
		if strings.Count(text, "/") < layout.MinAnchorSlashes || !addressPattern.MatchString(text) {
			continue
		}

		var cols []*model.ColumnIdentity
		for _, w := range row.Words {
			if !addressPattern.MatchString(w.Text) {
				continue
			}
			cols = append(cols, &model.ColumnIdentity{
				Ordinal:  len(cols),
				RawLabel: strings.TrimSpace(w.Text),
				Band: &model.Band{
					Left:  w.Left - layout.BandLeftPad,
					Right: w.Right() + layout.BandRightPad,
				},
			})
		}
		if len(cols) > 0 {
			return i, cols, nil
		}
	}
	return -1, nil, eris.Wrapf(ErrNoAnchorFound, "words: no row with %d slashes and an address pair", layout.MinAnchorSlashes)
}

// overlappingBands returns the ordinal pairs of neighbouring columns whose
// bands overlap. Words landing in an overlap go to the left column.
func overlappingBands(cols []*model.ColumnIdentity) [][2]int {
	var out [][2]int
	for i := 1; i < len(cols); i++ {
		a, b := cols[i-1].Band, cols[i].Band
		if a != nil && b != nil && a.Overlaps(*b) {
			out = append(out, [2]int{cols[i-1].Ordinal, cols[i].Ordinal})
		}
	}
	return out
}
