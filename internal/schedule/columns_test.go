package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schedule-cli/internal/model"
)

func TestResolveGridColumns(t *testing.T) {
	t.Parallel()

	anchor, cols, err := ResolveGridColumns(twoColumnGrid(), DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, 2, anchor)
	require.Len(t, cols, 2)
	assert.Equal(t, model.ColumnIdentity{Ordinal: 0, RawLabel: "346/354"}, *cols[0])
	assert.Equal(t, model.ColumnIdentity{Ordinal: 1, RawLabel: "1210/1218"}, *cols[1])
}

func TestResolveGridColumns_IgnoresDateColumn(t *testing.T) {
	t.Parallel()

	g := model.Grid{
		{"346/354", "Sunrise"},
		{"", "362/370"},
	}
	anchor, cols, err := ResolveGridColumns(g, DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, 1, anchor)
	require.Len(t, cols, 1)
	assert.Equal(t, "362/370", cols[0].RawLabel)
}

func TestResolveGridColumns_OnlyScansHeaderRows(t *testing.T) {
	t.Parallel()

	g := make(model.Grid, 0, 9)
	for range 7 {
		g = append(g, []string{"", "Sunrise"})
	}
	g = append(g, []string{"", "346/354"})

	_, _, err := ResolveGridColumns(g, DefaultLayout())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAnchorFound))
}

func TestResolveWordColumns(t *testing.T) {
	t.Parallel()

	rows := groupRows(spatialWords())
	idx, cols, err := ResolveWordColumns(rows, DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, 200.0, rows[idx].Y)

	require.Len(t, cols, 3)
	for i, want := range []struct {
		label       string
		left, right float64
	}{
		{"346/354", 80, 190},
		{"362/370", 280, 390},
		{"378/386", 480, 590},
	} {
		assert.Equal(t, i, cols[i].Ordinal)
		assert.Equal(t, want.label, cols[i].RawLabel)
		require.NotNil(t, cols[i].Band)
		assert.Equal(t, model.Band{Left: want.left, Right: want.right}, *cols[i].Band)
	}
	assert.Empty(t, overlappingBands(cols))
}

func TestResolveWordColumns_NeedsThreeSlashes(t *testing.T) {
	t.Parallel()

	rows := groupRows([]model.Word{
		word("346/354", 200, 100, 40),
		word("362/370", 200, 300, 40),
	})
	_, _, err := ResolveWordColumns(rows, DefaultLayout())
	assert.True(t, errors.Is(err, ErrNoAnchorFound))
}

func TestOverlappingBands(t *testing.T) {
	t.Parallel()

	rows := groupRows([]model.Word{
		word("346/354", 200, 100, 40),
		word("362/370", 200, 200, 40),
		word("378/386", 200, 500, 40),
	})
	_, cols, err := ResolveWordColumns(rows, DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}}, overlappingBands(cols))
}

func TestGroupRows(t *testing.T) {
	t.Parallel()

	rows := groupRows([]model.Word{
		word("b", 10.4, 50, 5),
		word("z", 30, 0, 5),
		word("a", 9.6, 10, 5),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, 10.0, rows[0].Y)
	assert.Equal(t, "a b", rows[0].text())
	assert.Equal(t, 30.0, rows[1].Y)
}

func TestChoosePage(t *testing.T) {
	t.Parallel()

	big := duplexGrid([]string{"10-Jun", "Frame"})
	small := model.Grid{{"10-Jun", "Frame"}}
	words := spatialWords()

	tests := []struct {
		name    string
		page    *model.Page
		minRows int
		want    model.Strategy
	}{
		{"large table wins", &model.Page{Tables: []model.Grid{big}, Words: words}, 7, model.StrategyGrid},
		{"small table falls back to words", &model.Page{Tables: []model.Grid{small}, Words: words}, 7, model.StrategyWords},
		{"small table without words", &model.Page{Tables: []model.Grid{small}}, 7, model.StrategyGrid},
		{"continuation accepts any table", &model.Page{Tables: []model.Grid{small}, Words: words}, 1, model.StrategyGrid},
		{"words only", wordPage(words), 1, model.StrategyWords},
		{"empty tables skipped", &model.Page{Tables: []model.Grid{{}}}, 1, model.StrategyNone},
		{"nothing", &model.Page{}, 7, model.StrategyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, choosePage(tt.page, tt.minRows).strategy)
		})
	}
}
