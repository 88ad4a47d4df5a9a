package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schedule-cli/internal/model"
)

func TestExtractGridHeader_Duplex(t *testing.T) {
	t.Parallel()

	g := duplexGrid()
	anchor, cols, err := ResolveGridColumns(g, DefaultLayout())
	require.NoError(t, err)

	projects := ExtractGridHeader(g, anchor, cols, DefaultLayout())
	require.Len(t, projects, 2)

	a, b := projects[0], projects[1]
	assert.Equal(t, "346", a.ProjectID)
	assert.Equal(t, "346 Stockton", a.Address)
	assert.Equal(t, "81", a.Lot)
	assert.Equal(t, "354", b.ProjectID)
	assert.Equal(t, "354 Stockton", b.Address)
	assert.Equal(t, "82", b.Lot)

	for _, p := range projects {
		assert.Equal(t, "Sunrise Estates", p.Community)
		assert.Equal(t, "1163", p.SquareFootage)
		assert.Equal(t, "Garage, Patio", p.Features)
		assert.True(t, p.IsDuplex)
		assert.Equal(t, "346/354", p.DuplexSiblingLabel)
		assert.Same(t, cols[0], p.Column)
		assert.NotNil(t, p.Schedule)
		assert.Empty(t, p.CustomerName)
		assert.Empty(t, p.CustomerEmail)
	}
}

func TestExtractGridHeader_SharedLotAndNoisySqft(t *testing.T) {
	t.Parallel()

	g := twoColumnGrid()
	anchor, cols, err := ResolveGridColumns(g, DefaultLayout())
	require.NoError(t, err)

	projects := ExtractGridHeader(g, anchor, cols, DefaultLayout())
	require.Len(t, projects, 4)

	assert.Equal(t, "1163", projects[0].SquareFootage)
	assert.Equal(t, "Oak Landing", projects[2].Community)
	assert.Equal(t, "1210 Merrick", projects[2].Address)
	assert.Equal(t, "1218 Merrick", projects[3].Address)
	assert.Equal(t, "7", projects[2].Lot)
	assert.Equal(t, "7", projects[3].Lot)
	assert.Equal(t, "1420", projects[3].SquareFootage)
	assert.Equal(t, "", projects[3].Features)
}

func TestExtractGridHeader_PartialData(t *testing.T) {
	t.Parallel()

	// Anchor on the first row: no community rows above, nothing below.
	g := model.Grid{{"", "346/354"}}
	anchor, cols, err := ResolveGridColumns(g, DefaultLayout())
	require.NoError(t, err)

	projects := ExtractGridHeader(g, anchor, cols, DefaultLayout())
	require.Len(t, projects, 2)
	assert.Equal(t, "346", projects[0].Address)
	assert.Equal(t, "", projects[0].Community)
	assert.Equal(t, "", projects[0].Lot)
	assert.Equal(t, "", projects[0].SquareFootage)
}

func TestExtractGridHeader_LotWithoutPrefix(t *testing.T) {
	t.Parallel()

	g := duplexGrid()
	g[4] = []string{"", "81/82"}
	anchor, cols, err := ResolveGridColumns(g, DefaultLayout())
	require.NoError(t, err)

	projects := ExtractGridHeader(g, anchor, cols, DefaultLayout())
	assert.Equal(t, "", projects[0].Lot)
}

func TestExtractGridHeader_CustomLayout(t *testing.T) {
	t.Parallel()

	g := model.Grid{
		{"", "346/354"},
		{"", "Lots 81/82"},
		{"", "Stockton"},
	}
	layout := DefaultLayout()
	layout.LotRow = 1
	layout.StreetRow = 2

	_, cols, err := ResolveGridColumns(g, layout)
	require.NoError(t, err)
	projects := ExtractGridHeader(g, 0, cols, layout)
	require.Len(t, projects, 2)
	assert.Equal(t, "346 Stockton", projects[0].Address)
	assert.Equal(t, "82", projects[1].Lot)
}

func TestExtractWordHeader(t *testing.T) {
	t.Parallel()

	rows := groupRows(spatialWords())
	idx, cols, err := ResolveWordColumns(rows, DefaultLayout())
	require.NoError(t, err)

	projects := ExtractWordHeader(rows, rows[idx].Y, cols, DefaultLayout())
	require.Len(t, projects, 6)

	first := projects[0]
	assert.Equal(t, "346 Stockton", first.Address)
	assert.Equal(t, "Sunrise Estates", first.Community)
	assert.Equal(t, "81", first.Lot)
	assert.Equal(t, "1163", first.SquareFootage)
	assert.Equal(t, "Garage", first.Features)
	assert.Equal(t, "82", projects[1].Lot)

	second := projects[2]
	assert.Equal(t, "362 Merrick", second.Address)
	assert.Equal(t, "Oak Landing", second.Community)
	assert.Equal(t, "15", second.Lot)
	assert.Equal(t, "15", projects[3].Lot)
	assert.Equal(t, "1420", second.SquareFootage)

	third := projects[4]
	assert.Equal(t, "378", third.Address)
	assert.Equal(t, "", third.Community)
	assert.Equal(t, "", third.Lot)
}

func TestFixCommunity(t *testing.T) {
	t.Parallel()

	suffixes := DefaultLayout().CommunitySuffixes
	assert.Equal(t, "Sunrise Estates", fixCommunity("SunriseEstates", suffixes))
	assert.Equal(t, "Sunrise Estates", fixCommunity("Sunrise Estates", suffixes))
	assert.Equal(t, "Oak Landing", fixCommunity("Oak  Landing ", suffixes))
	assert.Equal(t, "", fixCommunity("", suffixes))
}

func TestSplitUnits_NoAddressPattern(t *testing.T) {
	t.Parallel()

	col := &model.ColumnIdentity{Ordinal: 0, RawLabel: "Model Home"}
	assert.Empty(t, splitUnits(col, header{street: "Stockton"}))
}
