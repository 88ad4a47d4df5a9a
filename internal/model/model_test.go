package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCell(t *testing.T) {
	t.Parallel()

	g := Grid{
		{"10-Jun", " Frame walls ", ""},
		{"11-Jun"},
	}

	assert.Equal(t, "Frame walls", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(0, 2))
	assert.Equal(t, "", g.Cell(1, 1))
	assert.Equal(t, "", g.Cell(5, 0))
	assert.Equal(t, "", g.Cell(-1, 0))
}

func TestPageExtractWords_Scale(t *testing.T) {
	t.Parallel()

	p := &Page{
		Scale: 2,
		Words: []Word{{Text: "346/354", Top: 200, Left: 100, Width: 40}},
	}

	words := p.ExtractWords()
	require.Len(t, words, 1)
	assert.Equal(t, Word{Text: "346/354", Top: 100, Left: 50, Width: 20}, words[0])
	assert.Equal(t, 200.0, p.Words[0].Top, "source page is not mutated")
}

func TestPageEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Page{}).Empty())
	assert.True(t, (&Page{Tables: []Grid{{}}}).Empty())
	assert.False(t, (&Page{Tables: []Grid{{{"a"}}}}).Empty())
	assert.False(t, (&Page{Words: []Word{{Text: "a"}}}).Empty())
}

func TestBand(t *testing.T) {
	t.Parallel()

	b := Band{Left: 80, Right: 190}
	assert.True(t, b.Contains(80))
	assert.True(t, b.Contains(190))
	assert.False(t, b.Contains(190.5))

	assert.True(t, b.Overlaps(Band{Left: 190, Right: 300}))
	assert.False(t, b.Overlaps(Band{Left: 191, Right: 300}))
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d := NewDate(2024, time.June, 10)
	data, err := json.Marshal(ScheduleEntry{Date: d, Task: "Final Inspection", Phase: "final"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-10","task":"Final Inspection","phase":"final"}`, string(data))

	var back ScheduleEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Date.Equal(d.Time))

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"10-Jun"`), &bad))
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("PDT", -7*3600)
	d := DateOf(time.Date(2024, time.June, 12, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-06-12", d.String())
}

func TestProjectRecordJSON_AllFieldsPresent(t *testing.T) {
	t.Parallel()

	p := ProjectRecord{Schedule: []ScheduleEntry{}}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{
		"project_id", "customer_name", "customer_email", "address", "community",
		"lot", "square_footage", "features", "current_phase", "schedule",
		"column_identity", "is_duplex", "duplex_sibling_label",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, []any{}, fields["schedule"])
}
