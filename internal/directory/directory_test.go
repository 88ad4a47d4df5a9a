package directory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/schedule-cli/internal/model"
)

func createCustomerXLSX(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	s, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, rowData := range rows {
		row := s.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "master.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestFromRows(t *testing.T) {
	d, err := FromRows([][]string{
		{"email address", "ADDRESS", "Customer Name", "Notes"},
		{"jane@example.com", "346 Stockton", "Jane Doe"},
		{"", "", "No Address"},
		{"old@example.com", "354 Stockton", "Old Owner"},
		{"sam@example.com", " 354  stockton ", "Sam Lee"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	c, ok := d.Lookup("346 STOCKTON")
	require.True(t, ok)
	assert.Equal(t, Customer{Address: "346 Stockton", Name: "Jane Doe", Email: "jane@example.com"}, c)

	c, ok = d.Lookup("354 Stockton")
	require.True(t, ok)
	assert.Equal(t, "Sam Lee", c.Name)

	_, ok = d.Lookup("1210 Oak")
	assert.False(t, ok)
}

func TestFromRows_MissingAddressColumn(t *testing.T) {
	_, err := FromRows([][]string{{"Customer Name"}, {"Jane"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "Address" column`)
}

func TestFromRows_Empty(t *testing.T) {
	d, err := FromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestEnrich(t *testing.T) {
	d, err := FromRows([][]string{
		{"Address", "Customer Name"},
		{"346 Stockton", "Jane Doe"},
	})
	require.NoError(t, err)

	projects := []*model.ProjectRecord{
		{Address: "346 Stockton"},
		{Address: "354 Stockton"},
	}
	assert.Equal(t, 1, d.Enrich(projects))
	assert.Equal(t, "Jane Doe", projects[0].CustomerName)
	assert.Empty(t, projects[0].CustomerEmail)
	assert.Empty(t, projects[1].CustomerName)
}

func TestLoad(t *testing.T) {
	path := createCustomerXLSX(t, "Customers", [][]string{
		{"Address", "Customer Name", "Email Address"},
		{"346 Stockton", "Jane Doe", "jane@example.com"},
	})

	d, err := Load(path, "Customers")
	require.NoError(t, err)
	c, ok := d.Lookup("346 Stockton")
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", c.Email)

	_, err = Load(path, "Contacts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory: load")
}
