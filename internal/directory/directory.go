// Package directory fills customer contact fields from a workbook keyed by
// street address.
package directory

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/fetcher"
	"github.com/sells-group/schedule-cli/internal/model"
)

// Column headers of the customer sheet.
const (
	HeaderAddress = "Address"
	HeaderName    = "Customer Name"
	HeaderEmail   = "Email Address"
)

// Customer is one directory entry.
type Customer struct {
	Address string
	Name    string
	Email   string
}

// Directory maps normalized addresses to customers.
type Directory struct {
	byAddress map[string]Customer
}

// Load reads the named sheet of the workbook at path.
func Load(path, sheet string) (*Directory, error) {
	rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: sheet})
	if err != nil {
		return nil, eris.Wrapf(err, "directory: load %s", path)
	}
	return FromRows(rows)
}

// FromRows builds a directory from sheet rows. The first row is the header;
// header names match case-insensitively. Rows without an address are
// skipped and a later row wins over an earlier one for the same address.
func FromRows(rows [][]string) (*Directory, error) {
	d := &Directory{byAddress: make(map[string]Customer)}
	if len(rows) == 0 {
		return d, nil
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[normalize(h)] = i
	}
	addrCol, ok := col[normalize(HeaderAddress)]
	if !ok {
		return nil, eris.Errorf("directory: missing %q column", HeaderAddress)
	}
	nameCol, hasName := col[normalize(HeaderName)]
	emailCol, hasEmail := col[normalize(HeaderEmail)]

	cell := func(row []string, i int, present bool) string {
		if !present || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[1:] {
		addr := cell(row, addrCol, true)
		if addr == "" {
			continue
		}
		d.byAddress[normalize(addr)] = Customer{
			Address: addr,
			Name:    cell(row, nameCol, hasName),
			Email:   cell(row, emailCol, hasEmail),
		}
	}
	return d, nil
}

// Len returns the number of customers.
func (d *Directory) Len() int {
	return len(d.byAddress)
}

// Lookup finds the customer living at address.
func (d *Directory) Lookup(address string) (Customer, bool) {
	c, ok := d.byAddress[normalize(address)]
	return c, ok
}

// Enrich sets customer_name and customer_email on every project whose
// address is in the directory and returns how many matched. Unmatched
// projects are left untouched.
func (d *Directory) Enrich(projects []*model.ProjectRecord) int {
	matched := 0
	for _, p := range projects {
		c, ok := d.Lookup(p.Address)
		if !ok {
			continue
		}
		p.CustomerName = c.Name
		p.CustomerEmail = c.Email
		matched++
	}
	return matched
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
