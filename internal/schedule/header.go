package schedule

import (
	"regexp"
	"strings"

	"github.com/sells-group/schedule-cli/internal/model"
)

var (
	lotsPattern      = regexp.MustCompile(`Lots\s*(\d+/\d+|\d+)`)
	lotNumberPattern = regexp.MustCompile(`(\d+/\d+|\d+)`)
	sqftPattern      = regexp.MustCompile(`(\d{4})`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// header holds the raw attributes of one column. Missing attributes stay "".
type header struct {
	community string
	street    string
	lot       string
	sqft      string
	features  string
}

// ExtractGridHeader reads the rows at fixed deltas from the anchor row and
// returns the project records of every column, duplexes split in two.
func ExtractGridHeader(g model.Grid, anchor int, cols []*model.ColumnIdentity, layout Layout) []*model.ProjectRecord {
	var projects []*model.ProjectRecord
	for _, col := range cols {
		c := col.Ordinal + 1

		var community []string
		for _, delta := range layout.CommunityRows {
			if v := g.Cell(anchor+delta, c); v != "" {
				community = append(community, v)
			}
		}

		h := header{
			community: strings.Join(community, " "),
			street:    g.Cell(anchor+layout.StreetRow, c),
			features:  g.Cell(anchor+layout.FeaturesRow, c),
		}
		if m := lotsPattern.FindStringSubmatch(g.Cell(anchor+layout.LotRow, c)); m != nil {
			h.lot = m[1]
		}
		h.sqft = sqftPattern.FindString(g.Cell(anchor+layout.SquareFootageRow, c))

		projects = append(projects, splitUnits(col, h)...)
	}
	return projects
}

// ExtractWordHeader collects, for every column, the words inside each
// attribute window that fall within the column band.
func ExtractWordHeader(rows []wordRow, anchorY float64, cols []*model.ColumnIdentity, layout Layout) []*model.ProjectRecord {
	var projects []*model.ProjectRecord
	for _, col := range cols {
		if col.Band == nil {
			continue
		}
		band := *col.Band
		h := header{
			community: fixCommunity(windowText(rows, anchorY, layout.CommunityWindow, band), layout.CommunitySuffixes),
			street:    windowText(rows, anchorY, layout.StreetWindow, band),
			lot:       lotNumberPattern.FindString(windowText(rows, anchorY, layout.LotWindow, band)),
			sqft:      sqftPattern.FindString(windowText(rows, anchorY, layout.SquareFootageWindow, band)),
			features:  windowText(rows, anchorY, layout.FeaturesWindow, band),
		}
		projects = append(projects, splitUnits(col, h)...)
	}
	return projects
}

// windowText joins, top to bottom and left to right, the words of rows in
// win whose left edge lies in band.
func windowText(rows []wordRow, anchorY float64, win Window, band model.Band) string {
	var parts []string
	for _, row := range rows {
		if !win.Contains(anchorY, row.Y) {
			continue
		}
		for _, w := range row.Words {
			if band.Contains(w.Left) {
				parts = append(parts, strings.TrimSpace(w.Text))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// fixCommunity re-inserts the space the word extractor drops before
// community suffixes and collapses runs of whitespace.
func fixCommunity(s string, suffixes []string) string {
	for _, suffix := range suffixes {
		if suffix != "" {
			s = strings.ReplaceAll(s, suffix, " "+suffix)
		}
	}
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// splitUnits turns one column into its unit records. A slash-joined address
// yields one record per unit, lots split the same way or shared when the
// lot cell holds a single number. Every unit keeps the column identity, so
// tasks on the column reach all of them.
func splitUnits(col *model.ColumnIdentity, h header) []*model.ProjectRecord {
	if !addressPattern.MatchString(col.RawLabel) {
		return nil
	}

	units := strings.Split(col.RawLabel, "/")
	lots := []string{h.lot, h.lot}
	if strings.Contains(h.lot, "/") {
		lots = strings.Split(h.lot, "/")
	}

	street := strings.TrimSpace(h.street)
	projects := make([]*model.ProjectRecord, 0, len(units))
	for j, unit := range units {
		unit = strings.TrimSpace(unit)
		lot := lots[0]
		if j < len(lots) {
			lot = lots[j]
		}
		projects = append(projects, &model.ProjectRecord{
			ProjectID:          unit,
			Address:            strings.TrimSpace(unit + " " + street),
			Community:          strings.TrimSpace(h.community),
			Lot:                strings.TrimSpace(lot),
			SquareFootage:      h.sqft,
			Features:           strings.TrimSpace(h.features),
			Schedule:           []model.ScheduleEntry{},
			Column:             col,
			IsDuplex:           len(units) > 1,
			DuplexSiblingLabel: col.RawLabel,
		})
	}
	return projects
}
