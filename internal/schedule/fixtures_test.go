package schedule

import (
	"time"

	"github.com/sells-group/schedule-cli/internal/model"
)

var fixedNow = time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// duplexGrid is the two-cell anchor layout: a date column plus one duplex column.
func duplexGrid(scheduleRows ...[]string) model.Grid {
	g := model.Grid{
		{"", "Sunrise"},
		{"", "Estates"},
		{"", "346/354"},
		{"", "Stockton"},
		{"", "Lots 81/82"},
		{"", "1163"},
		{"", "Garage, Patio"},
	}
	return append(g, scheduleRows...)
}

// twoColumnGrid has two duplex columns and a single-lot second column.
func twoColumnGrid(scheduleRows ...[]string) model.Grid {
	g := model.Grid{
		{"Week", "Sunrise", "Oak"},
		{"", "Estates", "Landing"},
		{"Date", "346/354", "1210/1218"},
		{"", "Stockton", "Merrick"},
		{"", "Lots 81/82", "Lots 7"},
		{"", "1163 sf", "approx 1420"},
		{"", "Garage", ""},
	}
	return append(g, scheduleRows...)
}

func word(text string, top, left, width float64) model.Word {
	return model.Word{Text: text, Top: top, Left: left, Width: width}
}

// spatialWords lays out three duplex columns whose anchor row sits at y=200.
// Bands: [80,190], [280,390], [480,590].
func spatialWords(extra ...model.Word) []model.Word {
	ws := []model.Word{
		word("SunriseEstates", 95, 100, 70),
		word("Oak", 95.2, 300, 20),
		word("Landing", 95.4, 325, 40),
		word("Lots:", 200, 10, 30),
		word("346/354", 200, 100, 40),
		word("362/370", 200.3, 300, 40),
		word("378/386", 199.8, 500, 40),
		word("Stockton", 210, 100, 45),
		word("Merrick", 210, 300, 40),
		word("Lots 81/82", 220, 100, 50),
		word("Lot 15", 220, 300, 30),
		word("1163 sf", 232, 100, 40),
		word("1420", 232, 300, 25),
		word("Garage", 245, 100, 35),
	}
	return append(ws, extra...)
}

func gridPage(g model.Grid) *model.Page {
	return &model.Page{Tables: []model.Grid{g}}
}

func wordPage(ws []model.Word) *model.Page {
	return &model.Page{Words: ws}
}
