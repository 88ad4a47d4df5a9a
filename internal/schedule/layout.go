package schedule

// Window is a vertical offset range, inclusive at both ends, measured in
// points from the top of the anchor row.
type Window struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// Contains reports whether y lies inside the window anchored at anchorY.
func (w Window) Contains(anchorY, y float64) bool {
	return y >= anchorY+w.From && y <= anchorY+w.To
}

// Layout describes where header attributes sit relative to the anchor row.
// Row deltas drive the grid path; windows and band paddings drive the
// spatial path.
type Layout struct {
	AnchorScanRows   int `yaml:"anchor_scan_rows"`
	MinAnchorSlashes int `yaml:"min_anchor_slashes"`
	MinTableRows     int `yaml:"min_table_rows"`

	CommunityRows     []int `yaml:"community_rows"`
	StreetRow         int   `yaml:"street_row"`
	LotRow            int   `yaml:"lot_row"`
	SquareFootageRow  int   `yaml:"square_footage_row"`
	FeaturesRow       int   `yaml:"features_row"`
	ScheduleRowOffset int   `yaml:"schedule_row_offset"`

	CommunityWindow     Window  `yaml:"community_window"`
	StreetWindow        Window  `yaml:"street_window"`
	LotWindow           Window  `yaml:"lot_window"`
	SquareFootageWindow Window  `yaml:"square_footage_window"`
	FeaturesWindow      Window  `yaml:"features_window"`
	ScheduleTopOffset   float64 `yaml:"schedule_top_offset"`

	BandLeftPad  float64 `yaml:"band_left_pad"`
	BandRightPad float64 `yaml:"band_right_pad"`

	// CommunitySuffixes get a leading space when glued to the preceding
	// word by the word extractor ("SunriseEstates").
	CommunitySuffixes []string `yaml:"community_suffixes"`
}

// DefaultLayout returns the layout of the master schedule export.
func DefaultLayout() Layout {
	return Layout{
		AnchorScanRows:   7,
		MinAnchorSlashes: 3,
		MinTableRows:     7,

		CommunityRows:     []int{-2, -1},
		StreetRow:         1,
		LotRow:            2,
		SquareFootageRow:  3,
		FeaturesRow:       4,
		ScheduleRowOffset: 5,

		CommunityWindow:     Window{From: -110, To: -100},
		StreetWindow:        Window{From: 8, To: 12},
		LotWindow:           Window{From: 18, To: 25},
		SquareFootageWindow: Window{From: 30, To: 35},
		FeaturesWindow:      Window{From: 40, To: 50},
		ScheduleTopOffset:   60,

		BandLeftPad:  20,
		BandRightPad: 50,

		CommunitySuffixes: []string{"Estates", "Landing"},
	}
}
