package model

import "time"

// Band is the horizontal interval [Left, Right] owned by a column on the
// spatial extraction path. Both ends are inclusive.
type Band struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Contains reports whether x falls inside the band.
func (b Band) Contains(x float64) bool {
	return x >= b.Left && x <= b.Right
}

// Overlaps reports whether the two bands share any coordinate.
func (b Band) Overlaps(o Band) bool {
	return b.Left <= o.Right && o.Left <= b.Right
}

// ColumnIdentity identifies one project column of the anchor page.
type ColumnIdentity struct {
	Ordinal  int    `json:"ordinal"`
	RawLabel string `json:"raw_label"`
	Band     *Band  `json:"band"`
}

// ScheduleEntry is one dated task attached to a project.
type ScheduleEntry struct {
	Date  Date   `json:"date"`
	Task  string `json:"task"`
	Phase string `json:"phase"`
}

// ProjectRecord is one dwelling unit recovered from the schedule. Duplex
// columns yield two records that share the same ColumnIdentity.
type ProjectRecord struct {
	ProjectID          string          `json:"project_id"`
	CustomerName       string          `json:"customer_name"`
	CustomerEmail      string          `json:"customer_email"`
	Address            string          `json:"address"`
	Community          string          `json:"community"`
	Lot                string          `json:"lot"`
	SquareFootage      string          `json:"square_footage"`
	Features           string          `json:"features"`
	CurrentPhase       string          `json:"current_phase"`
	Schedule           []ScheduleEntry `json:"schedule"`
	Column             *ColumnIdentity `json:"column_identity"`
	IsDuplex           bool            `json:"is_duplex"`
	DuplexSiblingLabel string          `json:"duplex_sibling_label"`
}

// Summary counts projects per community.
type Summary struct {
	TotalProjects int            `json:"total_projects"`
	ByCommunity   map[string]int `json:"by_community"`
}

// ParseStats records what a parse run recovered and what it dropped.
type ParseStats struct {
	Pages        int `json:"pages"`
	SkippedPages int `json:"skipped_pages"`
	DateRows     int `json:"date_rows"`
	BadDates     int `json:"bad_dates"`
	Entries      int `json:"entries"`
	DroppedCells int `json:"dropped_cells"`
}

// ParseResult is the output document of a parse run.
type ParseResult struct {
	Projects   []*ProjectRecord `json:"projects"`
	ParsedDate time.Time        `json:"parsed_date"`
	Strategy   Strategy         `json:"strategy"`
	Summary    Summary          `json:"summary"`
	Stats      ParseStats       `json:"stats"`
}

// Run is a stored parse run.
type Run struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	Strategy     Strategy     `json:"strategy"`
	ProjectCount int          `json:"project_count"`
	Result       *ParseResult `json:"result,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
