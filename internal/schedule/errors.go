package schedule

import "github.com/rotisserie/eris"

var (
	// ErrNoAnchorFound means no row carried the duplex address pattern, so
	// no project columns could be identified.
	ErrNoAnchorFound = eris.New("schedule: no anchor row found")

	// ErrDateParse means a token had the day-month shape but is not a
	// calendar date.
	ErrDateParse = eris.New("schedule: invalid date token")

	// ErrNoPages means the document had no page with either view populated.
	ErrNoPages = eris.New("schedule: no processable pages")
)
