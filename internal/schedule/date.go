package schedule

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/model"
)

// dateTokenPattern matches the compact day-month token of a calendar row, e.g. "12-Jun".
var dateTokenPattern = regexp.MustCompile(`(\d{1,2}-[A-Za-z]{3})`)

// findDateToken returns the first day-month token in s, or "".
func findDateToken(s string) string {
	return dateTokenPattern.FindString(s)
}

// ParseDateToken turns a "12-Jun" token into a date in the given year.
// Tokens of the right shape that are not calendar dates ("32-Jun",
// "31-Jun", "10-Foo") return ErrDateParse.
func ParseDateToken(token string, year int) (model.Date, error) {
	t, err := time.Parse("2-Jan-2006", fmt.Sprintf("%s-%04d", token, year))
	if err != nil {
		return model.Date{}, eris.Wrapf(ErrDateParse, "token %q year %d: %v", token, year, err)
	}
	return model.DateOf(t), nil
}
