package schedule

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/schedule-cli/internal/model"
)

// placeholders are spatial-path cell texts that mean "no task".
var placeholders = map[string]bool{"": true, "-": true}

// Walker appends dated tasks to project schedules. It is not safe for
// concurrent use; one walker serves one parse run.
type Walker struct {
	year       int
	classifier *Classifier
	log        *zap.Logger
	stats      *model.ParseStats
}

// NewWalker creates a walker for dates in year. stats may be nil.
func NewWalker(year int, classifier *Classifier, log *zap.Logger, stats *model.ParseStats) *Walker {
	if log == nil {
		log = zap.L()
	}
	if stats == nil {
		stats = &model.ParseStats{}
	}
	return &Walker{year: year, classifier: classifier, log: log, stats: stats}
}

// WalkGrid processes g from row start. Rows whose first cell carries a date
// token contribute one entry per non-empty cell to every project whose
// column ordinal matches the cell position.
func (w *Walker) WalkGrid(page int, g model.Grid, start int, projects []*model.ProjectRecord) {
	byOrdinal := make(map[int][]*model.ProjectRecord)
	for _, p := range projects {
		byOrdinal[p.Column.Ordinal] = append(byOrdinal[p.Column.Ordinal], p)
	}

	for r := max(start, 0); r < len(g); r++ {
		date, ok := w.rowDate(page, r, g.Cell(r, 0))
		if !ok {
			continue
		}
		for c := 1; c < len(g[r]); c++ {
			task := g.Cell(r, c)
			if task == "" {
				continue
			}
			targets := byOrdinal[c-1]
			if len(targets) == 0 {
				w.drop(page, r, task)
				continue
			}
			w.attach(targets, date, task)
		}
	}
}

// WalkWords processes the word rows at or below minY. A row is dated when
// its first two words hold a date token; every later word goes to the
// first column, in ordinal order, whose band contains its left edge.
func (w *Walker) WalkWords(page int, rows []wordRow, minY float64, projects []*model.ProjectRecord) {
	for i, row := range rows {
		if row.Y < minY || len(row.Words) == 0 {
			continue
		}

		lead := row.Words[:min(2, len(row.Words))]
		date, ok := w.rowDate(page, i, wordRow{Words: lead}.text())
		if !ok {
			continue
		}

		for _, word := range row.Words[1:] {
			targets := bandTargets(projects, word.Left)
			if len(targets) == 0 {
				w.drop(page, i, word.Text)
				continue
			}
			task := strings.TrimSpace(word.Text)
			if placeholders[task] {
				continue
			}
			w.attach(targets, date, task)
		}
	}
}

// rowDate reports the date of a row whose leading text carries a valid token.
func (w *Walker) rowDate(page, row int, lead string) (model.Date, bool) {
	token := findDateToken(lead)
	if token == "" {
		return model.Date{}, false
	}
	date, err := ParseDateToken(token, w.year)
	if err != nil {
		w.stats.BadDates++
		w.log.Warn("skipping row with invalid date",
			zap.Int("page", page),
			zap.Int("row", row),
			zap.String("token", token),
		)
		return model.Date{}, false
	}
	w.stats.DateRows++
	return date, true
}

func (w *Walker) attach(targets []*model.ProjectRecord, date model.Date, task string) {
	entry := model.ScheduleEntry{Date: date, Task: task, Phase: w.classifier.Classify(task)}
	for _, p := range targets {
		p.Schedule = append(p.Schedule, entry)
		w.stats.Entries++
	}
}

func (w *Walker) drop(page, row int, task string) {
	w.stats.DroppedCells++
	w.log.Debug("no column for task",
		zap.Int("page", page),
		zap.Int("row", row),
		zap.String("task", task),
	)
}

// bandTargets returns the projects of the first column whose band contains
// x, which is every sibling unit of that column.
func bandTargets(projects []*model.ProjectRecord, x float64) []*model.ProjectRecord {
	var col *model.ColumnIdentity
	for _, p := range projects {
		if p.Column.Band != nil && p.Column.Band.Contains(x) {
			col = p.Column
			break
		}
	}
	if col == nil {
		return nil
	}
	var out []*model.ProjectRecord
	for _, p := range projects {
		if p.Column == col {
			out = append(out, p)
		}
	}
	return out
}

// noLimit is the minY that admits every row of a continuation page.
var noLimit = math.Inf(-1)
