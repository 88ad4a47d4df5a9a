// Package schedule recovers per-project task schedules from a master
// schedule export.
//
// The first page with content anchors the document: its duplex address row
// fixes the project columns and the rows around it give each column its
// header attributes. Every page, the anchor page included, then contributes
// dated tasks by column position. Pages are read through one of two views,
// a structured table grid or free-floating positioned words, chosen per page.
package schedule

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/schedule-cli/internal/model"
)

// Parser runs the structure-recovery passes over a document.
type Parser struct {
	layout     Layout
	classifier *Classifier
	year       int
	log        *zap.Logger
	now        func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(p *Parser) { p.layout = l }
}

// WithClassifier overrides the detailed phase table classifier.
func WithClassifier(c *Classifier) Option {
	return func(p *Parser) { p.classifier = c }
}

// WithYear fixes the year given to day-month tokens. Zero uses now's year.
func WithYear(year int) Option {
	return func(p *Parser) { p.year = year }
}

// WithLogger sets the logger. The default is zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithClock sets the source of "now" used for the schedule year and the
// current phase derivation.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		layout: DefaultLayout(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.classifier == nil {
		p.classifier = NewClassifier(DetailedPhaseTable())
	}
	if p.log == nil {
		p.log = zap.L()
	}
	return p
}

// Parse recovers the projects of a document. It fails with ErrNoPages when
// no page has content and with ErrNoAnchorFound when the anchor page has no
// address row; every row- and cell-level problem is skipped and counted in
// the result stats.
func (p *Parser) Parse(pages []PageSource) (*model.ParseResult, error) {
	now := p.now()
	year := p.year
	if year == 0 {
		year = now.Year()
	}

	stats := model.ParseStats{Pages: len(pages)}
	walker := NewWalker(year, p.classifier, p.log, &stats)

	var (
		projects []*model.ProjectRecord
		strategy = model.StrategyNone
		anchored bool
	)
	for i, src := range pages {
		number := i + 1

		minRows := 1
		if !anchored {
			minRows = p.layout.MinTableRows
		}
		view := choosePage(src, minRows)
		if view.strategy == model.StrategyNone {
			stats.SkippedPages++
			p.log.Warn("skipping page with no table or words", zap.Int("page", number))
			continue
		}
		p.log.Info("parsing page",
			zap.Int("page", number),
			zap.String("strategy", string(view.strategy)),
			zap.Bool("anchor", !anchored),
		)

		if anchored {
			p.walkContinuation(walker, number, view, projects)
			continue
		}

		var err error
		projects, err = p.parseAnchor(walker, number, view)
		if err != nil {
			return nil, eris.Wrapf(err, "schedule: page %d", number)
		}
		strategy = view.strategy
		anchored = true
	}

	if !anchored {
		return nil, eris.Wrapf(ErrNoPages, "schedule: %d pages", len(pages))
	}

	projects, summary := Aggregate(projects, now)
	p.log.Info("parsed schedule",
		zap.Int("projects", len(projects)),
		zap.Int("entries", stats.Entries),
		zap.Int("bad_dates", stats.BadDates),
		zap.Int("dropped_cells", stats.DroppedCells),
	)

	return &model.ParseResult{
		Projects:   projects,
		ParsedDate: now,
		Strategy:   strategy,
		Summary:    summary,
		Stats:      stats,
	}, nil
}

func (p *Parser) parseAnchor(walker *Walker, page int, view pageView) ([]*model.ProjectRecord, error) {
	if view.strategy == model.StrategyGrid {
		g := view.tables[0]
		anchor, cols, err := ResolveGridColumns(g, p.layout)
		if err != nil {
			return nil, err
		}
		p.log.Info("anchor row found", zap.Int("row", anchor), zap.Int("columns", len(cols)))

		projects := ExtractGridHeader(g, anchor, cols, p.layout)
		p.logHeaderGaps(cols, projects)
		walker.WalkGrid(page, g, anchor+p.layout.ScheduleRowOffset, projects)
		return projects, nil
	}

	idx, cols, err := ResolveWordColumns(view.rows, p.layout)
	if err != nil {
		return nil, err
	}
	anchorY := view.rows[idx].Y
	p.log.Info("anchor row found", zap.Float64("top", anchorY), zap.Int("columns", len(cols)))
	for _, pair := range overlappingBands(cols) {
		p.log.Warn("column bands overlap, first column wins",
			zap.Int("left", pair[0]),
			zap.Int("right", pair[1]),
		)
	}

	projects := ExtractWordHeader(view.rows, anchorY, cols, p.layout)
	p.logHeaderGaps(cols, projects)
	walker.WalkWords(page, view.rows, anchorY+p.layout.ScheduleTopOffset, projects)
	return projects, nil
}

func (p *Parser) walkContinuation(walker *Walker, page int, view pageView, projects []*model.ProjectRecord) {
	if view.strategy == model.StrategyGrid {
		for _, g := range view.tables {
			walker.WalkGrid(page, g, 0, projects)
		}
		return
	}
	walker.WalkWords(page, view.rows, noLimit, projects)
}

// logHeaderGaps reports columns that produced no records and records with
// empty attributes.
func (p *Parser) logHeaderGaps(cols []*model.ColumnIdentity, projects []*model.ProjectRecord) {
	seen := make(map[*model.ColumnIdentity]bool, len(cols))
	for _, pr := range projects {
		seen[pr.Column] = true
		if pr.Community == "" || pr.Lot == "" || pr.SquareFootage == "" {
			p.log.Debug("partial header data",
				zap.String("address", pr.Address),
				zap.String("community", pr.Community),
				zap.String("lot", pr.Lot),
				zap.String("square_footage", pr.SquareFootage),
			)
		}
	}
	for _, c := range cols {
		if !seen[c] {
			p.log.Warn("column yielded no projects", zap.Int("ordinal", c.Ordinal), zap.String("label", c.RawLabel))
		}
	}
}
