package model

import "strings"

// Word is a run of text positioned on a page. Coordinates are in points
// measured from the top-left corner unless the owning Page sets a Scale.
type Word struct {
	Text  string  `json:"text"`
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Right returns the horizontal end of the word.
func (w Word) Right() float64 {
	return w.Left + w.Width
}

// Grid is a table extracted from a page. Empty or missing cells are "".
type Grid [][]string

// Cell returns the trimmed text at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Page is one page of a schedule document. Tables holds the structured-table
// view (the first table is the primary one), Words the free-floating view.
// Either may be empty depending on what the extraction backend produced.
type Page struct {
	Number int     `json:"number"`
	Scale  float64 `json:"scale,omitempty"` // coordinate units per point; 0 means points
	Tables []Grid  `json:"tables,omitempty"`
	Words  []Word  `json:"words,omitempty"`
}

// ExtractTables returns the structured-table view of the page.
func (p *Page) ExtractTables() []Grid {
	return p.Tables
}

// ExtractWords returns the positioned words of the page in points.
func (p *Page) ExtractWords() []Word {
	if p.Scale == 0 || p.Scale == 1 {
		return p.Words
	}
	out := make([]Word, len(p.Words))
	for i, w := range p.Words {
		out[i] = Word{
			Text:  w.Text,
			Top:   w.Top / p.Scale,
			Left:  w.Left / p.Scale,
			Width: w.Width / p.Scale,
		}
	}
	return out
}

// Empty reports whether the page has neither a table nor any words.
func (p *Page) Empty() bool {
	for _, t := range p.Tables {
		if len(t) > 0 {
			return false
		}
	}
	return len(p.Words) == 0
}

// Strategy names the extraction view used for a page.
type Strategy string

const (
	StrategyGrid  Strategy = "grid"
	StrategyWords Strategy = "words"
	StrategyNone  Strategy = "none"
)
