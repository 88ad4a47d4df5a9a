package schedule

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PhaseOther is the fallback tag for tasks no keyword matches.
const PhaseOther = "other"

// Built-in phase table names.
const (
	PhaseTableDetailed = "detailed"
	PhaseTableCompact  = "compact"
)

// PhaseRule maps one phase tag to the keywords that select it.
type PhaseRule struct {
	Phase    string   `yaml:"phase"`
	Keywords []string `yaml:"keywords"`
}

// PhaseTable is an ordered list of rules. The first rule with a keyword
// contained in the lower-cased task wins.
type PhaseTable struct {
	Rules    []PhaseRule `yaml:"phases"`
	Fallback string      `yaml:"fallback"`
}

// DetailedPhaseTable is the fourteen-phase table of the schedule parser.
func DetailedPhaseTable() PhaseTable {
	return PhaseTable{
		Fallback: PhaseOther,
		Rules: []PhaseRule{
			{Phase: "foundation", Keywords: []string{"foundation", "concrete", "slab", "footing", "foundy", "pour slab", "pour foundy"}},
			{Phase: "framing", Keywords: []string{"frame", "framing", "lumber", "walls", "nailing"}},
			{Phase: "roofing", Keywords: []string{"roof", "shingle", "roofing"}},
			{Phase: "electrical", Keywords: []string{"electrical", "elec", "wire", "electric"}},
			{Phase: "plumbing", Keywords: []string{"plumb", "pipe", "water", "finish plumbing"}},
			{Phase: "hvac", Keywords: []string{"hvac", "heat", "air", "duct"}},
			{Phase: "insulation", Keywords: []string{"insulation", "insulate"}},
			{Phase: "drywall", Keywords: []string{"drywall", "sheetrock", "hang", "tape", "texture", "double", "flush", "pva"}},
			{Phase: "flooring", Keywords: []string{"floor", "lvp", "carpet", "tile"}},
			{Phase: "painting", Keywords: []string{"paint", "primer"}},
			{Phase: "cabinets", Keywords: []string{"cabinet", "c-tops", "b-splsh", "countertop", "cabinet install"}},
			{Phase: "finishing", Keywords: []string{"finish", "trim", "detail", "cleaning"}},
			{Phase: "inspection", Keywords: []string{"inspection", "final inspection", "insp"}},
			{Phase: "move", Keywords: []string{"move", "clean/move"}},
		},
	}
}

// CompactPhaseTable is the eleven-phase table used by the customer
// dashboards, where inspections and cleanup fold into "final".
func CompactPhaseTable() PhaseTable {
	return PhaseTable{
		Fallback: PhaseOther,
		Rules: []PhaseRule{
			{Phase: "foundation", Keywords: []string{"foundation", "concrete", "slab", "footing"}},
			{Phase: "framing", Keywords: []string{"frame", "framing", "lumber", "walls", "roof deck"}},
			{Phase: "roofing", Keywords: []string{"roof", "shingle", "roofing", "gutters"}},
			{Phase: "electrical", Keywords: []string{"electrical", "wire", "electric", "panel"}},
			{Phase: "plumbing", Keywords: []string{"plumb", "pipe", "water", "sewer"}},
			{Phase: "insulation", Keywords: []string{"insulation", "insulate", "vapor"}},
			{Phase: "drywall", Keywords: []string{"drywall", "sheetrock", "mud", "tape"}},
			{Phase: "flooring", Keywords: []string{"floor", "tile", "carpet", "hardwood"}},
			{Phase: "painting", Keywords: []string{"paint", "primer", "stain"}},
			{Phase: "finishing", Keywords: []string{"finish", "trim", "cabinet", "countertop"}},
			{Phase: "final", Keywords: []string{"final", "inspection", "walk", "clean"}},
		},
	}
}

// PhaseTableByName returns a built-in table.
func PhaseTableByName(name string) (PhaseTable, error) {
	switch name {
	case PhaseTableDetailed, "":
		return DetailedPhaseTable(), nil
	case PhaseTableCompact:
		return CompactPhaseTable(), nil
	default:
		return PhaseTable{}, eris.Errorf("schedule: unknown phase table %q", name)
	}
}

// LoadPhaseTable reads a phase table from a YAML file of the form
//
//	fallback: other
//	phases:
//	  - phase: foundation
//	    keywords: [slab, footing]
func LoadPhaseTable(path string) (PhaseTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PhaseTable{}, eris.Wrapf(err, "schedule: read phase table %s", path)
	}

	var table PhaseTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return PhaseTable{}, eris.Wrap(err, "schedule: parse phase table")
	}
	if err := table.Validate(); err != nil {
		return PhaseTable{}, err
	}
	if table.Fallback == "" {
		table.Fallback = PhaseOther
	}
	return table, nil
}

// Validate rejects rules without a tag and blank keywords, which would
// match every task.
func (t PhaseTable) Validate() error {
	for i, r := range t.Rules {
		if strings.TrimSpace(r.Phase) == "" {
			return eris.Errorf("schedule: phase rule %d has no phase", i)
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return eris.Errorf("schedule: phase %q has a blank keyword", r.Phase)
			}
		}
	}
	return nil
}

// Classifier assigns construction phases to task text.
type Classifier struct {
	rules    []PhaseRule
	fallback string
}

// NewClassifier builds a classifier over a copy of table with lower-cased keywords.
func NewClassifier(table PhaseTable) *Classifier {
	c := &Classifier{fallback: table.Fallback}
	if c.fallback == "" {
		c.fallback = PhaseOther
	}
	for _, r := range table.Rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.rules = append(c.rules, PhaseRule{Phase: r.Phase, Keywords: kws})
	}
	return c
}

// Classify returns the phase of task. It is total: text that matches no
// keyword, including "", gets the fallback tag.
func (c *Classifier) Classify(task string) string {
	lower := strings.ToLower(task)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Phase
			}
		}
	}
	return c.fallback
}

// Phases lists the tags in table order followed by the fallback.
func (c *Classifier) Phases() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Phase)
	}
	return append(out, c.fallback)
}
