package schedule

import (
	"math"
	"time"

	"github.com/sells-group/schedule-cli/internal/model"
)

const (
	// PhasePlanning is the current phase of a project with no task on or before now.
	PhasePlanning = "Planning"

	// CommunityUnknown groups projects whose community header was empty.
	CommunityUnknown = "Unknown"
)

// Aggregate sets every project's current phase as of now and counts
// projects per community.
func Aggregate(projects []*model.ProjectRecord, now time.Time) ([]*model.ProjectRecord, model.Summary) {
	summary := model.Summary{
		TotalProjects: len(projects),
		ByCommunity:   make(map[string]int),
	}
	for _, p := range projects {
		p.CurrentPhase = CurrentPhase(p.Schedule, now)

		community := p.Community
		if community == "" {
			community = CommunityUnknown
		}
		summary.ByCommunity[community]++
	}
	return projects, summary
}

// CurrentPhase returns the phase of the latest entry dated on or before
// now's calendar day. Among entries sharing that date the last one wins.
func CurrentPhase(entries []model.ScheduleEntry, now time.Time) string {
	today := model.DateOf(now)
	phase := PhasePlanning
	var latest model.Date
	found := false
	for _, e := range entries {
		if e.Date.After(today.Time) {
			continue
		}
		if !found || !e.Date.Before(latest.Time) {
			latest = e.Date
			phase = e.Phase
			found = true
		}
	}
	return phase
}

// Completion returns the percentage of entries dated on or before now,
// rounded to one decimal.
func Completion(entries []model.ScheduleEntry, now time.Time) float64 {
	if len(entries) == 0 {
		return 0
	}
	today := model.DateOf(now)
	done := 0
	for _, e := range entries {
		if !e.Date.After(today.Time) {
			done++
		}
	}
	return math.Round(float64(done)/float64(len(entries))*1000) / 10
}
