// Package analytics derives streaks, counts, rates, badges and chart data from
// the progress table. Nothing here is persisted; every value is recomputed on
// each render.
package analytics

import (
	"sort"
	"time"

	"github.com/example/growthbot/pkg/models"
)

// Point is one chart sample: 1 for a Completed day, 0 otherwise
type Point struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Engine evaluates badges against a fixed, ordered badge list
type Engine struct {
	badges []models.Badge
}

// NewEngine creates an engine for the given badge list
func NewEngine(badges []models.Badge) *Engine {
	owned := make([]models.Badge, len(badges))
	copy(owned, badges)
	return &Engine{badges: owned}
}

// Badges returns the configured badge list in declared order
func (e *Engine) Badges() []models.Badge {
	out := make([]models.Badge, len(e.badges))
	copy(out, e.badges)
	return out
}

// EarnedBadges returns every badge whose threshold is reached, in declared order
func (e *Engine) EarnedBadges(table models.ProgressTable) []models.Badge {
	return BadgesFor(e.badges, CompletionCount(table))
}

// BadgesFor filters badges by completed count without reordering them
func BadgesFor(badges []models.Badge, completed int) []models.Badge {
	var earned []models.Badge
	for _, b := range badges {
		if completed >= b.Threshold {
			earned = append(earned, b)
		}
	}
	return earned
}

// LongestStreak returns the longest run of Completed records on consecutive
// calendar days across the whole history. This is not the run ending today.
// Records whose date does not parse are ignored. Two Completed records on the
// same date break the run.
func LongestStreak(table models.ProgressTable) int {
	var days []time.Time
	for _, r := range table.Records {
		if !r.Completed() {
			continue
		}
		day, err := r.Day()
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].Before(days[j]) })

	current, longest := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// CompletionCount returns the number of Completed records
func CompletionCount(table models.ProgressTable) int {
	n := 0
	for _, r := range table.Records {
		if r.Completed() {
			n++
		}
	}
	return n
}

// CompletionRate returns completed/total*100, or 0 for an empty table
func CompletionRate(table models.ProgressTable) float64 {
	if table.Len() == 0 {
		return 0
	}
	return float64(CompletionCount(table)) / float64(table.Len()) * 100
}

// Series maps each record to 1 (Completed) or 0, ordered by date ascending.
// Records with equal dates keep their insertion order.
func Series(table models.ProgressTable) []Point {
	points := make([]Point, 0, table.Len())
	for _, r := range table.Records {
		v := 0
		if r.Completed() {
			v = 1
		}
		points = append(points, Point{Date: r.Date, Value: v})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// Recent returns the last n inserted records, newest date first
func Recent(table models.ProgressTable, n int) []models.ProgressRecord {
	if n <= 0 {
		return nil
	}
	start := table.Len() - n
	if start < 0 {
		start = 0
	}

	recent := make([]models.ProgressRecord, table.Len()-start)
	copy(recent, table.Records[start:])
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	return recent
}
