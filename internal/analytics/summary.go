package analytics

import "github.com/example/growthbot/pkg/models"

// RecentLimit is how many records the history panel shows
const RecentLimit = 5

// Summary bundles every derived value a dashboard needs
type Summary struct {
	Streak         int                     `json:"streak"`
	Total          int                     `json:"total"`
	Completed      int                     `json:"completed"`
	CompletionRate float64                 `json:"completion_rate"`
	Badges         []models.Badge          `json:"badges"`
	Series         []Point                 `json:"series"`
	Recent         []models.ProgressRecord `json:"recent"`
}

// Summarize computes the full summary for table
func (e *Engine) Summarize(table models.ProgressTable) Summary {
	return Summary{
		Streak:         LongestStreak(table),
		Total:          table.Len(),
		Completed:      CompletionCount(table),
		CompletionRate: CompletionRate(table),
		Badges:         e.EarnedBadges(table),
		Series:         Series(table),
		Recent:         Recent(table, RecentLimit),
	}
}
