// Package render turns a tracker snapshot into text: plain messages for chat
// surfaces and a styled dashboard for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

// ChartCaption explains the 0/1 completion series
const ChartCaption = "Challenge Completion Over Time (1 = Completed, 0 = Pending)"

// StatusIcon returns the marker used for a status in lists
func StatusIcon(status models.Status) string {
	if status == models.StatusCompleted {
		return "✅"
	}
	return "⏳"
}

// Percent formats a completion rate the way every surface shows it
func Percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// TodayMessage is the daily challenge card
func TodayMessage(snap *tracker.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Today's Challenge (%s)\n\n", snap.Date)
	fmt.Fprintf(&b, "%s\n\n", snap.Challenge)
	fmt.Fprintf(&b, "Status: %s %s\n", StatusIcon(snap.Status), snap.Status)
	fmt.Fprintf(&b, "🔥 Streak: %d days\n\n", snap.Streak)
	fmt.Fprintf(&b, "💫 %s", snap.Quote)
	return b.String()
}

// StatsMessage lists the statistics panel
func StatsMessage(snap *tracker.Snapshot) string {
	var b strings.Builder
	b.WriteString("📈 Statistics\n\n")
	fmt.Fprintf(&b, "Total Challenges: %d\n", snap.Total)
	fmt.Fprintf(&b, "Completed Challenges: %d\n", snap.Completed)
	fmt.Fprintf(&b, "Completion Rate: %s\n", Percent(snap.CompletionRate))
	fmt.Fprintf(&b, "🔥 Longest Streak: %d days\n", snap.Streak)
	if len(snap.Series) > 0 {
		fmt.Fprintf(&b, "\n%s\n%s", CompletionStrip(snap.Series, 14), ChartCaption)
	}
	return b.String()
}

// BadgesMessage lists earned badges, or how far the next one is
func BadgesMessage(snap *tracker.Snapshot, all []models.Badge) string {
	var b strings.Builder
	b.WriteString("🏆 Achievements\n\n")
	if len(snap.Badges) == 0 {
		b.WriteString("No badges yet.\n")
	}
	for _, badge := range snap.Badges {
		fmt.Fprintf(&b, "%s\nUnlocked at %d completed challenges!\n\n", badge.Label, badge.Threshold)
	}
	if next, ok := NextBadge(all, snap.Completed); ok {
		fmt.Fprintf(&b, "Next: %s in %d more", next.Label, next.Threshold-snap.Completed)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HistoryMessage lists records one per line
func HistoryMessage(records []models.ProgressRecord) string {
	if len(records) == 0 {
		return "📝 No history yet."
	}
	var b strings.Builder
	b.WriteString("📝 Recent History\n")
	for _, r := range records {
		fmt.Fprintf(&b, "\n%s %s %s", r.Date, StatusIcon(r.Status), r.Challenge)
	}
	return b.String()
}

// FullMessage is every panel plus the motto
func FullMessage(snap *tracker.Snapshot, all []models.Badge) string {
	return strings.Join([]string{
		TodayMessage(snap),
		StatsMessage(snap),
		BadgesMessage(snap, all),
		HistoryMessage(snap.Recent),
		content.Motto,
	}, "\n\n")
}

// CompletionStrip draws the last n points of the series as emoji squares
func CompletionStrip(series []analytics.Point, n int) string {
	if n > 0 && len(series) > n {
		series = series[len(series)-n:]
	}
	var b strings.Builder
	for _, p := range series {
		if p.Value == 1 {
			b.WriteString("🟩")
		} else {
			b.WriteString("⬜")
		}
	}
	return b.String()
}

// NextBadge returns the first badge in declared order not yet earned
func NextBadge(all []models.Badge, completed int) (models.Badge, bool) {
	for _, badge := range all {
		if completed < badge.Threshold {
			return badge, true
		}
	}
	return models.Badge{}, false
}
