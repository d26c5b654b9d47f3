package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

var badges = []models.Badge{
	{Threshold: 5, Label: "Growth Seedling 🌱"},
	{Threshold: 10, Label: "Mindset Explorer 🗺️"},
}

func testSnapshot() *tracker.Snapshot {
	return &tracker.Snapshot{
		Date:      "2024-03-10",
		Challenge: "Practice positive self-talk 🗣️",
		Status:    models.StatusCompleted,
		Quote:     "Dream big, start small. 💫",
		Summary: analytics.Summary{
			Streak:         6,
			Total:          8,
			Completed:      6,
			CompletionRate: 75,
			Badges:         badges[:1],
			Series: []analytics.Point{
				{Date: "2024-03-09", Value: 0},
				{Date: "2024-03-10", Value: 1},
			},
			Recent: []models.ProgressRecord{
				{Date: "2024-03-10", Challenge: "Practice positive self-talk 🗣️", Status: models.StatusCompleted},
				{Date: "2024-03-09", Challenge: "Dream", Status: models.StatusPending},
			},
		},
	}
}

func TestTodayMessage(t *testing.T) {
	msg := TodayMessage(testSnapshot())
	assert.Contains(t, msg, "2024-03-10")
	assert.Contains(t, msg, "Practice positive self-talk")
	assert.Contains(t, msg, "✅ Completed")
	assert.Contains(t, msg, "🔥 Streak: 6 days")
	assert.Contains(t, msg, "Dream big, start small.")
}

func TestStatsMessage(t *testing.T) {
	msg := StatsMessage(testSnapshot())
	assert.Contains(t, msg, "Total Challenges: 8")
	assert.Contains(t, msg, "Completed Challenges: 6")
	assert.Contains(t, msg, "Completion Rate: 75.0%")
	assert.Contains(t, msg, "⬜🟩")
	assert.Contains(t, msg, ChartCaption)
}

func TestBadgesMessage(t *testing.T) {
	msg := BadgesMessage(testSnapshot(), badges)
	assert.Contains(t, msg, "Growth Seedling 🌱")
	assert.Contains(t, msg, "Unlocked at 5 completed challenges!")
	assert.Contains(t, msg, "Next: Mindset Explorer 🗺️ in 4 more")

	empty := testSnapshot()
	empty.Badges = nil
	empty.Completed = 0
	assert.Contains(t, BadgesMessage(empty, nil), "No badges yet.")
}

func TestHistoryMessage(t *testing.T) {
	assert.Equal(t, "📝 No history yet.", HistoryMessage(nil))

	msg := HistoryMessage(testSnapshot().Recent)
	assert.Contains(t, msg, "2024-03-10 ✅ Practice positive self-talk")
	assert.Contains(t, msg, "2024-03-09 ⏳ Dream")
}

func TestFullMessageEndsWithMotto(t *testing.T) {
	msg := FullMessage(testSnapshot(), badges)
	assert.Contains(t, msg, "🎯 Today's Challenge")
	assert.Contains(t, msg, "📈 Statistics")
	assert.Contains(t, msg, "🏆 Achievements")
	assert.Contains(t, msg, content.Motto)
}

func TestCompletionStrip(t *testing.T) {
	series := []analytics.Point{{Value: 1}, {Value: 0}, {Value: 1}, {Value: 1}}
	assert.Equal(t, "🟩⬜🟩🟩", CompletionStrip(series, 0))
	assert.Equal(t, "🟩🟩", CompletionStrip(series, 2))
	assert.Empty(t, CompletionStrip(nil, 5))
}

func TestNextBadge(t *testing.T) {
	next, ok := NextBadge(badges, 7)
	assert.True(t, ok)
	assert.Equal(t, 10, next.Threshold)

	_, ok = NextBadge(badges, 10)
	assert.False(t, ok)
}

func TestDashboard(t *testing.T) {
	out := Dashboard(testSnapshot(), badges)
	assert.Contains(t, out, "Growth Mindset Daily Challenge")
	assert.Contains(t, out, "Practice positive self-talk")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Growth Seedling")
	assert.Contains(t, out, ChartCaption)
	assert.Contains(t, out, "2024-03-09")
}

func TestSparklineAllPending(t *testing.T) {
	series := []analytics.Point{
		{Date: "2024-03-08", Value: 0},
		{Date: "2024-03-09", Value: 0},
		{Date: "2024-03-10", Value: 0},
	}

	out := Sparkline(series)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.Contains(t, out, strings.Repeat("─", sparklineWidth))
}

func TestSparklineEmpty(t *testing.T) {
	assert.Contains(t, Sparkline(nil), "no data")
	assert.NotEmpty(t, Sparkline(testSnapshot().Series))
}
