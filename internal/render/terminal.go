package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

const (
	sparklineWidth  = 30
	sparklineHeight = 3
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	challengeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)

	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	sparklineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Dashboard renders the full terminal view of a snapshot
func Dashboard(snap *tracker.Snapshot, all []models.Badge) string {
	sections := []string{
		titleStyle.Render("🌱 Growth Mindset Daily Challenge"),
		sectionStyle.Render("🎯 Today's Challenge") + " " + dimStyle.Render(snap.Date),
		challengeStyle.Render(snap.Challenge),
		metric("Status", statusText(snap.Status)),
		sectionStyle.Render("💫 Daily Motivation"),
		snap.Quote,
		metric("🔥 Streak", fmt.Sprintf("%d days", snap.Streak)),
		sectionStyle.Render("📊 Progress Analysis"),
		Sparkline(snap.Series),
		dimStyle.Render(ChartCaption),
		sectionStyle.Render("🏆 Achievements"),
		badgeLines(snap, all),
		sectionStyle.Render("📈 Statistics"),
		metric("Total Challenges", fmt.Sprintf("%d", snap.Total)),
		metric("Completed Challenges", fmt.Sprintf("%d", snap.Completed)),
		metric("Completion Rate", Percent(snap.CompletionRate)),
		sectionStyle.Render("📝 Recent History"),
		HistoryTable(snap.Recent),
		"",
		dimStyle.Render(content.Motto),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Sparkline draws the completion series as a small bar chart
func Sparkline(series []analytics.Point) string {
	if len(series) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}

	// Fixed 0..1 scale plus an axis, so an all-Pending history still draws a flat line
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	spark.AutoMaxValue = false
	spark.SetMax(1)
	for _, p := range series {
		spark.Push(float64(p.Value))
	}
	spark.Draw()

	axis := dimStyle.Render(strings.Repeat("─", sparklineWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sparklineStyle.Render(spark.View()), axis)
}

// HistoryTable renders records as aligned rows
func HistoryTable(records []models.ProgressRecord) string {
	if len(records) == 0 {
		return dimStyle.Render("no history yet")
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s  %-9s  %s",
			labelStyle.Render(r.Date), statusText(r.Status), r.Challenge))
	}
	return strings.Join(lines, "\n")
}

func badgeLines(snap *tracker.Snapshot, all []models.Badge) string {
	var lines []string
	for _, badge := range snap.Badges {
		lines = append(lines, valueStyle.Render(badge.Label)+" "+
			dimStyle.Render(fmt.Sprintf("unlocked at %d completed challenges", badge.Threshold)))
	}
	if next, ok := NextBadge(all, snap.Completed); ok {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("next: %s in %d more", next.Label, next.Threshold-snap.Completed)))
	}
	if len(lines) == 0 {
		return dimStyle.Render("no badges configured")
	}
	return strings.Join(lines, "\n")
}

func metric(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func statusText(status models.Status) string {
	if status == models.StatusCompleted {
		return completedStyle.Render(string(status))
	}
	return pendingStyle.Render(string(status))
}
