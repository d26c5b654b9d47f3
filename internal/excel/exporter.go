// Package excel exports the progress history to xlsx, with a completion
// chart, and reads history back from xlsx or CSV files.
package excel

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/pkg/models"
)

const (
	// HistorySheet holds the raw Date, Challenge, Status rows
	HistorySheet = "Sheet1"
	// ChartSheet holds the date-ordered 0/1 series and its line chart
	ChartSheet = "Completion"
)

// Export writes the table and its completion chart into a workbook
func Export(table models.ProgressTable) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeHistory(f, table); err != nil {
		return nil, err
	}
	if err := writeChart(f, analytics.Series(table)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// ExportFile writes the workbook to path
func ExportFile(table models.ProgressTable, path string) error {
	buf, err := Export(table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeHistory(f *excelize.File, table models.ProgressTable) error {
	columns := table.Columns()
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Date, r.Challenge, string(r.Status)}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(HistorySheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(HistorySheet, "B", "B", 60); err != nil {
		return err
	}
	return f.SetColWidth(HistorySheet, "C", "C", 12)
}

func writeChart(f *excelize.File, series []analytics.Point) error {
	if _, err := f.NewSheet(ChartSheet); err != nil {
		return fmt.Errorf("failed to create chart sheet: %w", err)
	}

	header := []interface{}{models.ColumnDate, string(models.StatusCompleted)}
	if err := f.SetSheetRow(ChartSheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range series {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.Date, p.Value}
		if err := f.SetSheetRow(ChartSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(series) == 0 {
		return nil
	}

	last := len(series) + 1
	minimum, maximum := 0.0, 1.0
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", ChartSheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", ChartSheet, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", ChartSheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Challenge Completion Over Time"}},
		YAxis:  excelize.ChartAxis{Minimum: &minimum, Maximum: &maximum, MajorUnit: 1},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := f.AddChart(ChartSheet, "D2", chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}
