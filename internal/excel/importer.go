package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath        string // Path to the Excel or CSV file
	DateColumn      string // Column with the date
	ChallengeColumn string // Column with the challenge text
	StatusColumn    string // Column with the status
	SheetName       string // Name of the sheet to import
	StartRow        int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration, matching the
// layout written by Export.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DateColumn:      "A",
		ChallengeColumn: "B",
		StatusColumn:    "C",
		SheetName:       HistorySheet,
		StartRow:        2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the parsed rows and the rows that were rejected
type ImportResult struct {
	TotalProcessed int
	Records        []models.ProgressRecord
	Errors         []string
}

// ImportHistory reads progress rows from an Excel or CSV file
func ImportHistory(config ImportConfig) (*ImportResult, error) {
	// Check the file extension
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel reads rows from the configured sheet
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++
		if err := processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV reads a file in the progress storage format; unlike the
// progress store, bad rows are reported and skipped instead of failing.
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := readCSVRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}

		result.TotalProcessed++
		record, err := progress.ParseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// processRow picks the configured columns out of an Excel row
func processRow(row []string, config ImportConfig, result *ImportResult) error {
	fields := []string{
		cell(row, config.DateColumn),
		strings.TrimSpace(cell(row, config.ChallengeColumn)),
		strings.TrimSpace(cell(row, config.StatusColumn)),
	}

	record, err := progress.ParseRow(fields)
	if err != nil {
		return err
	}
	result.Records = append(result.Records, record)
	return nil
}

func cell(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columnToIndex converts an Excel column letter to a 0-based index
func columnToIndex(column string) int {
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return -1
	}
	return n - 1
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
