package progress

import (
	"fmt"

	"github.com/example/growthbot/pkg/models"
)

// ChallengePicker supplies the challenge for a newly created day
type ChallengePicker func() (string, error)

// EnsureToday appends a Pending record for today unless one already exists.
// The lookup is exact string equality on the date key. It returns the table,
// today's challenge text, and whether a record was appended.
func EnsureToday(table models.ProgressTable, today string, pick ChallengePicker) (models.ProgressTable, string, bool, error) {
	if existing, ok := table.Find(today); ok {
		return table, existing.Challenge, false, nil
	}

	challenge, err := pick()
	if err != nil {
		return table, "", false, fmt.Errorf("failed to pick challenge: %w", err)
	}

	table = table.Clone()
	table.Records = append(table.Records, models.ProgressRecord{
		Date:      today,
		Challenge: challenge,
		Status:    models.StatusPending,
	})
	return table, challenge, true, nil
}

// UpdateStatus sets the status of every record dated date and returns the number
// of matching records. Date and Challenge are left untouched. When no record
// matches it returns ErrRecordNotFound. The input table is not modified.
func UpdateStatus(table models.ProgressTable, date string, status models.Status) (models.ProgressTable, int, error) {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return table, 0, err
	}

	table = table.Clone()
	matched := 0
	for i := range table.Records {
		if table.Records[i].Date == date {
			table.Records[i].Status = status
			matched++
		}
	}
	if matched == 0 {
		return table, 0, fmt.Errorf("%w: %s", ErrRecordNotFound, date)
	}
	return table, matched, nil
}
