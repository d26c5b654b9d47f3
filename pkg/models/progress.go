package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date used as the record key
const DateLayout = "2006-01-02"

// Column names of the persisted progress table, in order
const (
	ColumnDate      = "Date"
	ColumnChallenge = "Challenge"
	ColumnStatus    = "Status"
)

// ErrInvalidStatus is returned when a status string is neither Pending nor Completed
var ErrInvalidStatus = errors.New("invalid status")

// Status is the completion state of a daily challenge
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// ParseStatus matches the persisted status text exactly (case-sensitive)
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ProgressRecord is one day of challenge history
type ProgressRecord struct {
	Date      string `json:"date" db:"date"`
	Challenge string `json:"challenge" db:"challenge"`
	Status    Status `json:"status" db:"status"`
}

// Completed reports whether the record is marked Completed
func (r ProgressRecord) Completed() bool {
	return r.Status == StatusCompleted
}

// Day parses the record date key
func (r ProgressRecord) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// ProgressTable is the insertion-ordered history loaded wholesale into memory
type ProgressTable struct {
	Records []ProgressRecord `json:"records"`
}

// Columns returns the field names of the table in storage order
func (t ProgressTable) Columns() []string {
	return []string{ColumnDate, ColumnChallenge, ColumnStatus}
}

// Len returns the number of records
func (t ProgressTable) Len() int {
	return len(t.Records)
}

// Find returns the first record for the date key
func (t ProgressTable) Find(date string) (ProgressRecord, bool) {
	for _, r := range t.Records {
		if r.Date == date {
			return r, true
		}
	}
	return ProgressRecord{}, false
}

// Has reports whether any record carries the date key
func (t ProgressTable) Has(date string) bool {
	_, ok := t.Find(date)
	return ok
}

// Clone returns a copy that shares no backing array with t
func (t ProgressTable) Clone() ProgressTable {
	records := make([]ProgressRecord, len(t.Records))
	copy(records, t.Records)
	return ProgressTable{Records: records}
}

// Badge is a label unlocked once the completed count reaches Threshold
type Badge struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
}
