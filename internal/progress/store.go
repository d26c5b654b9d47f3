// Package progress persists the daily challenge history and applies the two
// table mutations: appending today's record and changing a status.
package progress

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/growthbot/pkg/models"
)

// Store loads and saves the whole progress table.
type Store interface {
	Load(ctx context.Context) (models.ProgressTable, error)
	Save(ctx context.Context, table models.ProgressTable) error
}

// FileStore keeps the table in a comma-separated file with a header row.
// Save rewrites the file in full; concurrent writers race and the last one wins.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the CSV file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the table. A missing or zero-length file yields an empty table.
func (s *FileStore) Load(ctx context.Context) (models.ProgressTable, error) {
	if err := ctx.Err(); err != nil {
		return models.ProgressTable{}, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.ProgressTable{}, nil
	}
	if err != nil {
		return models.ProgressTable{}, fmt.Errorf("failed to open progress file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, s.path)
}

// Save overwrites the file with the full table
func (s *FileStore) Save(ctx context.Context, table models.ProgressTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create progress file: %w", err)
	}

	if err := WriteCSV(f, table); err != nil {
		f.Close()
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close progress file: %w", err)
	}
	return nil
}

// ReadCSV parses a progress table. source names the input in error messages.
func ReadCSV(r io.Reader, source string) (models.ProgressTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return models.ProgressTable{}, nil
	}
	if err != nil {
		return models.ProgressTable{}, malformed(source, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if !sameColumns(header, models.ProgressTable{}.Columns()) {
		return models.ProgressTable{}, &MalformedError{
			Source: source,
			Line:   1,
			Reason: fmt.Sprintf("unexpected header %q", strings.Join(header, ",")),
		}
	}

	var table models.ProgressTable
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.ProgressTable{}, malformed(source, err)
		}
		line, _ := reader.FieldPos(0)

		record, err := ParseRow(row)
		if err != nil {
			return models.ProgressTable{}, &MalformedError{Source: source, Line: line, Reason: err.Error()}
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// WriteCSV serializes the table with the header row first
func WriteCSV(w io.Writer, table models.ProgressTable) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns()); err != nil {
		return err
	}
	for _, r := range table.Records {
		if err := writer.Write([]string{r.Date, r.Challenge, string(r.Status)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ParseRow validates one Date,Challenge,Status row
func ParseRow(row []string) (models.ProgressRecord, error) {
	if len(row) != 3 {
		return models.ProgressRecord{}, fmt.Errorf("expected 3 fields, got %d", len(row))
	}

	record := models.ProgressRecord{Date: row[0], Challenge: row[1]}
	if _, err := record.Day(); err != nil {
		return models.ProgressRecord{}, fmt.Errorf("invalid date %q", row[0])
	}

	status, err := models.ParseStatus(row[2])
	if err != nil {
		return models.ProgressRecord{}, err
	}
	record.Status = status

	return record, nil
}

func malformed(source string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &MalformedError{Source: source, Line: parseErr.Line, Reason: parseErr.Err.Error()}
	}
	return &MalformedError{Source: source, Reason: err.Error()}
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
