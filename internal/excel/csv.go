package excel

import (
	"encoding/csv"
	"io"
)

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	return reader.ReadAll()
}
