package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readCSV reads a delimited text file. Every non-empty cell is read as a
// string; no type inference is applied to CSV sources.
func readCSV(path string, opts Options) ([]string, [][]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, opts)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: file is empty", ErrNoData)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if isRowEmpty(header) {
		return nil, nil, fmt.Errorf("%w: header row is blank", ErrNoData)
	}
	header[0] = trimBOM(header[0])

	missing := missingSet(opts.MissingValues)

	var cells [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isRowEmpty(record) {
			continue
		}

		values := make([]any, len(record))
		for i, cell := range record {
			if cell == "" || missing[cell] {
				continue
			}
			values[i] = cell
		}
		cells = append(cells, values)
	}

	return header, cells, nil
}

// configureReader applies the loader options to the CSV reader.
func configureReader(reader *csv.Reader, opts Options) {
	reader.Comma = opts.Delimiter

	// Rows may be shorter or longer than the header.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}

// trimBOM strips a UTF-8 byte order mark written by spreadsheet exports.
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
