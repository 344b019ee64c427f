// Package codes derives code values from a displayed codes table and holds
// the user's selection of codes for filtering.
package codes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ginjaninja78/order-code-filter/internal/table"
)

// CodeColumn is the name of the column codes are read from. It is matched
// case-insensitively, unlike every other column lookup.
const CodeColumn = "code"

var (
	// ErrNoCodeColumn is returned when the displayed table has no column
	// named "code" in any letter case.
	ErrNoCodeColumn = errors.New("no 'code' column found")

	// ErrRowOutOfRange is returned for a selected row index outside the table.
	ErrRowOutOfRange = errors.New("selected row out of range")
)

// Extract returns the code value of each selected row, in the order the rows
// are given. Duplicates are kept and nothing is sorted.
func Extract(displayed *table.Table, rows []int) ([]any, error) {
	if displayed == nil {
		return nil, ErrNoCodeColumn
	}
	col := displayed.ColumnIndexFold(CodeColumn)
	if col < 0 {
		return nil, ErrNoCodeColumn
	}

	values := make([]any, 0, len(rows))
	for _, r := range rows {
		if r < 0 || r >= displayed.Len() {
			return nil, fmt.Errorf("%w: row %d, table has %d rows", ErrRowOutOfRange, r, displayed.Len())
		}
		values = append(values, displayed.Value(r, col))
	}
	return values, nil
}

// Selection is a set of code values compared by text form. The zero value is
// an empty selection.
type Selection struct {
	members map[string]struct{}
}

// NewSelection builds a selection from values. Duplicates collapse.
func NewSelection(values ...any) Selection {
	s := Selection{members: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.members[table.Text(v)] = struct{}{}
	}
	return s
}

// Len returns the number of distinct codes.
func (s Selection) Len() int {
	return len(s.members)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.members) == 0
}

// Contains reports whether text is one of the selected codes. The comparison
// is exact and case-sensitive.
func (s Selection) Contains(text string) bool {
	_, ok := s.members[text]
	return ok
}

// Texts returns the selected codes sorted.
func (s Selection) Texts() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
