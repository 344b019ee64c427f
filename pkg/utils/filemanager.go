// =============================================================================
// Order Code Filter - File Utilities
// =============================================================================
//
// This module provides the small file helpers shared by the loader, the
// exporter and the CLI:
//   - Spreadsheet kind detection by extension
//   - Output file naming with placeholders
//   - Existence checks
//
// =============================================================================

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE KINDS
// =============================================================================

// FileKind classifies a spreadsheet path by its extension.
type FileKind int

const (
	// KindUnknown is any extension the application does not read.
	KindUnknown FileKind = iota

	// KindWorkbook is an Office Open XML workbook.
	KindWorkbook

	// KindCSV is a delimited text file.
	KindCSV
)

// workbookExtensions are the workbook formats excelize can open.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// ClassifyFile returns the kind of spreadsheet at path, judged by extension.
// The comparison is case-insensitive.
func ClassifyFile(path string) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case workbookExtensions[ext]:
		return KindWorkbook
	case ext == ".csv":
		return KindCSV
	default:
		return KindUnknown
	}
}

// String returns a short name for the kind.
func (k FileKind) String() string {
	switch k {
	case KindWorkbook:
		return "workbook"
	case KindCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName builds a file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {original}  - Passed in params, usually the source base name
//   - params: Extra placeholder values, keyed without braces.
//   - ext: The extension to enforce, including the dot (e.g. ".xlsx").
//
// EXAMPLE:
//   format: "{original}_filtered_{timestamp}"
//   params: {"original": "orders"}
//   output: "orders_filtered_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// FILE CHECKS
// =============================================================================

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
