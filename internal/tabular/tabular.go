// Package tabular decodes uploaded CSV/XLSX tables and serializes views of
// the employee store back to both formats.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Table is a decoded upload: a header row plus data rows, all strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseError wraps any failure to decode upload bytes.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s upload: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NormalizeHeader maps a raw header cell onto the canonical column spelling.
func NormalizeHeader(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Parse decodes upload bytes in the given format. Header cells are
// normalized; data cells are kept verbatim.
func Parse(data []byte, format string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return parseCSV(data)
	case FormatXLSX:
		return parseXLSX(data)
	default:
		return Table{}, &ParseError{Format: format, Err: fmt.Errorf("unsupported format %q", format)}
	}
}

func parseCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, &ParseError{Format: FormatCSV, Err: err}
	}
	if len(records) == 0 {
		return Table{}, &ParseError{Format: FormatCSV, Err: fmt.Errorf("empty file")}
	}
	return tableFrom(records), nil
}

func parseXLSX(data []byte) (Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("workbook has no sheets")}
	}
	records, err := file.GetRows(sheets[0])
	if err != nil {
		return Table{}, &ParseError{Format: FormatXLSX, Err: err}
	}
	if len(records) == 0 {
		return Table{}, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("sheet %s is empty", sheets[0])}
	}
	return tableFrom(records), nil
}

func tableFrom(records [][]string) Table {
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}
	return Table{Headers: headers, Rows: records[1:]}
}

// MissingColumns lists required columns absent from the headers after
// normalization. Extra columns are tolerated.
func MissingColumns(headers, required []string) []string {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[NormalizeHeader(h)] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// WriteCSV serializes a view as UTF-8 comma-separated text with a header row.
func WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX serializes a view as a single-sheet workbook.
func WriteXLSX(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := setRow(file, sheetName, 1, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setRow(file, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(file *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return file.SetSheetRow(sheet, cell, &cells)
}

// TemplateCSV builds the header-only file handed out for compliant uploads.
func TemplateCSV(headers []string) []byte {
	return []byte(strings.Join(headers, ",") + "\n")
}
