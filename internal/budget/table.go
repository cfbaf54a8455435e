package budget

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoRows indicates the source holds no header row.
	ErrNoRows = errors.New("budget data has no header row")
	// ErrUnsupportedFormat indicates an input extension Load cannot read.
	ErrUnsupportedFormat = errors.New("unsupported budget file format")
)

// Cell is one spreadsheet value. Raw keeps the source text.
type Cell struct {
	Raw     string  `json:"raw"`
	Value   float64 `json:"value,omitempty"`
	Numeric bool    `json:"numeric"`
}

// NewCell classifies raw as numeric or text.
func NewCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if v, ok := ParseNumber(raw); ok {
		return Cell{Raw: raw, Value: v, Numeric: true}
	}
	return Cell{Raw: raw}
}

// Table is a header row plus data rows padded to the header width.
type Table struct {
	Source  string   `json:"source"`
	Sheet   string   `json:"sheet,omitempty"`
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// ColumnIndex returns the position of the named column, matching case-insensitively.
func (t *Table) ColumnIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// Options control how Load reads a workbook.
type Options struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
}

// Load reads the budget table at path. The format follows the extension.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		sheet   string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		records, sheet, err = readWorkbook(path, opts.Sheet)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q (use .xlsx or .csv)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := newTable(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table.Source = path
	table.Sheet = sheet
	return table, nil
}

func readWorkbook(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", fmt.Errorf("%s: %w", path, ErrNoRows)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, "", fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, sheet, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return parseCSV(file)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func newTable(records [][]string) (*Table, error) {
	headerIdx := -1
	for i, record := range records {
		if !blankRecord(record) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoRows
	}

	header := records[headerIdx]
	width := len(header)
	for _, record := range records[headerIdx+1:] {
		if len(record) > width {
			width = len(record)
		}
	}
	columns := make([]string, width)
	for i := range columns {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Column " + strconv.Itoa(i+1)
		}
		columns[i] = name
	}

	table := &Table{Columns: columns}
	for _, record := range records[headerIdx+1:] {
		if blankRecord(record) {
			continue
		}
		row := make([]Cell, width)
		for i := range row {
			if i < len(record) {
				row[i] = NewCell(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func blankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// ParseNumber reads plain, currency, thousands-separated, and accounting
// negative numbers such as "1200", "$1,200.50", and "(300)".
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789.eE+-", r) {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
