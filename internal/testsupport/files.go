package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SampleBudget is a small budget sheet with a totals row.
var SampleBudget = [][]string{
	{"Task", "Budgeted", "Spent", "Remaining"},
	{"Design", "10000", "8000", "2000"},
	{"Development", "50000", "20000", "30000"},
	{"Testing", "15000", "12000", "3000"},
	{"TOTALS", "75000", "40000", "35000"},
}

// WriteText writes body to path, creating parent directories.
func WriteText(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteBudgetCSV writes records as a CSV file.
func WriteBudgetCSV(t testing.TB, path string, records [][]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write csv %s: %v", path, err)
	}
}

// WriteBudgetXLSX writes records into sheet of a new workbook. Cells that
// look numeric are stored as numbers so the reader sees real spreadsheet values.
func WriteBudgetXLSX(t testing.TB, path, sheet string, records [][]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for r, record := range records {
		row := make([]any, len(record))
		for i, value := range record {
			if n, ok := numeric(value); ok {
				row[i] = n
			} else {
				row[i] = value
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", r+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
}

func numeric(value string) (float64, bool) {
	n, err := strconv.ParseFloat(value, 64)
	return n, err == nil
}
