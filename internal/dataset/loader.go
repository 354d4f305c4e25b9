// Package dataset loads the complaint register from a spreadsheet file into
// typed records and watches the file for replacement.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"complaints-service/internal/model"
)

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Load reads a .csv or .xlsx complaint table from path. The header row must
// contain every required column (matched case-insensitively); any cell that
// fails to parse aborts the load with a parse error naming the row.
func Load(path string) ([]model.Complaint, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	default:
		return nil, sourceErr(fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)), nil)
	}
}

// Exists reports whether the dataset file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func loadCSV(path string) ([]model.Complaint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, sourceErr("open dataset", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, sourceErr("read dataset", err)
	}
	return fromRows(rows)
}

func loadXLSX(path string) ([]model.Complaint, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, sourceErr("open workbook", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return nil, sourceErr("read worksheet", err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]model.Complaint, error) {
	if len(rows) == 0 {
		return nil, schemaErr("dataset has no header row")
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]model.Complaint, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		record, err := parseRow(row, index, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, col := range model.RequiredColumns() {
		if _, ok := index[col]; !ok {
			return nil, schemaErr(fmt.Sprintf("required column %q missing", col))
		}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int, line int) (model.Complaint, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id, err := strconv.Atoi(field(model.ColumnID))
	if err != nil {
		return model.Complaint{}, parseErr(fmt.Sprintf("row %d: invalid id %q", line, field(model.ColumnID)), err)
	}

	status, err := parseStatus(field(model.ColumnStatus))
	if err != nil {
		return model.Complaint{}, parseErr(fmt.Sprintf("row %d: invalid status %q", line, field(model.ColumnStatus)), err)
	}

	filedAt, err := parseDate(field(model.ColumnDate))
	if err != nil {
		return model.Complaint{}, parseErr(fmt.Sprintf("row %d: invalid date %q", line, field(model.ColumnDate)), err)
	}

	return model.Complaint{
		ID:      id,
		Type:    field(model.ColumnType),
		Dept:    field(model.ColumnDept),
		Status:  status,
		FiledAt: filedAt,
	}, nil
}

// parseStatus normalizes the raw status cell so variants like " open " and
// "OPEN" collapse to the canonical value. Anything else is a parse failure.
func parseStatus(raw string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return model.StatusOpen, nil
	case "closed":
		return model.StatusClosed, nil
	default:
		return "", fmt.Errorf("status must normalize to Open or Closed")
	}
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// Excel workbooks can hand back raw serial date numbers, counted in
	// days from 1899-12-30.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		days := int(serial)
		frac := serial - float64(days)
		return epoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour))), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date layout")
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
