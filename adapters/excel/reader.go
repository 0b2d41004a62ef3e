package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DataReader reads a single column of a spreadsheet or CSV file as a
// sequence of cell values
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	column   int
	header   bool
}

// NewDataReader creates a reader for the given file. The sheet name is
// ignored for CSV files; an empty sheet selects the first sheet.
func NewDataReader(filePath, sheet string, column int, header bool) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: sheet, column: column, header: header}
}

// ReadSequence returns the non-empty cells of the configured column
func (r *DataReader) ReadSequence() ([]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}
	if r.column < 0 {
		return nil, fmt.Errorf("column index must be non-negative, got %d", r.column)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if r.header && len(rows) > 0 {
		rows = rows[1:]
	}
	items := make([]string, 0, len(rows))
	for _, row := range rows {
		if r.column < len(row) && strings.TrimSpace(row[r.column]) != "" {
			items = append(items, row[r.column])
		}
	}
	log.Printf("[DataReader] Read %d items from %s", len(items), r.filePath)
	return items, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}
