package services

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookContentType is the MIME type for xlsx payloads.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Suggested download filenames for the two report exports.
const (
	TaskReportFilename = "task_details.xlsx"
	UserReportFilename = "user_details.xlsx"
)

// ErrSchemaMismatch reports a data row whose column count differs from the
// header row. A misaligned export is worse than a rejected one, so the whole
// encode fails instead of truncating or padding.
var ErrSchemaMismatch = errors.New("report row does not match header schema")

// ExportService serializes report rows into a downloadable workbook. The
// payload is produced in one unit; there is no partial or resumable export.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// EncodeWorkbook renders the header and rows into a single-sheet xlsx
// workbook, header row first. Zero data rows still produce a valid workbook
// containing only the header.
func (s *ExportService) EncodeWorkbook(sheet string, header []string, rows [][]string) ([]byte, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d", ErrSchemaMismatch, i, len(row), len(header))
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %v", err)
	}

	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %v", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowIndex int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %v", rowIndex, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %v", rowIndex, err)
	}
	return nil
}
