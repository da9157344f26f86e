package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Datos"

// ToWorkbook renders the same rows as ToDelimitedText into an XLSX workbook
// with a bold header row.
func ToWorkbook(records []models.Record, headers []Header) ([]byte, error) {
	return toWorkbook(records, headers, time.Now())
}

func toWorkbook(records []models.Record, headers []Header, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h.Label); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", h.Label, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header %q: %w", h.Label, err)
		}
	}

	for i, row := range Rows(records, headers, now) {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
