package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/campuskit/attendance_backend/internal/attendance"
	"github.com/campuskit/attendance_backend/internal/models"
)

const sheetName = "Attendance"

// WriteXLSX renders the records plus a statistics block as an Excel
// workbook, returned as a buffer for the handler to stream out.
func WriteXLSX(records []models.AttendanceRecord, stats attendance.Stats) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	for r := range records {
		values := row(&records[r])
		// render the status label rather than the storage enum
		values[len(values)-1] = records[r].Status.Label()
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summary := [][2]interface{}{
		{"Total Days", stats.TotalDays},
		{"Present Days", stats.PresentDays},
		{"Attendance Rate", fmt.Sprintf("%.1f%%", stats.AttendanceRate)},
		{"On-Time Rate", fmt.Sprintf("%.1f%%", stats.OnTimeRate)},
	}
	base := len(records) + 3
	for i, kv := range summary {
		keyCell, err := excelize.CoordinatesToCellName(1, base+i)
		if err != nil {
			return nil, err
		}
		valCell, err := excelize.CoordinatesToCellName(2, base+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, keyCell, kv[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, valCell, kv[1]); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
