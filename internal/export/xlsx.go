package export

import (
	"fmt"
	"time"

	"github.com/sadopc/mesai/internal/model"
	"github.com/xuri/excelize/v2"
)

func ToXLSX(works []model.Work, day time.Time, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := day.Format("2006-01-02")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, w := range works {
		for col, v := range row(w) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}
