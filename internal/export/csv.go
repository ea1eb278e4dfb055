// Package export writes a day's work list to CSV, JSON or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

var header = []string{"Personel", "Tür", "Başlangıç", "Bitiş", "Süre", "Durum", "Video Link"}

func row(w model.Work) []string {
	endStr := ""
	if w.EndTime != nil {
		endStr = w.EndTime.Format("15:04")
	}
	return []string{
		w.EmployeeName,
		timeline.TypeLabel(w.Type),
		w.StartTime.Format("15:04"),
		endStr,
		w.Duration,
		timeline.StatusLabel(w.Status()),
		w.VideoLink,
	}
}

func ToCSV(works []model.Work, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, w := range works {
		if err := cw.Write(row(w)); err != nil {
			return err
		}
	}
	return cw.Error()
}
