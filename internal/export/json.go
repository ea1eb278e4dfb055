package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/mesai/internal/model"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Day        string       `json:"day"`
	Count      int          `json:"count"`
	Works      []model.Work `json:"works"`
}

func ToJSON(works []model.Work, day time.Time, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Day:        day.Format("2006-01-02"),
		Count:      len(works),
		Works:      works,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
