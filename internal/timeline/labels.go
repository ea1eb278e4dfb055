package timeline

import "github.com/sadopc/mesai/internal/model"

// TypeLabel is the display name of a work kind.
func TypeLabel(t model.WorkType) string {
	if t == model.WorkVideo {
		return "Video"
	}
	return "Yazılım"
}

// StatusLabel is the display name of a session state.
func StatusLabel(s model.Status) string {
	if s == model.StatusInProgress {
		return "Devam Ediyor"
	}
	return "Tamamlandı"
}
