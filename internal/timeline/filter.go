package timeline

import "github.com/sadopc/mesai/internal/model"

// StatusFilter narrows the work list view. It never affects the timeline or
// the statistics panel.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterActive
	FilterCompleted
)

var filterNames = []string{"Tümü", "Devam Eden", "Tamamlanan"}

func (f StatusFilter) String() string { return filterNames[f] }

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	return (f + 1) % 3
}

// FilterByStatus returns the works matching the filter, order preserved.
func FilterByStatus(works []model.Work, f StatusFilter) []model.Work {
	if f == FilterAll {
		return works
	}
	want := model.StatusCompleted
	if f == FilterActive {
		want = model.StatusInProgress
	}
	var out []model.Work
	for _, w := range works {
		if w.Status() == want {
			out = append(out, w)
		}
	}
	return out
}
