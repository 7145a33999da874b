package models

type LunchItem struct {
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title"`
	Image string   `json:"image"`
	Price float64  `json:"price"`
	Tags  []string `json:"tags"`
}

// Clone returns a copy that shares no slice storage with the receiver,
// so a draft edit can never reach back into the catalog.
func (l LunchItem) Clone() LunchItem {
	out := l
	out.Tags = append([]string(nil), l.Tags...)
	return out
}
