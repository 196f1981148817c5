// Package board holds the list/item engines: filtering and the drag-and-drop
// reorder/transfer protocol. Everything here is pure over model values; the
// caller persists the mutated board afterwards.
package board

import "trolli/internal/model"

// Status filter values.
const (
	StatusAny        = "Any"
	StatusCompleted  = "Completed"
	StatusIncomplete = "Incomplete"
)

// PriorityAny disables the priority predicate.
const PriorityAny = "Any"

// Filter is the per-list filter configuration: a priority predicate, a
// completion predicate and a tag set. Zero values mean "Any".
type Filter struct {
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

// Matches reports whether a single item is visible under the filter. The three
// predicates combine with AND; an empty tag set matches everything.
func (f Filter) Matches(it model.Item) bool {
	if f.Priority != "" && f.Priority != PriorityAny {
		p, err := model.ParsePriority(f.Priority)
		if err != nil || it.Priority != p {
			return false
		}
	}
	switch f.Status {
	case StatusCompleted:
		if !it.Completed {
			return false
		}
	case StatusIncomplete:
		if it.Completed {
			return false
		}
	}
	if len(f.Tags) > 0 && !it.HasAnyTag(f.Tags) {
		return false
	}
	return true
}

// Apply computes the visibility flag for every item, in item order. Filtering
// never reorders; callers keep the flags aligned with the list's items.
func Apply(items []model.Item, f Filter) []bool {
	visible := make([]bool, len(items))
	for i, it := range items {
		visible[i] = f.Matches(it)
	}
	return visible
}
