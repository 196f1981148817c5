package model

// List is an ordered column of items within a board. Item ids are unique
// within the list and never reused while the list survives; NextItemID is
// persisted alongside the list so a restart cannot reseed the counter below
// ids already handed out.
type List struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Color      string `json:"color"`
	Items      []Item `json:"items"`
	NextItemID int    `json:"next_item_id,omitempty"`
}

// AllocItemID hands out the next item id for this list. Documents written
// before the counter existed reseed it from max(id)+1.
func (l *List) AllocItemID() int {
	if l.NextItemID < 1 {
		next := 1
		for _, it := range l.Items {
			if it.ID >= next {
				next = it.ID + 1
			}
		}
		l.NextItemID = next
	}
	id := l.NextItemID
	l.NextItemID++
	return id
}

// ItemIndex returns the position of the item with the given id, or -1.
func (l *List) ItemIndex(itemID int) int {
	for i, it := range l.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// InsertItem places the (already id-assigned) item at index, shifting the
// tail right. Indexes past the end append.
func (l *List) InsertItem(index int, item Item) {
	if index < 0 || index > len(l.Items) {
		index = len(l.Items)
	}
	l.Items = append(l.Items, Item{})
	copy(l.Items[index+1:], l.Items[index:])
	l.Items[index] = item
}

// RemoveItem deletes the item with the given id, preserving the order of the
// rest. It reports whether the item was present.
func (l *List) RemoveItem(itemID int) bool {
	idx := l.ItemIndex(itemID)
	if idx < 0 {
		return false
	}
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	return true
}
