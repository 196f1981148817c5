package model

// Board is a named, ordered collection of lists owned by one user. List order
// in the slice drives horizontal position on screen and is mutated by
// list-drag reordering.
type Board struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Lists      []List `json:"lists"`
	NextListID int    `json:"next_list_id,omitempty"`
}

// AllocListID hands out the next list id for this board, reseeding from
// max(id)+1 for documents persisted before the counter existed.
func (b *Board) AllocListID() int {
	if b.NextListID < 1 {
		next := 1
		for _, l := range b.Lists {
			if l.ID >= next {
				next = l.ID + 1
			}
		}
		b.NextListID = next
	}
	id := b.NextListID
	b.NextListID++
	return id
}

// ListIndex returns the position of the list with the given id, or -1.
func (b *Board) ListIndex(listID int) int {
	for i, l := range b.Lists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

// FindList returns a pointer into the board's list slice, or nil. The pointer
// is invalidated by any mutation of b.Lists.
func (b *Board) FindList(listID int) *List {
	if idx := b.ListIndex(listID); idx >= 0 {
		return &b.Lists[idx]
	}
	return nil
}

// RemoveList deletes the list with the given id and everything in it.
func (b *Board) RemoveList(listID int) bool {
	idx := b.ListIndex(listID)
	if idx < 0 {
		return false
	}
	b.Lists = append(b.Lists[:idx], b.Lists[idx+1:]...)
	return true
}
