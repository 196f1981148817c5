package board

import (
	"errors"

	"trolli/internal/model"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrItemNotFound = errors.New("item not found")
)

// DropKind tells the caller what a drop resolved to.
type DropKind string

const (
	// DropNoop is a card dropped on itself.
	DropNoop DropKind = "noop"
	// DropReorder moved a card within its own list.
	DropReorder DropKind = "reorder"
	// DropTransfer copied a card into another list and removed the original.
	DropTransfer DropKind = "transfer"
)

// DropResult reports how a drop was resolved. NewItemID is set only for
// transfers, where the destination allocates a fresh identity.
type DropResult struct {
	Kind      DropKind `json:"kind"`
	NewItemID int      `json:"new_item_id,omitempty"`
}

// DropOnItem resolves dropping the card (srcListID, itemID) onto the card
// (dstListID, targetItemID), mutating the board in place.
//
// Within one list the dragged item is removed and then inserted at the index
// the target occupied before the removal: dragging A onto C in [A,B,C] yields
// [B,C,A]. The moved item lands after the target when dragged down and before
// it when dragged up.
//
// Across lists the item is value-copied into the destination at the target's
// index with a fresh id, then the original is removed from the source. Both
// lists belong to the same board, so the caller's single snapshot save makes
// the two steps atomic.
func DropOnItem(b *model.Board, srcListID, itemID, dstListID, targetItemID int) (DropResult, error) {
	src := b.FindList(srcListID)
	if src == nil {
		return DropResult{}, ErrListNotFound
	}
	dst := b.FindList(dstListID)
	if dst == nil {
		return DropResult{}, ErrListNotFound
	}

	srcIdx := src.ItemIndex(itemID)
	if srcIdx < 0 {
		return DropResult{}, ErrItemNotFound
	}
	dstIdx := dst.ItemIndex(targetItemID)
	if dstIdx < 0 {
		return DropResult{}, ErrItemNotFound
	}

	// Dropping a card on itself is always a no-op.
	if srcListID == dstListID && itemID == targetItemID {
		return DropResult{Kind: DropNoop}, nil
	}

	if srcListID == dstListID {
		// Remove, then insert at the target's pre-removal index.
		item := src.Items[srcIdx]
		src.Items = append(src.Items[:srcIdx], src.Items[srcIdx+1:]...)
		src.InsertItem(dstIdx, item)
		return DropResult{Kind: DropReorder}, nil
	}

	return transfer(src, dst, srcIdx, dstIdx)
}

// DropOnEnd resolves dropping a card onto a list's end-of-list indicator,
// which is always droppable, even on an empty list. Within the source list
// this moves the card to the end; into another list it transfers with append.
func DropOnEnd(b *model.Board, srcListID, itemID, dstListID int) (DropResult, error) {
	src := b.FindList(srcListID)
	if src == nil {
		return DropResult{}, ErrListNotFound
	}
	dst := b.FindList(dstListID)
	if dst == nil {
		return DropResult{}, ErrListNotFound
	}

	srcIdx := src.ItemIndex(itemID)
	if srcIdx < 0 {
		return DropResult{}, ErrItemNotFound
	}

	if srcListID == dstListID {
		if srcIdx == len(src.Items)-1 {
			return DropResult{Kind: DropNoop}, nil
		}
		item := src.Items[srcIdx]
		src.Items = append(src.Items[:srcIdx], src.Items[srcIdx+1:]...)
		src.Items = append(src.Items, item)
		return DropResult{Kind: DropReorder}, nil
	}

	return transfer(src, dst, srcIdx, len(dst.Items))
}

// transfer copies the source item into dst at insertAt under a fresh id, then
// removes the original. Destination-insert before source-remove: a failure
// between the steps duplicates the value instead of losing it.
func transfer(src, dst *model.List, srcIdx, insertAt int) (DropResult, error) {
	moved := src.Items[srcIdx].Clone()
	moved.ID = dst.AllocItemID()
	dst.InsertItem(insertAt, moved)
	src.Items = append(src.Items[:srcIdx], src.Items[srcIdx+1:]...)
	return DropResult{Kind: DropTransfer, NewItemID: moved.ID}, nil
}

// SwapLists exchanges the board positions of two lists. List dragging is a
// direct index swap, not an insert-shift.
func SwapLists(b *model.Board, listID, otherListID int) error {
	i := b.ListIndex(listID)
	j := b.ListIndex(otherListID)
	if i < 0 || j < 0 {
		return ErrListNotFound
	}
	b.Lists[i], b.Lists[j] = b.Lists[j], b.Lists[i]
	return nil
}
