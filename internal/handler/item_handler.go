package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/board"
	"trolli/internal/model"
	"trolli/internal/store"
)

type ItemHandler struct {
	store   *store.Store
	refresh *Refresher
}

func NewItemHandler(st *store.Store, refresh *Refresher) *ItemHandler {
	return &ItemHandler{store: st, refresh: refresh}
}

// itemRequest carries the card form fields. Tags arrive as the raw
// comma-separated input and are parsed server-side.
type itemRequest struct {
	Text        string `json:"text" binding:"required"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Completed   bool   `json:"completed"`
}

func (r itemRequest) toItem() (model.Item, error) {
	priority, err := model.ParsePriority(r.Priority)
	if err != nil {
		return model.Item{}, err
	}
	return model.NewItem(r.Text, priority, r.Description, model.ParseTags(r.Tags), r.Completed)
}

func (h *ItemHandler) Create(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}
	listID, ok := intParam(c, "listID")
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"text": "Please enter a task name"}})
		return
	}

	item, err := req.toItem()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.AddItem(c.Request.Context(), username, boardID, listID, item)
	if err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusCreated, created)
}

func (h *ItemHandler) Update(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}
	listID, ok := intParam(c, "listID")
	if !ok {
		return
	}
	itemID, ok := intParam(c, "itemID")
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"text": "Please enter a task name"}})
		return
	}

	item, err := req.toItem()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = itemID

	updated, err := h.store.UpdateItem(c.Request.Context(), username, boardID, listID, item)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ToggleComplete flips the completion state of a card. The client reapplies
// its filters with the returned item.
func (h *ItemHandler) ToggleComplete(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}
	listID, ok := intParam(c, "listID")
	if !ok {
		return
	}
	itemID, ok := intParam(c, "itemID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	b, err := h.store.GetBoard(ctx, username, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	l := b.FindList(listID)
	if l == nil {
		fail(c, store.ErrListNotFound)
		return
	}
	idx := l.ItemIndex(itemID)
	if idx < 0 {
		fail(c, store.ErrItemNotFound)
		return
	}

	item := l.Items[idx]
	item.Completed = !item.Completed
	updated, err := h.store.UpdateItem(ctx, username, boardID, listID, item)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}
	listID, ok := intParam(c, "listID")
	if !ok {
		return
	}
	itemID, ok := intParam(c, "itemID")
	if !ok {
		return
	}

	if err := h.store.RemoveItem(c.Request.Context(), username, boardID, listID, itemID); err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// dropRequest describes one drag-release. TargetItemID is nil when the card
// was dropped on a list's end-of-list indicator.
type dropRequest struct {
	SrcListID    int  `json:"src_list_id"`
	ItemID       int  `json:"item_id"`
	DstListID    int  `json:"dst_list_id"`
	TargetItemID *int `json:"target_item_id"`
}

// Drop resolves a drag-and-drop release: self-drop no-op, same-list reorder,
// or cross-list transfer. The mutated board persists in a single snapshot
// save, then the projections refresh.
func (h *ItemHandler) Drop(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	b, err := h.store.GetBoard(ctx, username, boardID)
	if err != nil {
		fail(c, err)
		return
	}

	var result board.DropResult
	if req.TargetItemID != nil {
		result, err = board.DropOnItem(&b, req.SrcListID, req.ItemID, req.DstListID, *req.TargetItemID)
	} else {
		result, err = board.DropOnEnd(&b, req.SrcListID, req.ItemID, req.DstListID)
	}
	if err != nil {
		if errors.Is(err, board.ErrListNotFound) || errors.Is(err, board.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve drop"})
		}
		return
	}

	if result.Kind != board.DropNoop {
		if err := h.store.ReplaceBoard(ctx, username, b); err != nil {
			fail(c, err)
			return
		}
		h.refresh.BoardsChanged(ctx, username)
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "board": b})
}

// visibleRequest is a filter configuration applied to one list.
type visibleRequest struct {
	Filter board.Filter `json:"filter"`
}

// itemVisibility pairs an item with its flag under the requested filter.
type itemVisibility struct {
	Item    model.Item `json:"item"`
	Visible bool       `json:"visible"`
}

// Visible recomputes item visibility for a list under the supplied filter.
// Ordering is untouched; only the flags change.
func (h *ItemHandler) Visible(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}
	listID, ok := intParam(c, "listID")
	if !ok {
		return
	}

	var req visibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	b, err := h.store.GetBoard(c.Request.Context(), username, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	l := b.FindList(listID)
	if l == nil {
		fail(c, store.ErrListNotFound)
		return
	}

	flags := board.Apply(l.Items, req.Filter)
	items := make([]itemVisibility, len(l.Items))
	for i, it := range l.Items {
		items[i] = itemVisibility{Item: it, Visible: flags[i]}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
