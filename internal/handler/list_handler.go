package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/board"
	"trolli/internal/store"
)

type ListHandler struct {
	store   *store.Store
	refresh *Refresher
}

func NewListHandler(st *store.Store, refresh *Refresher) *ListHandler {
	return &ListHandler{store: st, refresh: refresh}
}

type listRequest struct {
	Title string `json:"title" binding:"required"`
	Color string `json:"color"`
}

func (h *ListHandler) Create(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"title": "Please enter a list title"}})
		return
	}

	list, err := h.store.AddList(c.Request.Context(), username, boardID, req.Title, req.Color)
	if err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusCreated, list)
}

func (h *ListHandler) Update(c *gin.Context) {
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

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"title": "Please enter a list title"}})
		return
	}

	list, err := h.store.UpdateList(c.Request.Context(), username, boardID, listID, req.Title, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) Delete(c *gin.Context) {
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

	if err := h.store.RemoveList(c.Request.Context(), username, boardID, listID); err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}

// listSwapRequest names the two lists whose board positions exchange when one
// header is dropped on the other.
type listSwapRequest struct {
	ListID      int `json:"list_id"`
	OtherListID int `json:"other_list_id"`
}

func (h *ListHandler) Swap(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req listSwapRequest
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

	if err := board.SwapLists(&b, req.ListID, req.OtherListID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.ReplaceBoard(ctx, username, b); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
