package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trolli/internal/store"
	"trolli/internal/view"
)

type BoardHandler struct {
	store   *store.Store
	refresh *Refresher
}

func NewBoardHandler(st *store.Store, refresh *Refresher) *BoardHandler {
	return &BoardHandler{store: st, refresh: refresh}
}

type boardRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BoardHandler) Create(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}

	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Please enter a board name"}})
		return
	}

	board, err := h.store.AddBoard(c.Request.Context(), username, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.store.GetBoards(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"boards":       boards,
		"summaries":    view.Summaries(boards),
		"destinations": view.Destinations(boards),
	})
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	board, err := h.store.GetBoard(c.Request.Context(), username, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Update(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Please enter a board name"}})
		return
	}

	board, err := h.store.UpdateBoard(c.Request.Context(), username, boardID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.store.RemoveBoard(c.Request.Context(), username, boardID); err != nil {
		fail(c, err)
		return
	}

	h.refresh.BoardsChanged(c.Request.Context(), username)
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// intParam parses a numeric path parameter, answering 400 on garbage.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}
