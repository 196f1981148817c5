package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/store"
	"trolli/internal/view"
)

// ViewHandler serves the navigation entry points of the UI shell: the
// all-boards grid, a single board by rail index, and the members view.
type ViewHandler struct {
	store *store.Store
}

func NewViewHandler(st *store.Store) *ViewHandler {
	return &ViewHandler{store: st}
}

// AllBoards serves the all-boards grid.
func (h *ViewHandler) AllBoards(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	h.allBoards(c, username)
}

func (h *ViewHandler) allBoards(c *gin.Context, username string) {
	boards, err := h.store.GetBoards(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":         "boards",
		"summaries":    view.Summaries(boards),
		"destinations": view.Destinations(boards),
	})
}

// Board serves a single board addressed by its rail index. A stale index past
// the current board count falls back to the all-boards view rather than
// erroring.
func (h *ViewHandler) Board(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	b, err := h.store.GetBoardByIndex(c.Request.Context(), username, index)
	if errors.Is(err, store.ErrBoardNotFound) {
		h.allBoards(c, username)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	boards, err := h.store.GetBoards(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":         "board",
		"index":        index,
		"board":        b,
		"destinations": view.Destinations(boards),
	})
}
