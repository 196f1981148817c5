package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/store"
)

// fail maps store errors onto the response taxonomy: validation 400,
// conflicts 409, protected operations 403, stale references 404, everything
// else 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrEmptyName), errors.Is(err, store.ErrEmptyPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, store.ErrAdminProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": "The admin account cannot be removed"})
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrBoardNotFound),
		errors.Is(err, store.ErrListNotFound),
		errors.Is(err, store.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist changes"})
	}
}
