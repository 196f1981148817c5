package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/model"
	"trolli/internal/store"
)

// MemberHandler backs the admin-only members view.
type MemberHandler struct {
	store *store.Store
}

func NewMemberHandler(st *store.Store) *MemberHandler {
	return &MemberHandler{store: st}
}

// Member is one row of the members view.
type Member struct {
	Name       string `json:"name"`
	BoardCount int    `json:"board_count"`
}

// GetAll lists every account except admin, which is excluded from the
// deletable listing.
func (h *MemberHandler) GetAll(c *gin.Context) {
	members := []Member{}
	for _, u := range h.store.GetUsers(c.Request.Context()) {
		if u.Name == model.AdminName {
			continue
		}
		members = append(members, Member{Name: u.Name, BoardCount: len(u.Boards)})
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.fieldErrors(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.store.AddUser(c.Request.Context(), req.Username, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully"})
}

// Delete removes an account. Removing admin is rejected with a user-visible
// error and no state change.
func (h *MemberHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.store.RemoveUser(c.Request.Context(), name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed successfully"})
}
