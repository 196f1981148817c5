package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/auth"
	"trolli/internal/middleware"
	"trolli/internal/session"
	"trolli/internal/store"
	"trolli/internal/view"
)

type AuthHandler struct {
	store   *store.Store
	tokens  *auth.Manager
	session *session.Store
}

func NewAuthHandler(st *store.Store, tokens *auth.Manager, sess *session.Store) *AuthHandler {
	return &AuthHandler{store: st, tokens: tokens, session: sess}
}

// credentialsRequest is shared by register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// fieldErrors reports validation problems keyed by form field so the client
// can show them in place.
func (r credentialsRequest) fieldErrors() map[string]string {
	errs := map[string]string{}
	if r.Username == "" {
		errs["username"] = "Please enter a username"
	}
	if r.Password == "" {
		errs["password"] = "Please enter a password"
	}
	return errs
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token        string              `json:"token"`
	User         string              `json:"user"`
	Summaries    []view.BoardSummary `json:"summaries"`
	Destinations []view.Destination  `json:"destinations"`
	Theme        string              `json:"theme,omitempty"`
}

func (h *AuthHandler) Register(c *gin.Context) {
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
		if err == store.ErrUserExists {
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"username": "User already exists"}})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies the credentials, remembers the session and issues a token.
// An account logging in with no boards gets "My First Board" created for it.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.fieldErrors(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, req.Username)
	if err != nil || user.Password != req.Password {
		// one generic message for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if len(user.Boards) == 0 {
		if _, err := h.store.AddBoard(ctx, user.Name, "My First Board"); err != nil {
			fail(c, err)
			return
		}
	}

	token, err := h.tokens.GenerateToken(user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	if err := h.session.Set(session.KeyCurrentUser, user.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remember session"})
		return
	}

	boards, err := h.store.GetBoards(ctx, user.Name)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:        token,
		User:         user.Name,
		Summaries:    view.Summaries(boards),
		Destinations: view.Destinations(boards),
		Theme:        h.session.Get(session.KeyThemeMode),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Remove(session.KeyCurrentUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports the remembered username and theme so a restarted client can
// restore its state before re-authenticating.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":  h.session.Get(session.KeyCurrentUser),
		"theme": h.session.Get(session.KeyThemeMode),
	})
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=LIGHT DARK"`
}

func (h *AuthHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be LIGHT or DARK"})
		return
	}
	if err := h.session.Set(session.KeyThemeMode, req.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

// currentUser pulls the authenticated username out of the context; handlers
// behind AuthRequired can rely on it being present.
func currentUser(c *gin.Context) (string, bool) {
	username, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	}
	return username, ok
}
