package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"warehouseManagement/internal/access"
	"warehouseManagement/internal/auth"
	"warehouseManagement/internal/forecast"
	"warehouseManagement/internal/inventory"
	"warehouseManagement/internal/session"
	"warehouseManagement/models"
)

// Handler bundles the core services behind the HTTP surface.
type Handler struct {
	access    *access.Service
	inventory *inventory.Service
	forecast  *forecast.Service
	sessions  *session.Registry
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(acc *access.Service, inv *inventory.Service, fc *forecast.Service, sessions *session.Registry, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		access:    acc,
		inventory: inv,
		forecast:  fc,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.access.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, access.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	token, err := auth.IssueToken(h.jwtSecret, u.Username, u.Role, h.tokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not issue token")
		return
	}

	sess := h.sessions.Login(u.Username, u.Role)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username": u.Username,
			"role":     u.Role,
		},
		"session": sess,
	})
}

func (h *Handler) handleLogout(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c)
	h.sessions.Logout(p.Name)
	c.JSON(http.StatusOK, gin.H{"logged_in": false})
}

func (h *Handler) handleSession(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c)
	c.JSON(http.StatusOK, h.sessions.Current(p.Name))
}

type selectViewRequest struct {
	View string `json:"view" binding:"required"`
}

func (h *Handler) handleSelectView(c *gin.Context) {
	var req selectViewRequest
	if !bindJSON(c, &req) {
		return
	}

	p, _ := auth.PrincipalFromContext(c)
	sess, err := h.sessions.SelectView(p.Name, session.View(req.View))
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotLoggedIn):
			respondError(c, http.StatusUnauthorized, "not_logged_in", "No active session; log in first")
		case errors.Is(err, session.ErrUnknownView):
			respondError(c, http.StatusBadRequest, "invalid_view", "Unknown view")
		default:
			respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, sess)
}

type saveItemRequest struct {
	Item         string `json:"item"`
	Category     string `json:"category"`
	Stock        int64  `json:"stock" binding:"gte=0"`
	ReorderLevel int64  `json:"reorder_level" binding:"gte=0"`
}

func (h *Handler) handleSaveItem(c *gin.Context) {
	var req saveItemRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.inventory.SaveItem(c.Request.Context(), req.Item, req.Category, req.Stock, req.ReorderLevel)
	if err != nil {
		if errors.Is(err, inventory.ErrValidation) {
			respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not save item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": it})
}

func (h *Handler) handleListItems(c *gin.Context) {
	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not list inventory")
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) handleLowStock(c *gin.Context) {
	items, err := h.inventory.LowStockItems(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not list low-stock items")
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) handleSummary(c *gin.Context) {
	s, err := h.inventory.Summary(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not build summary")
		return
	}
	if s.LowStock == nil {
		s.LowStock = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) handleForecast(c *gin.Context) {
	fc, err := h.forecast.ForecastAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not build forecast")
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": fc})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

func (h *Handler) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	// Creating an existing username is a silent no-op, so this succeeds
	// either way without leaking which usernames exist.
	if err := h.access.CreateUser(c.Request.Context(), req.Username, req.Password, models.Role(req.Role)); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not create user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": req.Username, "role": req.Role})
}

func (h *Handler) handleListUsers(c *gin.Context) {
	users, err := h.access.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Could not list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
