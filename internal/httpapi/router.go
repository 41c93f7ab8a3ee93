package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouseManagement/internal/auth"
	"warehouseManagement/models"
)

// NewRouter wires middleware and routes. ping is the store health probe; it
// may be nil.
func NewRouter(log *slog.Logger, env string, h *Handler, jwtSecret string, ping func() error) *gin.Engine {
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		if ping != nil {
			if err := ping(); err != nil {
				respondError(c, http.StatusServiceUnavailable, "store_unavailable", "Store unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/login", h.handleLogin)

	authed := r.Group("/api", auth.RequireAuth(jwtSecret))
	{
		authed.POST("/logout", h.handleLogout)
		authed.GET("/session", h.handleSession)
		authed.POST("/session/view", h.handleSelectView)

		authed.GET("/inventory", h.handleListItems)
		authed.POST("/inventory", h.handleSaveItem)
		authed.GET("/inventory/low-stock", h.handleLowStock)
		authed.GET("/inventory/summary", h.handleSummary)

		authed.GET("/forecast", h.handleForecast)
	}

	// Admin data operations are gated on role; the admin view itself stays
	// navigable for every authenticated user.
	admin := authed.Group("/admin", auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users", h.handleCreateUser)
		admin.GET("/users", h.handleListUsers)
	}

	return r
}
