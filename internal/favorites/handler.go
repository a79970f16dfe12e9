package favorites

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"magang-intel/internal/shared/server/middleware"
	"magang-intel/internal/shared/server/respond"
	"magang-intel/internal/shared/telemetry"
)

// Handler wires HTTP routes to the favorites service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a favorites handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches favorites routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.PUT("/favorites", h.replace)
	rg.POST("/favorites/toggle", h.toggle)
}

type toggleRequest struct {
	Key string `json:"key" binding:"required"`
}

type toggleResponse struct {
	Key      string `json:"key"`
	Favorite bool   `json:"favorite"`
}

type replaceRequest struct {
	Keys []string `json:"keys"`
}

func (h *Handler) list(c *gin.Context) {
	view, err := h.Svc.List(c.Request.Context(), middleware.ClientIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("resultCount", len(view.Items))
	respond.OK(c, view)
}

func (h *Handler) toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "key is required", nil)
		return
	}
	added, err := h.Svc.Toggle(c.Request.Context(), middleware.ClientIDFromContext(c), req.Key)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toggleResponse{Key: req.Key, Favorite: added})
}

func (h *Handler) replace(c *gin.Context) {
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	keys, err := h.Svc.Replace(c.Request.Context(), middleware.ClientIDFromContext(c), req.Keys)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"keys": keys})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingClient):
		respond.Error(c, http.StatusBadRequest, "missing_client_id", "X-Client-Id header is required", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid favorite key", nil)
	case errors.Is(err, ErrTooMany):
		respond.Error(c, http.StatusUnprocessableEntity, "too_many_favorites", "favorites limit reached", gin.H{"max": MaxKeys})
	default:
		telemetry.Error("favorites.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"client_id":  middleware.ClientIDFromContext(c),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}
