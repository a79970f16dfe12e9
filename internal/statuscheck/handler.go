package statuscheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"magang-intel/internal/shared/metrics"
	"magang-intel/internal/shared/server/middleware"
	"magang-intel/internal/shared/server/respond"
	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/shared/util"
)

const (
	msgEmailRequired = "Silakan isi email terlebih dahulu."
	msgEmailInvalid  = "Format email tidak valid."
	msgLookupFailed  = "Terjadi kesalahan saat memproses permintaan."
)

// Looker fetches applications for an email.
type Looker interface {
	Lookup(ctx context.Context, email string) ([]Application, error)
}

// Handler serves the status-check endpoint.
type Handler struct {
	Client   Looker
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(client Looker) *Handler {
	return &Handler{Client: client, validate: validator.New()}
}

// RegisterRoutes attaches the status-check route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/status-check", h.check)
}

type lookupRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type lookupResponse struct {
	Applications []Application `json:"applications"`
	Count        int           `json:"count"`
}

func (h *Handler) check(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", msgEmailRequired, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", msgEmailInvalid, validationDetail(err))
		return
	}

	start := time.Now()
	emailHash := util.HashEmail(req.Email)
	apps, err := h.Client.Lookup(c.Request.Context(), req.Email)
	fields := map[string]any{
		"request_id":  middleware.RequestIDFromContext(c),
		"email_hash":  emailHash,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if err != nil {
		metrics.IncStatusLookupFailed()
		fields["error"] = err
		telemetry.Warn("status.lookup.failed", fields)

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			respond.Error(c, http.StatusBadGateway, "upstream_error", httpErr.Error(), gin.H{"status": httpErr.Status})
			return
		}
		respond.Error(c, http.StatusBadGateway, "upstream_error", msgLookupFailed, nil)
		return
	}

	metrics.IncStatusLookup()
	fields["count"] = len(apps)
	telemetry.Info("status.lookup", fields)
	c.Set("resultCount", len(apps))
	respond.OK(c, lookupResponse{Applications: apps, Count: len(apps)})
}

func validationDetail(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("%s - %s", ve[0].Field(), ve[0].Tag())
	}
	return "invalid request"
}
