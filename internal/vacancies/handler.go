package vacancies

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"magang-intel/internal/shared/metrics"
	"magang-intel/internal/shared/server/respond"
	"magang-intel/internal/shared/util"
)

// DefaultLimit is how many rows the results table shows unless asked otherwise.
const DefaultLimit = 50

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	Now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Now: time.Now}
}

// RegisterRoutes attaches vacancy and report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vacancies", h.list)
	rg.GET("/vacancies/facets", h.facets)
	rg.GET("/vacancies/categories", h.categories)
	rg.GET("/vacancies/export.csv", h.export)

	rg.GET("/reports/national", h.national)
	rg.GET("/reports/provinces", h.provinces)
	rg.GET("/reports/provinces/top", h.topProvinces)
	rg.GET("/reports/companies/top", h.topCompanies)
	rg.GET("/reports/categories", h.topCategories)
}

type listQuery struct {
	Province string   `form:"province"`
	Category string   `form:"category"`
	Company  string   `form:"company"`
	Search   string   `form:"search" binding:"max=200"`
	Skills   string   `form:"skills" binding:"max=500"`
	MaxRatio *float64 `form:"max_ratio" binding:"omitempty,gte=0"`
	Sort     string   `form:"sort"`
	Dir      string   `form:"dir" binding:"omitempty,oneof=asc desc none"`
	Limit    string   `form:"limit"`
}

func (h *Handler) bindQuery(c *gin.Context) (Query, bool) {
	var req listQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return Query{}, false
	}

	crit := DefaultCriteria()
	crit.Province = req.Province
	crit.Category = req.Category
	crit.Company = req.Company
	crit.Search = req.Search
	if _, ok := c.GetQuery("skills"); ok {
		crit.Skills = req.Skills
	}
	if req.MaxRatio != nil {
		crit.MaxRatio = req.MaxRatio
	}

	q := Query{Criteria: crit, Limit: DefaultLimit}
	if req.Sort != "" {
		q.Sort = SortState{Column: req.Sort, Direction: ParseDirection(req.Dir)}
		if req.Dir == "" {
			q.Sort.Direction = DirectionAsc
		}
	}

	switch limit := strings.ToLower(strings.TrimSpace(req.Limit)); limit {
	case "":
	case "all":
		q.Limit = 0
	default:
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer or \"all\"", nil)
			return Query{}, false
		}
		q.Limit = n
	}
	return q, true
}

func (h *Handler) list(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	start := time.Now()
	page, err := h.Svc.Query(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.ObserveQueryDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	c.Set("resultCount", page.Total)
	c.Set("datasetVersion", page.Version)
	respond.OK(c, page)
}

func (h *Handler) facets(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	facets, err := h.Svc.Facets(q.Criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, facets)
}

func (h *Handler) categories(c *gin.Context) {
	respond.OK(c, gin.H{"categories": Categories(), "fallback": FallbackCategory})
}

func (h *Handler) export(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	rows, err := h.Svc.Export(&buf, q)
	if err != nil {
		h.fail(c, err)
		return
	}
	disposition, err := util.AttachmentDisposition(ExportFilename(h.now()))
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.IncCSVExport()
	c.Set("resultCount", rows)
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) national(c *gin.Context) {
	stats, err := h.Svc.National()
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, stats)
}

type provincesQuery struct {
	Sort string `form:"sort"`
	Dir  string `form:"dir" binding:"omitempty,oneof=asc desc none"`
}

func (h *Handler) provinces(c *gin.Context) {
	var req provincesQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return
	}
	var sort SortState
	if col := strings.TrimSpace(req.Sort); col != "" {
		sort = SortState{Column: col, Direction: DirectionAsc}
		if req.Dir != "" {
			sort.Direction = ParseDirection(req.Dir)
		}
	}
	groups, err := h.Svc.Provinces(sort)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.List(c, groups, len(groups))
}

func (h *Handler) topProvinces(c *gin.Context) {
	h.top(c, GroupProvince, MetricRegistered, DefaultTopProvinces)
}

func (h *Handler) topCompanies(c *gin.Context) {
	h.top(c, GroupCompany, MetricPositions, DefaultTopCompanies)
}

func (h *Handler) topCategories(c *gin.Context) {
	h.top(c, GroupCategory, MetricPositions, DefaultTopCategories)
}

func (h *Handler) top(c *gin.Context, by GroupKey, defaultMetric Metric, defaultN int) {
	n := defaultN
	if raw := strings.TrimSpace(c.Query("n")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "n must be a non-negative integer", nil)
			return
		}
		n = v
	}
	metric := defaultMetric
	if raw := strings.TrimSpace(c.Query("metric")); raw != "" {
		switch m := Metric(raw); m {
		case MetricPositions, MetricQuota, MetricRegistered, MetricCompanies:
			metric = m
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown metric", raw)
			return
		}
	}
	groups, err := h.Svc.Top(by, metric, n)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.List(c, groups, len(groups))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDatasetUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "dataset_unavailable", "Data lowongan belum tersedia", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to query vacancies", err.Error())
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
