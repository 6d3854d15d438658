package planner

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/reports"
)

// Handler adapts the planner service to HTTP.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler returns a planner handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the planner endpoints on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fields := rg.Group("/fields")
	{
		fields.GET("/:id/balances", h.FieldBalances)
		fields.GET("/:id/balances.pdf", h.BalancePDF)
	}
	fertilizations := rg.Group("/fertilizations")
	{
		fertilizations.POST("", h.CreateFertilization)
		fertilizations.POST("/precheck", h.AutumnPrecheck)
	}
	rg.GET("/reports/fertilizations", h.FertilizationList)
	rg.POST("/reports/saved", h.SaveReportFilter)
	rg.GET("/reports/saved/:id", h.RunSavedReport)
}

// FieldBalances returns the derived balance report of one field.
func (h *Handler) FieldBalances(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	report, err := h.service.FieldBalances(c.Request.Context(), id)
	if err != nil {
		h.log.Error("field balances failed", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// BalancePDF streams the balance sheet of one field.
func (h *Handler) BalancePDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=balance.pdf")
	if err := h.service.BalancePDF(c.Request.Context(), c.Writer, id); err != nil {
		h.log.Error("balance pdf failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// AutumnPrecheck runs the fall-ceiling check for a proposed application.
func (h *Handler) AutumnPrecheck(c *gin.Context) {
	var req PrecheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.AutumnPrecheck(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateFertilization validates and persists a new application.
func (h *Handler) CreateFertilization(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal_id is required"})
		return
	}

	var fz models.Fertilization
	if err := c.ShouldBindJSON(&fz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs, err := h.service.CreateFertilization(c.Request.Context(), principalID, &fz)
	if err != nil {
		h.log.Error("create fertilization failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, fz)
}

// FertilizationList returns or exports the filtered application list.
// The format query switches between json, csv and xlsx.
func (h *Handler) FertilizationList(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal_id is required"})
		return
	}

	filter := reports.Filter{}
	if year := c.Query("year"); year != "" {
		if filter.Year, err = strconv.Atoi(year); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}
	filter.FieldIDs = parseIDs(c.QueryArray("field_id"))
	filter.FertilizerIDs = parseIDs(c.QueryArray("fertilizer_id"))
	filter.CropIDs = parseIDs(c.QueryArray("crop_id"))

	ctx := c.Request.Context()
	switch c.DefaultQuery("format", "json") {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=fertilizations.csv")
		if err := h.service.ExportCSV(ctx, c.Writer, principalID, filter); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=fertilizations.xlsx")
		if err := h.service.ExportExcel(ctx, c.Writer, principalID, filter); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	default:
		rows, err := h.service.FertilizationList(ctx, principalID, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// SaveReportFilter stores a named list filter for reuse.
func (h *Handler) SaveReportFilter(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal_id is required"})
		return
	}

	var req struct {
		Name   string         `json:"name"`
		Filter reports.Filter `json:"filter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	report, err := h.service.SaveReportFilter(c.Request.Context(), principalID, req.Name, req.Filter)
	if err != nil {
		h.log.Error("save report filter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// RunSavedReport executes a stored filter and returns its rows.
func (h *Handler) RunSavedReport(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal_id is required"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rows, err := h.service.RunSavedReport(c.Request.Context(), principalID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
