package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aequitas/server/internal/database"
	"aequitas/server/internal/memo"
	"aequitas/server/internal/models"
)

type Handler struct {
	db     *database.Database
	engine *memo.Engine
	logger *logrus.Logger
}

type AssessmentRequest struct {
	HoldingPeriod int    `json:"holding_period"`
	Geography     string `json:"geography"`
}

type CompareRequest struct {
	DealIDs       []int64 `json:"deal_ids" binding:"required"`
	HoldingPeriod int     `json:"holding_period"`
	Geography     string  `json:"geography"`
}

func NewHandler(db *database.Database, engine *memo.Engine, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		engine: engine,
		logger: logger,
	}
}

func (h *Handler) CreateDeal(c *gin.Context) {
	var deal models.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		h.logger.WithError(err).Error("Failed to parse deal")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal payload"})
		return
	}
	if deal.DealName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deal_name is required"})
		return
	}

	if err := h.db.CreateDeal(&deal); err != nil {
		h.logger.WithError(err).Error("Failed to create deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
		return
	}

	c.JSON(http.StatusCreated, deal)
}

func (h *Handler) ListDeals(c *gin.Context) {
	deals, err := h.db.ListDeals(c.Query("status"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list deals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list deals"})
		return
	}

	c.JSON(http.StatusOK, deals)
}

func (h *Handler) GetDeal(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	deal, err := h.db.GetDeal(dealID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get deal"})
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	c.JSON(http.StatusOK, deal)
}

func (h *Handler) UpdateDeal(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	deal, err := h.db.GetDeal(dealID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get deal"})
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if err := c.ShouldBindJSON(deal); err != nil {
		h.logger.WithError(err).Error("Failed to parse deal")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal payload"})
		return
	}
	deal.ID = dealID

	if err := h.db.UpdateDeal(deal); err != nil {
		h.logger.WithError(err).Error("Failed to update deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
		return
	}

	c.JSON(http.StatusOK, deal)
}

func (h *Handler) DeleteDeal(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteDeal(dealID); err != nil {
		h.logger.WithError(err).Error("Failed to delete deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted"})
}

func (h *Handler) AssessDeal(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	req := AssessmentRequest{HoldingPeriod: 10, Geography: "US"}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.WithError(err).Error("Failed to parse assessment request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment request"})
			return
		}
	}
	if req.HoldingPeriod == 0 {
		req.HoldingPeriod = 10
	}

	result, err := h.engine.AssessDeal(dealID, req.HoldingPeriod, req.Geography)
	if err != nil {
		h.respondEngineError(c, err, "Failed to assess deal")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAssessment(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	result, err := h.db.GetAssessment(dealID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get assessment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get assessment"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal has not been assessed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetMemo(c *gin.Context) {
	dealID, ok := h.dealID(c)
	if !ok {
		return
	}

	holdingPeriod := 10
	if raw := c.Query("holding_period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid holding_period"})
			return
		}
		holdingPeriod = parsed
	}
	geography := c.DefaultQuery("geography", "US")

	result, err := h.engine.GenerateMemo(dealID, holdingPeriod, geography)
	if err != nil {
		h.respondEngineError(c, err, "Failed to generate memo")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) CompareDeals(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse comparison request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comparison request"})
		return
	}
	if req.HoldingPeriod == 0 {
		req.HoldingPeriod = 10
	}
	if req.Geography == "" {
		req.Geography = "US"
	}

	result, err := h.engine.CompareDeals(req.DealIDs, req.HoldingPeriod, req.Geography)
	if err != nil {
		h.respondEngineError(c, err, "Failed to compare deals")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetBenchmarks(c *gin.Context) {
	rows, err := h.db.ListBenchmarks(c.Query("geography"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get benchmarks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get benchmarks"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetThresholds(c *gin.Context) {
	rows, err := h.db.ListThresholds(c.Query("geography"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get thresholds")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get thresholds"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) dealID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal ID"})
		return 0, false
	}
	return id, true
}

// respondEngineError maps the engine error taxonomy onto HTTP statuses:
// validation problems are the caller's fault, everything else is ours.
func (h *Handler) respondEngineError(c *gin.Context, err error, message string) {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}

	var configuration *models.ConfigurationError
	if errors.As(err, &configuration) {
		h.logger.WithError(err).Error(message)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": configuration.Error()})
		return
	}

	h.logger.WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
