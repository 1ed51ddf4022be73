package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

type ReportHandler struct {
	reports *store.ReportStore
}

func NewReportHandler(reports *store.ReportStore) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateReportRequest is the body of POST /api/reports
type CreateReportRequest struct {
	Title   string          `json:"title" binding:"required"`
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	response.Success(c, http.StatusOK, "Reports retrieved successfully", h.reports.All())
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: title, type")
		return
	}

	desc, err := h.reports.Add(req.Title, req.Type, req.Payload)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Report created successfully", desc)
}
