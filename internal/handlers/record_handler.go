package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
	"github.com/baatolabs/baatometrics-api/internal/validation"
)

type RecordHandler struct {
	records   *store.RecordStore
	images    *store.ImageStore
	validator validation.RecordValidation
}

func NewRecordHandler(records *store.RecordStore, images *store.ImageStore) *RecordHandler {
	return &RecordHandler{
		records: records,
		images:  images,
	}
}

// CreateRecordRequest is the body of POST /api/records. Inline images are
// ingested into the image store before the record itself is stored.
type CreateRecordRequest struct {
	Week      int            `json:"week" binding:"required"`
	Location  string         `json:"location" binding:"required"`
	Length    float64        `json:"length"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Status    string         `json:"status" binding:"required"`
	ImageIDs  []string       `json:"imageIds"`
	Images    []InlineUpload `json:"images"`
}

// InlineUpload is one base64-encoded file carried inside a JSON request
type InlineUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// GetAllRecords handles GET /api/records
func (h *RecordHandler) GetAllRecords(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"records":  h.records.All(),
		"readOnly": h.records.ReadOnly(),
	})
}

// GetRecord handles GET /api/records/:id
func (h *RecordHandler) GetRecord(c *gin.Context) {
	rec, err := h.records.Get(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Record not found")
		return
	}
	response.Success(c, http.StatusOK, "", rec)
}

// CreateRecord handles POST /api/records
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.validator.ValidateWeek(req.Week); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.ValidateLocation(req.Location); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.ValidateLength(req.Length); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.ValidateStatus(req.Status); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rawFiles, err := decodeInlineUploads(req.Images)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, _ := record.StatusFromString(req.Status)
	rec, err := h.records.Add(record.Draft{
		Week:      req.Week,
		Location:  req.Location,
		Length:    req.Length,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ImageIDs:  req.ImageIDs,
		Status:    status,
	}, rawFiles)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Record created", rec)
}

// UpdateRecord handles PATCH /api/records/:id
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var patch record.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if patch.Week != nil {
		if err := h.validator.ValidateWeek(*patch.Week); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if patch.Length != nil {
		if err := h.validator.ValidateLength(*patch.Length); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	rec, err := h.records.Update(c.Param("id"), patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Record updated", rec)
}

// DeleteRecord handles DELETE /api/records/:id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Record deleted", nil)
}

// GetStats handles GET /api/records/stats
func (h *RecordHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"totalDistance":  h.records.TotalDistance(),
		"completedWeeks": h.records.CompletedWeekCount(),
		"weeklySeries":   h.records.WeeklySeries(),
	})
}

func decodeInlineUploads(uploads []InlineUpload) ([]image.RawFile, error) {
	files := make([]image.RawFile, 0, len(uploads))
	for _, u := range uploads {
		data, err := base64.StdEncoding.DecodeString(u.Data)
		if err != nil {
			return nil, errors.New("image " + u.Name + " is not valid base64")
		}
		files = append(files, image.RawFile{Name: u.Name, Type: u.Type, Data: data})
	}
	return files, nil
}

// writeStoreError maps the store error taxonomy onto HTTP statuses
func writeStoreError(c *gin.Context, err error) {
	var partial *store.PartialIngestError
	switch {
	case errors.Is(err, store.ErrReadOnly):
		response.Conflict(c, "Data is read-only while viewing a shared snapshot")
	case errors.Is(err, store.ErrPermissionDenied):
		response.Forbidden(c, "You do not have permission to modify records")
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &partial):
		response.BadRequest(c, partial.Error())
	default:
		response.Internal(c, err.Error())
	}
}
