package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

type ShareHandler struct {
	shares  *store.ShareStore
	records *store.RecordStore
	images  *store.ImageStore
	session *store.SessionStore
}

func NewShareHandler(shares *store.ShareStore, records *store.RecordStore, images *store.ImageStore, session *store.SessionStore) *ShareHandler {
	return &ShareHandler{
		shares:  shares,
		records: records,
		images:  images,
		session: session,
	}
}

// CreateShareRequest optionally narrows the snapshot to specific records
type CreateShareRequest struct {
	RecordIDs []string `json:"recordIds"`
}

// CreateShare handles POST /api/shares. It bundles the chosen records and
// their resolved images into a new immutable snapshot and returns the link.
func (h *ShareHandler) CreateShare(c *gin.Context) {
	var req CreateShareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	records := h.records.All()
	if len(req.RecordIDs) > 0 {
		wanted := make(map[string]bool, len(req.RecordIDs))
		for _, id := range req.RecordIDs {
			wanted[id] = true
		}
		filtered := records[:0]
		for _, r := range records {
			if wanted[r.ID] {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	var imageIDs []string
	for _, r := range records {
		imageIDs = append(imageIDs, r.ImageIDs...)
	}
	images := h.images.Resolve(imageIDs)

	authorName := h.session.DisplayName()
	if authorName == "" {
		authorName = "Anonymous"
	}

	id, url, err := h.shares.Create(records, images, authorName)
	if err != nil {
		response.Internal(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Snapshot created", gin.H{
		"shareId":  id,
		"shareUrl": url,
		"records":  len(records),
		"images":   len(images),
	})
}

// GetShare handles GET /api/shares/:id, returning the snapshot contents
// for read-only viewing.
func (h *ShareHandler) GetShare(c *gin.Context) {
	records, images, err := h.shares.Load(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			response.NotFound(c, "Shared snapshot not found")
		case errors.Is(err, store.ErrDecode):
			response.BadRequest(c, "Shared snapshot is malformed")
		default:
			response.Internal(c, err.Error())
		}
		return
	}

	if records == nil {
		records = []record.MappingRecord{}
	}
	response.Success(c, http.StatusOK, "", gin.H{
		"records": records,
		"images":  images,
	})
}
