package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

type ImageHandler struct {
	images      *store.ImageStore
	maxFileSize int64
}

func NewImageHandler(images *store.ImageStore, maxFileSize int64) *ImageHandler {
	return &ImageHandler{
		images:      images,
		maxFileSize: maxFileSize,
	}
}

// UploadImages handles POST /api/images/upload. Accepts multiple files
// under the "files" form field; files that fail to read are reported
// individually while the rest are still stored.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form: "+err.Error())
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, "No files provided")
		return
	}

	log := logger.Handler("images")
	rawFiles := make([]image.RawFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > h.maxFileSize {
			response.BadRequest(c, "File "+header.Filename+" exceeds the size limit")
			return
		}

		f, err := header.Open()
		if err != nil {
			// Leave the entry in with no data; the store reports it as a
			// per-file ingest failure instead of aborting the batch.
			log.Warn("failed to open uploaded file", "name", header.Filename, "error", err)
			rawFiles = append(rawFiles, image.RawFile{Type: header.Header.Get("Content-Type")})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Warn("failed to read uploaded file", "name", header.Filename, "error", err)
			rawFiles = append(rawFiles, image.RawFile{Type: header.Header.Get("Content-Type")})
			continue
		}

		rawFiles = append(rawFiles, image.RawFile{
			Name: header.Filename,
			Type: header.Header.Get("Content-Type"),
			Data: data,
		})
	}

	stored, err := h.images.Ingest(rawFiles)
	if err != nil {
		var partial *store.PartialIngestError
		if errors.As(err, &partial) {
			response.Success(c, http.StatusCreated, partial.Error(), gin.H{
				"images": stored,
				"failed": len(partial.Failures),
			})
			return
		}
		writeStoreError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Files uploaded successfully", gin.H{
		"images": stored,
	})
}

// ListImages handles GET /api/images. With an ids query parameter only the
// matching images are returned, in the store's storage order.
func (h *ImageHandler) ListImages(c *gin.Context) {
	if ids := c.Query("ids"); ids != "" {
		response.Success(c, http.StatusOK, "", gin.H{
			"images": h.images.Resolve(strings.Split(ids, ",")),
		})
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{
		"images": h.images.All(),
	})
}

// GetImage handles GET /api/images/:id, serving the decoded bytes with the
// original MIME type and file name.
func (h *ImageHandler) GetImage(c *gin.Context) {
	img, err := h.images.Get(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Image not found")
		return
	}

	raw, err := img.ToRaw()
	if err != nil {
		response.Internal(c, "Stored image is corrupted")
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+raw.Name+`"`)
	c.Data(http.StatusOK, raw.Type, raw.Data)
}

// DeleteImage handles DELETE /api/images/:id. Records referencing the
// image are left alone.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if err := h.images.Remove(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Image removed", nil)
}
