package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

func newShareRouter(t *testing.T) (*gin.Engine, *store.Stores) {
	t.Helper()

	stores, err := store.Open(memory.New(), "https://metrics.baato.io", "")
	require.NoError(t, err)
	_, err = stores.Session.Login("author@baato.io", "pw")
	require.NoError(t, err)

	h := NewShareHandler(stores.Shares, stores.Records, stores.Images, stores.Session)
	router := gin.New()
	router.POST("/api/shares", h.CreateShare)
	router.GET("/api/shares/:id", h.GetShare)
	return router, stores
}

func TestCreateAndGetShare(t *testing.T) {
	router, stores := newShareRouter(t)

	rec, err := stores.Records.Add(record.Draft{Week: 1, Location: "Patan", Length: 6, Status: record.StatusCompleted}, nil)
	require.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/shares", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ShareID  string `json:"shareId"`
			ShareURL string `json:"shareUrl"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.ShareID)
	assert.Contains(t, created.Data.ShareURL, "/?shared="+created.Data.ShareID)

	w = doJSON(router, http.MethodGet, "/api/shares/"+created.Data.ShareID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Data struct {
			Records []record.MappingRecord `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Data.Records, 1)
	assert.Equal(t, rec.ID, got.Data.Records[0].ID)
}

func TestCreateShareFiltersRecords(t *testing.T) {
	router, stores := newShareRouter(t)

	keep, err := stores.Records.Add(record.Draft{Week: 1, Location: "a", Status: record.StatusCompleted}, nil)
	require.NoError(t, err)
	_, err = stores.Records.Add(record.Draft{Week: 2, Location: "b", Status: record.StatusCompleted}, nil)
	require.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/shares", gin.H{"recordIds": []string{keep.ID}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ShareID string `json:"shareId"`
			Records int    `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Data.Records)
}

func TestGetShareUnknownID(t *testing.T) {
	router, _ := newShareRouter(t)

	w := doJSON(router, http.MethodGet, "/api/shares/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
