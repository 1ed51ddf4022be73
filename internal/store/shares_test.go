package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/storage"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
)

func shareFixture() ([]record.MappingRecord, []image.StoredImage) {
	records := []record.MappingRecord{
		{
			ID:        "rec-1",
			Week:      1,
			Location:  "Patan",
			Length:    6.4,
			ImageIDs:  []string{"img-1"},
			Status:    record.StatusCompleted,
			CreatedAt: time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC),
		},
	}
	images := []image.StoredImage{
		{ID: "img-1", Name: "patan.png", Type: "image/png", DataURL: image.EncodeDataURL("image/png", []byte("x"))},
	}
	return records, images
}

func TestCreateAndLoad(t *testing.T) {
	backend := memory.New()
	shares := NewShareStore(backend, "https://metrics.baato.io")

	records, images := shareFixture()
	id, shareURL, err := shares.Create(records, images, "ram bahadur")
	require.NoError(t, err)
	assert.Len(t, id, 9)
	assert.Equal(t, "https://metrics.baato.io/?shared="+id, shareURL)

	gotRecords, gotImages, err := shares.Load(id)
	require.NoError(t, err)
	require.Len(t, gotRecords, 1)
	assert.Equal(t, records[0].ID, gotRecords[0].ID)
	assert.Equal(t, records[0].Length, gotRecords[0].Length)
	assert.True(t, records[0].CreatedAt.Equal(gotRecords[0].CreatedAt))
	require.Len(t, gotImages, 1)
	assert.Equal(t, images[0].DataURL, gotImages[0].DataURL)
}

func TestSharingAgainMintsNewID(t *testing.T) {
	shares := NewShareStore(memory.New(), "https://metrics.baato.io")

	records, images := shareFixture()
	first, _, err := shares.Create(records, images, "a")
	require.NoError(t, err)
	second, _, err := shares.Create(records, images, "a")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "Each share must produce a fresh snapshot id")

	// both snapshots stay loadable
	_, _, err = shares.Load(first)
	assert.NoError(t, err)
	_, _, err = shares.Load(second)
	assert.NoError(t, err)
}

func TestLoadUnknownID(t *testing.T) {
	shares := NewShareStore(memory.New(), "https://metrics.baato.io")

	_, _, err := shares.Load("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformedSnapshot(t *testing.T) {
	backend := memory.New()
	shares := NewShareStore(backend, "https://metrics.baato.io")

	require.NoError(t, backend.Save(storage.ShareKey("brokenid1"), []byte("{not json")))
	_, _, err := shares.Load("brokenid1")
	assert.ErrorIs(t, err, ErrDecode)

	// parseable envelope, unparseable record timestamp
	payload := `{"mappingRecords":[{"id":"rec-1","createdAt":"not-a-time"}],"images":[],"version":"1.0"}`
	require.NoError(t, backend.Save(storage.ShareKey("badtime01"), []byte(payload)))
	_, _, err = shares.Load("badtime01")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSnapshotStoredUnderOwnKey(t *testing.T) {
	backend := memory.New()
	shares := NewShareStore(backend, "https://metrics.baato.io")

	records, images := shareFixture()
	id, _, err := shares.Create(records, images, "a")
	require.NoError(t, err)

	assert.Contains(t, backend.Keys(), storage.ShareKey(id),
		"The snapshot must live under its own per-id key")
}
