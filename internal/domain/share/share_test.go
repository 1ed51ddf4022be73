package share

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/domain/image"
	"github.com/baatolabs/baatometrics-api/internal/domain/record"
)

func sampleRecords() []record.MappingRecord {
	return []record.MappingRecord{
		{
			ID:        "rec-1",
			Week:      1,
			Location:  "Lalitpur",
			Length:    7.2,
			StartDate: "2025-01-06",
			EndDate:   "2025-01-12",
			ImageIDs:  []string{"img-1"},
			Status:    record.StatusCompleted,
			CreatedAt: time.Date(2025, 1, 12, 18, 30, 0, 0, time.UTC),
		},
		{
			ID:        "rec-2",
			Week:      2,
			Location:  "Bhaktapur",
			Length:    9.8,
			Status:    record.StatusCurrent,
			CreatedAt: time.Date(2025, 1, 19, 18, 30, 0, 0, time.UTC),
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	records := sampleRecords()
	images := []image.StoredImage{{ID: "img-1", Name: "a.png"}}

	snap := New(records, images, "ram bahadur")

	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, "ram bahadur", snap.SharedBy)
	assert.NotEmpty(t, snap.SharedAt)
	assert.Len(t, snap.Records, 2)
	assert.Len(t, snap.Images, 1)

	// the snapshot must be a deep copy
	records[0].ImageIDs[0] = "mutated"
	assert.Equal(t, "img-1", snap.Records[0].ImageIDs[0])
}

func TestRecordListRoundTrip(t *testing.T) {
	records := sampleRecords()
	snap := New(records, nil, "anon")

	back, err := snap.RecordList()
	require.NoError(t, err)
	require.Len(t, back, 2)

	assert.Equal(t, records[0].ID, back[0].ID)
	assert.Equal(t, records[0].Week, back[0].Week)
	assert.Equal(t, records[0].Length, back[0].Length)
	assert.Equal(t, records[0].Status, back[0].Status)
	assert.True(t, records[0].CreatedAt.Equal(back[0].CreatedAt),
		"Creation time must survive the portable round trip")
}

func TestRecordListBadTimestamp(t *testing.T) {
	snap := &Snapshot{
		Records: []PortableRecord{{ID: "rec-1", CreatedAt: "not-a-time"}},
		Version: Version,
	}

	_, err := snap.RecordList()
	assert.Error(t, err, "An unparseable timestamp should be reported, not dropped")
}

func TestNewIDShape(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 9)
	assert.NotEqual(t, id, NewID())
}
