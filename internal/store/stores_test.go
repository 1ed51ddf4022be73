package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
)

func TestOpenNormalMode(t *testing.T) {
	backend := memory.New()

	stores, err := Open(backend, "https://metrics.baato.io", "")
	require.NoError(t, err)

	assert.False(t, stores.Records.ReadOnly())
	assert.Empty(t, stores.ShareRef)

	// mutations are gated on the session
	_, err = stores.Records.Add(record.Draft{Week: 1, Status: record.StatusCurrent}, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = stores.Session.Login("editor@baato.io", "pw")
	require.NoError(t, err)

	_, err = stores.Records.Add(record.Draft{Week: 1, Length: 4, Status: record.StatusCurrent}, nil)
	assert.NoError(t, err)
}

func TestOpenSharedSnapshot(t *testing.T) {
	backend := memory.New()

	// author publishes a snapshot
	author, err := Open(backend, "https://metrics.baato.io", "")
	require.NoError(t, err)
	_, err = author.Session.Login("author@baato.io", "pw")
	require.NoError(t, err)
	rec, err := author.Records.Add(record.Draft{Week: 1, Length: 7, Status: record.StatusCompleted}, rawFiles("site.png"))
	require.NoError(t, err)

	id, _, err := author.Shares.Create(author.Records.All(), author.Images.All(), "author")
	require.NoError(t, err)

	// author keeps mutating their own data after sharing
	length := 99.0
	_, err = author.Records.Update(rec.ID, record.Patch{Length: &length})
	require.NoError(t, err)

	// a viewer opens the snapshot: read-only, frozen at sharing time
	viewer, err := Open(backend, "https://metrics.baato.io", id)
	require.NoError(t, err)
	assert.True(t, viewer.Records.ReadOnly())
	assert.Equal(t, id, viewer.ShareRef)

	all := viewer.Records.All()
	require.Len(t, all, 1)
	assert.Equal(t, 7.0, all[0].Length, "The snapshot must not reflect changes made after sharing")
	assert.Len(t, viewer.Images.All(), 1)

	_, err = viewer.Records.Add(record.Draft{Week: 2, Status: record.StatusCurrent}, nil)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestOpenUnknownShareRef(t *testing.T) {
	_, err := Open(memory.New(), "https://metrics.baato.io", "nosuchref")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
