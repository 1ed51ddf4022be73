package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURLRoundTrip(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}

	dataURL := EncodeDataURL("image/png", payload)
	assert.Contains(t, dataURL, "data:image/png;base64,")

	decoded, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeDataURLMalformed(t *testing.T) {
	_, err := DecodeDataURL("not a data url")
	assert.Error(t, err, "Missing data: prefix should be rejected")

	_, err = DecodeDataURL("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err, "Invalid base64 payload should be rejected")
}

func TestFromRawToRaw(t *testing.T) {
	raw := RawFile{
		Name: "survey-site.jpg",
		Type: "image/jpeg",
		Data: []byte("jpeg bytes here"),
	}

	img, err := FromRaw(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, "survey-site.jpg", img.Name)
	assert.Equal(t, "image/jpeg", img.Type)
	assert.Equal(t, int64(len(raw.Data)), img.Size)
	assert.NotEmpty(t, img.UploadedAt)

	back, err := img.ToRaw()
	require.NoError(t, err)
	assert.Equal(t, raw.Name, back.Name)
	assert.Equal(t, raw.Type, back.Type)
	assert.Equal(t, raw.Data, back.Data, "Byte content must survive the round trip")
}

func TestFromRawEmptyName(t *testing.T) {
	_, err := FromRaw(RawFile{Type: "image/png", Data: []byte("x")})
	assert.Error(t, err, "A file without a name should be rejected")
}

func TestNewIDShape(t *testing.T) {
	id := NewID()
	assert.Greater(t, len(id), 9, "Id should be timestamp plus 9 random characters")

	other := NewID()
	assert.NotEqual(t, id, other)
}
