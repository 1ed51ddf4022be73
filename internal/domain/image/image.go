package image

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// StoredImage is a self-contained persisted image: the payload is carried
// inline as a base64 data URL, so an entry never references an external file.
type StoredImage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	DataURL    string `json:"dataUrl"`
	UploadedAt string `json:"uploadedAt"`
}

// RawFile is a transient file-like object: an upload about to be ingested,
// or a stored image decoded back for download or display.
type RawFile struct {
	Name string
	Type string
	Data []byte
}

// FromRaw encodes a raw file into a stored image with a fresh id
func FromRaw(raw RawFile) (*StoredImage, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("file name cannot be empty")
	}
	return &StoredImage{
		ID:         NewID(),
		Name:       raw.Name,
		Type:       raw.Type,
		Size:       int64(len(raw.Data)),
		DataURL:    EncodeDataURL(raw.Type, raw.Data),
		UploadedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// ToRaw decodes a stored image back into a raw file. Name, MIME type and
// byte content survive the round trip unchanged.
func (img *StoredImage) ToRaw() (*RawFile, error) {
	data, err := DecodeDataURL(img.DataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", img.ID, err)
	}
	return &RawFile{
		Name: img.Name,
		Type: img.Type,
		Data: data,
	}, nil
}

// NewID generates an image id from the ingestion time plus random entropy
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + randBase36(9)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}

// EncodeDataURL builds a base64 data URL for the given MIME type and payload
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL extracts the payload bytes of a base64 data URL
func DecodeDataURL(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("malformed data URL payload: %w", err)
	}
	return data, nil
}
