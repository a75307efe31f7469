package utils

import (
	"encoding/base64"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64ImageRaw(t *testing.T) {
	u := New()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	decoded, err := u.DecodeBase64Image(base64.StdEncoding.EncodeToString(payload))

	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeBase64ImageDataURL(t *testing.T) {
	u := New()

	payload := []byte("frame bytes")
	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)
	decoded, err := u.DecodeBase64Image(encoded)

	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeBase64ImageInvalid(t *testing.T) {
	u := New()

	_, err := u.DecodeBase64Image("not base64!!!")
	assert.Error(t, err)

	_, err = u.DecodeBase64Image("")
	assert.Error(t, err)
}

func imageFileHeader(size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "front.jpg",
		Header:   header,
		Size:     size,
	}
}

func TestValidateImageFile(t *testing.T) {
	u := New()

	assert.NoError(t, u.ValidateImageFile(imageFileHeader(1024, "image/jpeg")))
	assert.Error(t, u.ValidateImageFile(nil))
	assert.Error(t, u.ValidateImageFile(imageFileHeader(6*1024*1024, "image/jpeg")))
	assert.Error(t, u.ValidateImageFile(imageFileHeader(1024, "application/pdf")))
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id, 26)
}
