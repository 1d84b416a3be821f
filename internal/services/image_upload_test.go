package services

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"yatube/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ValidateAcceptsImages(t *testing.T) {
	svc := NewImageService(t.TempDir(), 0)

	format, err := svc.Validate(&ImageUpload{Filename: "small.gif", Content: gifBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, "gif", format)

	format, err = svc.Validate(&ImageUpload{Filename: "small.png", Content: pngBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestImage_ValidateRejectsNonImages(t *testing.T) {
	svc := NewImageService(t.TempDir(), 0)

	_, err := svc.Validate(&ImageUpload{Filename: "notes.txt", Content: []byte("definitely not an image")})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, InvalidImageMessage, errs.ErrorMessage(err))

	// A truncated PNG has a valid header but does not decode.
	full := pngBytes(t)
	_, err = svc.Validate(&ImageUpload{Filename: "cut.png", Content: full[:len(full)/2]})
	assert.Equal(t, InvalidImageMessage, errs.ErrorMessage(err))

	_, err = svc.Validate(&ImageUpload{Filename: "empty.png"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestImage_ValidateRejectsOversize(t *testing.T) {
	svc := NewImageService(t.TempDir(), 1<<20)
	big := append(pngBytes(t), bytes.Repeat([]byte{0}, 1<<20)...)

	_, err := svc.Validate(&ImageUpload{Filename: "big.png", Content: big})
	require.Error(t, err)
	assert.Contains(t, errs.ErrorMessage(err), "exceeds upload size limit of 1MB")
}

// forgedPNG rewrites the IHDR dimensions of a valid PNG and fixes up its checksum.
func forgedPNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := append([]byte(nil), pngBytes(t)...)
	// signature(8) length(4) "IHDR"(4) data(13) crc(4)
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestImage_ValidateRejectsForgedDimensions(t *testing.T) {
	svc := NewImageService(t.TempDir(), 0)

	_, err := svc.Validate(&ImageUpload{Filename: "bomb.png", Content: forgedPNG(t, 10000, 10000)})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, InvalidImageMessage, errs.ErrorMessage(err))

	svc.SetMaxPixels(3)
	_, err = svc.Validate(&ImageUpload{Filename: "small.png", Content: pngBytes(t)})
	assert.Equal(t, InvalidImageMessage, errs.ErrorMessage(err))

	svc.SetMaxPixels(4)
	_, err = svc.Validate(&ImageUpload{Filename: "small.png", Content: pngBytes(t)})
	assert.NoError(t, err)
}

func TestImage_SaveAndRemove(t *testing.T) {
	svc := NewImageService(t.TempDir(), 0)

	rel, err := svc.Save(&ImageUpload{Filename: "a.png", Content: pngBytes(t)})
	require.NoError(t, err)
	assert.Regexp(t, `^posts/[0-9a-f-]{36}\.png$`, rel)

	svc.Remove(rel)
	svc.Remove(rel)
	svc.Remove("")
}
