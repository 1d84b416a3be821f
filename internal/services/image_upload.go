package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"yatube/internal/errs"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// InvalidImageMessage is shown when an upload cannot be decoded as an image.
const InvalidImageMessage = "Upload a correct image. The file you uploaded is corrupted or is not an image."

const (
	DefaultMediaRoot     = "media"
	DefaultMaxUploadSize = 5 << 20 // 5 Megabyte
	DefaultMaxPixels     = 40_000_000
	postImageDir         = "posts"
)

// ImageUpload is a file received from a post form.
type ImageUpload struct {
	Filename string
	Content  []byte
}

// ImageService validates post images and stores them under the media root.
type ImageService struct {
	mediaRoot     string
	maxUploadSize int64
	maxPixels     int64
}

func NewImageService(mediaRoot string, maxUploadSize int64) *ImageService {
	if mediaRoot == "" {
		mediaRoot = DefaultMediaRoot
	}
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &ImageService{mediaRoot: mediaRoot, maxUploadSize: maxUploadSize, maxPixels: DefaultMaxPixels}
}

// SetMaxPixels caps width*height of accepted images; n <= 0 keeps the default.
func (s *ImageService) SetMaxPixels(n int64) {
	if n > 0 {
		s.maxPixels = n
	}
}

// MediaRoot is the directory served at /media.
func (s *ImageService) MediaRoot() string {
	return s.mediaRoot
}

// MaxUploadSize is the largest accepted upload in bytes.
func (s *ImageService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// Validate fully decodes the upload and returns its format name.
func (s *ImageService) Validate(upload *ImageUpload) (string, error) {
	if upload == nil || len(upload.Content) == 0 {
		return "", errs.Errorf(errs.EINVALID, "The submitted file is empty.")
	}
	if int64(len(upload.Content)) > s.maxUploadSize {
		return "", errs.Errorf(errs.EINVALID, "Image %s exceeds upload size limit of %dMB.", upload.Filename, s.maxUploadSize>>20)
	}

	// The decoder allocates the declared pixel buffer up front, so the header is checked first.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(upload.Content))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return "", errs.Errorf(errs.EINVALID, InvalidImageMessage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > s.maxPixels {
		slog.Warn("image rejected by pixel limit",
			slog.String("filename", upload.Filename),
			slog.Int("width", cfg.Width),
			slog.Int("height", cfg.Height))
		return "", errs.Errorf(errs.EINVALID, InvalidImageMessage)
	}

	// Decoding the whole image rejects truncated files that pass a header sniff.
	_, format, err := image.Decode(bytes.NewReader(upload.Content))
	if err != nil {
		return "", errs.Errorf(errs.EINVALID, InvalidImageMessage)
	}
	return format, nil
}

// Save validates and writes the upload, returning its path relative to the media root.
func (s *ImageService) Save(upload *ImageUpload) (string, error) {
	format, err := s.Validate(upload)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(format)
	if ext == "jpeg" {
		ext = "jpg"
	}
	rel := filepath.ToSlash(filepath.Join(postImageDir, fmt.Sprintf("%s.%s", uuid.NewString(), ext)))
	abs := filepath.Join(s.mediaRoot, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(abs, upload.Content, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	slog.Debug("image saved", slog.String("path", rel), slog.Int("bytes", len(upload.Content)))
	return rel, nil
}

// Remove deletes a stored image; missing files are ignored.
func (s *ImageService) Remove(rel string) {
	if rel == "" {
		return
	}
	abs := filepath.Join(s.mediaRoot, filepath.FromSlash(rel))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove image", slog.String("path", rel), slog.Any("error", err))
	}
}
