package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"vidar/internal/storage"
)

var (
	// ErrFileRequired is returned when the request carries no file.
	ErrFileRequired = errors.New("no file uploaded")
	// ErrUnsupportedType is returned for content types outside the allowed list.
	ErrUnsupportedType = errors.New("only PNG, JPG or WEBP images are allowed")
	// ErrFileTooLarge is returned when the file exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// UploadFile is one file received from a multipart form.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadService stores images and returns the address they can be loaded from.
type UploadService interface {
	// Upload validates f, stores it and returns its URL.
	// The stored object is removed again when no URL can be produced.
	Upload(ctx context.Context, f UploadFile) (string, error)
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
	allowed  map[string]bool
	now      func() time.Time
}

// NewUploadService constructs an UploadService accepting allowedTypes up to maxBytes.
func NewUploadService(store storage.Storage, maxBytes int64, allowedTypes []string) UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &uploadService{store: store, maxBytes: maxBytes, allowed: allowed, now: time.Now}
}

func (s *uploadService) Upload(ctx context.Context, f UploadFile) (string, error) {
	if f.Content == nil || f.Name == "" {
		return "", ErrFileRequired
	}
	if !s.allowed[mediaType(f.ContentType)] {
		return "", ErrUnsupportedType
	}
	if s.maxBytes > 0 && f.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	key := ObjectKey(s.now(), f.Name)
	if _, err := s.store.Put(ctx, key, f.Content, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Name},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("build url failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("build url: %w", err)
	}
	return url, nil
}

// ObjectKey names a stored upload: unix milliseconds, a dash, then the base file name.
func ObjectKey(at time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return fmt.Sprintf("%d-%s", at.UnixMilli(), name)
}

func mediaType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
