package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrInvalidKey flags a storage key that would resolve outside the
// documents directory. Keys come from request parameters.
var ErrInvalidKey = errors.New("invalid storage key")

// StorageInterface defines the interface for document storage backends.
// Supports local filesystem and, later, cloud storage (S3, Azure, etc.)
type StorageInterface interface {
	// GenerateDownloadURL generates a URL for downloading a stored document
	// key: storage path/key for the file
	// expiresIn: how long the URL should be valid
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves an uploaded document
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a stored document for reading
	ReadFile(key string) (io.ReadCloser, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // "local" or "mock"
	UploadDir string // Directory for local storage
	BaseURL   string // Server base URL for generating download URLs
}
