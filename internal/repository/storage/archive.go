package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ArchiveRepository stores exported transaction documents
type ArchiveRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for an export taken at
// the given time, grouped by year and month: exports/2024/03/<uuid>.csv
func GenerateObjectPath(at time.Time, ext string) string {
	filename := uuid.New().String() + ext
	return path.Join("exports", fmt.Sprintf("%04d", at.Year()), fmt.Sprintf("%02d", int(at.Month())), filename)
}
