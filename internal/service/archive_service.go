package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/fileio"
	"github.com/dafibh/pennywise/pennywise-backend/internal/metrics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

// ArchiveURLExpiry is how long a download link for an archived export stays valid
const ArchiveURLExpiry = 15 * time.Minute

var ErrArchiveNotConfigured = errors.New("archive storage not configured")

// Archive describes an export stored in object storage
type Archive struct {
	ObjectPath  string    `json:"objectPath"`
	Format      string    `json:"format"`
	Count       int       `json:"count"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ArchiveService uploads transaction exports to object storage
type ArchiveService struct {
	storage         storage.ArchiveRepository
	transactionRepo domain.TransactionRepository
	recorder        metrics.Recorder
	now             func() time.Time
}

// NewArchiveService creates a new ArchiveService. storage may be nil when
// no bucket is configured.
func NewArchiveService(storage storage.ArchiveRepository, transactionRepo domain.TransactionRepository) *ArchiveService {
	return &ArchiveService{
		storage:         storage,
		transactionRepo: transactionRepo,
		recorder:        metrics.NoOpRecorder{},
		now:             time.Now,
	}
}

// SetRecorder sets the metrics recorder
func (s *ArchiveService) SetRecorder(recorder metrics.Recorder) {
	s.recorder = recorder
}

// IsEnabled indicates whether archiving is supported (storage configured)
func (s *ArchiveService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Archive encodes every stored transaction and uploads it, returning a
// presigned download link.
func (s *ArchiveService) Archive(ctx context.Context, format fileio.Format) (*Archive, error) {
	if !s.IsEnabled() {
		return nil, ErrArchiveNotConfigured
	}

	txs, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := fileio.Encode(&buf, format, txs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	objectPath := storage.GenerateObjectPath(now, format.Extension())
	size := int64(buf.Len())
	if _, err := s.storage.Upload(ctx, objectPath, &buf, format.ContentType(), size); err != nil {
		log.Error().Err(err).Str("object", objectPath).Msg("Failed to upload archive")
		return nil, err
	}

	url, err := s.storage.GeneratePresignedURL(ctx, objectPath, ArchiveURLExpiry)
	if err != nil {
		log.Error().Err(err).Str("object", objectPath).Msg("Failed to presign archive URL")
		if delErr := s.storage.Delete(ctx, objectPath); delErr != nil {
			log.Warn().Err(delErr).Str("object", objectPath).Msg("Failed to clean up archive after presign failure")
		}
		return nil, err
	}
	s.recorder.RecordExport(string(format))

	log.Info().Str("object", objectPath).Int("count", len(txs)).Msg("Transactions archived")
	return &Archive{
		ObjectPath:  objectPath,
		Format:      string(format),
		Count:       len(txs),
		Size:        size,
		DownloadURL: url,
		ExpiresAt:   now.Add(ArchiveURLExpiry),
	}, nil
}

// Remove deletes an archived export
func (s *ArchiveService) Remove(ctx context.Context, objectPath string) error {
	if !s.IsEnabled() {
		return ErrArchiveNotConfigured
	}
	return s.storage.Delete(ctx, objectPath)
}
