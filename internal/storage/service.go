// Package storage holds uploaded inspection artefacts in MinIO: buyers'
// letter of intention documents and field agents' report photos.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PresignedURLTTL is the expiration time for presigned download URLs.
const PresignedURLTTL = 15 * time.Minute

var loiContentTypes = map[string]bool{
	"application/pdf": true,
}

var photoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Service wraps the MinIO client with the two buckets this system uses.
type Service struct {
	client       *minio.Client
	maxFileSize  int64
	loiBucket    string
	photosBucket string
}

// NewService creates the MinIO-backed storage service.
func NewService(cfg config.MinIOConfig) (*Service, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Service{
		client:       client,
		maxFileSize:  cfg.GetMinIOMaxFileSize(),
		loiBucket:    cfg.GetMinioBucketLOIDocuments(),
		photosBucket: cfg.GetMinioBucketInspectionPhotos(),
	}, nil
}

// EnsureBuckets creates both buckets if they do not exist. Called once at
// startup.
func (s *Service) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.loiBucket, s.photosBucket} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket existence: %w", err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// UploadLOIDocument stores a buyer's letter of intention and returns the
// object key. Only PDF documents are accepted.
func (s *Service) UploadLOIDocument(ctx context.Context, inspectionID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if !loiContentTypes[strings.ToLower(contentType)] {
		return "", apperr.Validation("letter of intention must be a PDF document")
	}
	if err := s.validateFileSize(size); err != nil {
		return "", err
	}
	return s.upload(ctx, s.loiBucket, inspectionID.String(), fileName, contentType, reader, size)
}

// UploadReportPhoto stores a field agent's report photo and returns the
// object key. Only JPEG and PNG images are accepted.
func (s *Service) UploadReportPhoto(ctx context.Context, inspectionID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if !photoContentTypes[strings.ToLower(contentType)] {
		return "", apperr.Validation("report photos must be JPEG or PNG images")
	}
	if err := s.validateFileSize(size); err != nil {
		return "", err
	}
	return s.upload(ctx, s.photosBucket, inspectionID.String(), fileName, contentType, reader, size)
}

// LOIDownloadURL creates a presigned URL for reading a stored letter of
// intention.
func (s *Service) LOIDownloadURL(ctx context.Context, fileKey string) (string, error) {
	return s.downloadURL(ctx, s.loiBucket, fileKey)
}

// PhotoDownloadURL creates a presigned URL for reading a stored report photo.
func (s *Service) PhotoDownloadURL(ctx context.Context, fileKey string) (string, error) {
	return s.downloadURL(ctx, s.photosBucket, fileKey)
}

func (s *Service) upload(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	// Unique key per upload so retries never overwrite earlier files.
	ext := path.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	uniqueFileName := fmt.Sprintf("%s_%s%s", baseName, uuid.New().String()[:8], ext)
	fileKey := filepath.ToSlash(filepath.Join(folder, uniqueFileName))

	_, err := s.client.PutObject(ctx, bucket, fileKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", fileKey, err)
	}
	return fileKey, nil
}

func (s *Service) downloadURL(ctx context.Context, bucket, fileKey string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := s.client.PresignedGetObject(ctx, bucket, fileKey, PresignedURLTTL, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return presignedURL.String(), nil
}

func (s *Service) validateFileSize(size int64) error {
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return apperr.Validation(fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxFileSize))
	}
	return nil
}
