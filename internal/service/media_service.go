package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"pawmarket/internal/config"
)

// MediaService stores uploaded images in the object store and hands back the
// storage path recorded on the owning entity.
type MediaService interface {
	Upload(ctx context.Context, prefix, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
}

type mediaService struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewMediaService(minioClient *minio.Client, cfg *config.Config) MediaService {
	return &mediaService{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *mediaService) Upload(ctx context.Context, prefix, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	storagePath := fmt.Sprintf("%s/%s/%s", prefix, time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return storagePath, nil
}

func (s *mediaService) Remove(ctx context.Context, storagePath string) error {
	if s.minioClient == nil || storagePath == "" {
		return nil
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *mediaService) PublicURL(storagePath string) string {
	if storagePath == "" {
		return ""
	}
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
