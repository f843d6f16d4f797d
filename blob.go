package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

const presignTTL = 10 * time.Minute

// BlobStore хранит вложения комментариев (картинки и текстовые файлы).
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, name string) (string, error)
	Remove(ctx context.Context, name string) error
}

type minioBlobStore struct {
	mc     *minio.Client
	bucket string
}

// NewBlobStore возвращает nil, nil если MINIO_ENDPOINT не задан - вложения тогда отключены.
func NewBlobStore(ctx context.Context, cfg MinioConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket exists: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}
	return &minioBlobStore{mc: mc, bucket: cfg.Bucket}, nil
}

// Put загружает объект и возвращает его имя (оно и хранится в комментарии)
func (s *minioBlobStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.mc.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return name, nil
}

func (s *minioBlobStore) PresignedURL(ctx context.Context, name string) (string, error) {
	u, err := s.mc.PresignedGetObject(ctx, s.bucket, name, presignTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *minioBlobStore) Remove(ctx context.Context, name string) error {
	if err := s.mc.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
