// Package miniostore persists each key as one object in a MinIO/S3 bucket.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

const opTimeout = 30 * time.Second

// Backend stores values as bucket objects
type Backend struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// New connects to the object store and ensures the bucket exists
func New(cfg *config.Config) (*Backend, error) {
	log := logger.Storage("minio")

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Minio.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Minio.Bucket, err)
		}
		log.Info("Bucket created", "bucket", cfg.Minio.Bucket)
	}

	return &Backend{
		client: client,
		bucket: cfg.Minio.Bucket,
		log:    log,
	}, nil
}

func (b *Backend) Load(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, storage.ErrNotFound
		}
		b.log.Error("failed to read object", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (b *Backend) Save(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		b.log.Error("failed to put object", "key", key, "error", err)
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	b.log.Debug("object saved", "key", key, "bytes", len(value))
	return nil
}

func (b *Backend) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		b.log.Error("failed to remove object", "key", key, "error", err)
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
