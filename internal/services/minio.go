package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	presignCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_presign_cache_hits_total",
		Help: "Presigned download URLs served from cache.",
	})
	presignCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_presign_cache_misses_total",
		Help: "Presigned download URLs generated.",
	})
)

const presignCacheSize = 1024

type MinioService struct {
	Client     *minio.Client
	BucketName string

	presignTTL time.Duration
	presigned  *expirable.LRU[string, string]
}

// NewMinioService connects and creates the bucket when missing. Presigned
// URLs are valid for presignTTL and cached for half of it.
func NewMinioService(endpoint, accessKey, secretKey, bucket string, useSSL bool, presignTTL time.Duration) (*MinioService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("[MinIO] created bucket: %s", bucket)
	}

	log.Println("[MinIO] connected")
	return &MinioService{
		Client:     client,
		BucketName: bucket,
		presignTTL: presignTTL,
		presigned:  expirable.NewLRU[string, string](presignCacheSize, nil, presignTTL/2),
	}, nil
}

func (m *MinioService) CheckConnection(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return fmt.Errorf("minio service not initialized")
	}
	_, err := m.Client.BucketExists(ctx, m.BucketName)
	return err
}

func (m *MinioService) UploadFile(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// PutBytes stores an in-memory artifact such as a generated export.
func (m *MinioService) PutBytes(ctx context.Context, objectName string, data []byte, contentType string) error {
	return m.UploadFile(ctx, bytes.NewReader(data), int64(len(data)), objectName, contentType)
}

// OpenFile streams an object. The caller closes the reader.
func (m *MinioService) OpenFile(ctx context.Context, objectName string) (io.ReadCloser, error) {
	return m.Client.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
}

func (m *MinioService) DeleteFile(ctx context.Context, objectName string) error {
	m.presigned.Remove(objectName)
	return m.Client.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
}

// PresignedURL returns a time-limited download link that saves the object
// as filename. Links are cached per object.
func (m *MinioService) PresignedURL(ctx context.Context, objectName, filename string) (string, error) {
	if u, ok := m.presigned.Get(objectName); ok {
		presignCacheHits.Inc()
		return u, nil
	}
	presignCacheMisses.Inc()

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	u, err := m.Client.PresignedGetObject(ctx, m.BucketName, objectName, m.presignTTL, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}
	m.presigned.Add(objectName, u.String())
	return u.String(), nil
}
