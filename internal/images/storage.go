package images

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

// Storage uploads optimized images to an S3-compatible bucket and returns
// stable public URLs served through the CDN.
type Storage struct {
	client     *minio.Client
	bucket     string
	cdnBaseURL string
}

type StorageConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	CDNBaseURL string
}

func NewStorage(cfg StorageConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	cdnBase := strings.TrimSuffix(cfg.CDNBaseURL, "/")
	if cdnBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cdnBase = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}

	return &Storage{client: client, bucket: cfg.Bucket, cdnBaseURL: cdnBase}, nil
}

// OptimizeAndStore optimizes the image and uploads it under folder,
// returning the public URL. The object name carries an upload timestamp so
// replacing an image never reuses a URL the CDN may have cached.
func (s *Storage) OptimizeAndStore(ctx context.Context, data []byte, filename, folder string) (string, error) {
	optimized, err := Optimize(data)
	if err != nil {
		return "", err
	}

	if folder == "" {
		folder = "case-studies"
	}
	objectName := path.Join(folder, fmt.Sprintf("%d-%s.jpg", time.Now().UnixMilli(), baseName(filename)))

	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(optimized), int64(len(optimized)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return s.cdnBaseURL + "/" + objectName, nil
}

// Delete removes a previously stored image by its public URL. Best effort:
// an already-deleted object is not an error.
func (s *Storage) Delete(ctx context.Context, publicURL string) error {
	objectName := strings.TrimPrefix(publicURL, s.cdnBaseURL+"/")
	if objectName == publicURL || objectName == "" {
		return fmt.Errorf("url %q is not under this storage", publicURL)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func baseName(filename string) string {
	name := extensionPattern.ReplaceAllString(path.Base(filename), "")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "-" {
		return "upload"
	}
	return name
}
