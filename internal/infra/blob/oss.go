package blob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSS struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

func NewOSS(endpoint, accessKey, secretKey, bucketName, publicBase string) (*OSS, error) {
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSS{
		bucket:     bkt,
		endpoint:   endpoint,
		bucketName: bucketName,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *OSS) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	return s.bucket.PutObject(key, r, opts...)
}

func (s *OSS) Copy(ctx context.Context, srcKey, dstKey string) error {
	if srcKey == "" || dstKey == "" {
		return fmt.Errorf("empty key")
	}
	_, err := s.bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx))
	return err
}

func (s *OSS) Delete(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSS) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.bucket.DeleteObjects(keys, oss.WithContext(ctx))
	return err
}

// SignURL returns a time-limited read URL for a private object.
func (s *OSS) SignURL(key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	return s.bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()))
}

// PublicURL builds the unsigned URL; only useful for public-read buckets.
func (s *OSS) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
