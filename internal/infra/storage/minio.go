package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

// Options untuk koneksi MinIO
type Options struct {
	Endpoint   string
	Region     string
	BucketName string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	// PresignTTL > 0 makes Put return a presigned download URL instead of a
	// plain object URL (private buckets).
	PresignTTL time.Duration
}

type Store struct {
	client     *minio.Client
	bucketName string
	presignTTL time.Duration
}

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, opt Options) (*Store, error) {
	cli, err := minio.New(opt.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opt.AccessKey, opt.SecretKey, ""),
		Secure: opt.UseSSL,
		Region: opt.Region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, opt.BucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, opt.BucketName, minio.MakeBucketOptions{Region: opt.Region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: opt.BucketName, presignTTL: opt.PresignTTL}, nil
}

// Put uploads the report text and returns a URL for it.
func (s *Store) Put(ctx context.Context, key string, text string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, key, strings.NewReader(text), int64(len(text)), minio.PutObjectOptions{
		ContentType:        domain.DownloadMIME + "; charset=utf-8",
		ContentDisposition: domain.ContentDisposition(),
	})
	if err != nil {
		return "", err
	}

	if s.presignTTL > 0 {
		params := url.Values{}
		params.Set("response-content-disposition", domain.ContentDisposition())
		u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, s.presignTTL, params)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}
	// URL publik (jika bucket public)
	return objectURL(s.client.EndpointURL(), s.bucketName, key), nil
}

// Get downloads the report text.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// Check implements a health probe.
func (s *Store) Check(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s missing", s.bucketName)
	}
	return nil
}

func translate(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return domain.ErrNotFound
	}
	return err
}

func objectURL(endpoint *url.URL, bucket, key string) string {
	scheme := endpoint.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint.Host, bucket, key)
}
