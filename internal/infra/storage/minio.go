package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store archives analysis results as JSON objects in a MinIO/S3 bucket.
type Store struct {
	client     objectPutter
	endpoint   string
	bucketName string
	prefix     string
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey, prefix string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %s", bucket)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, errors.Wrapf(err, "create bucket %s", bucket)
		}
	}

	return &Store{client: cli, endpoint: cli.EndpointURL().Host, bucketName: bucket, prefix: prefix}, nil
}

// Key is the object name for a result, partitioned by day.
func (s *Store) Key(r *analysis.Result) string {
	return fmt.Sprintf("%s%s/%s.json", s.prefix, r.Timestamp.UTC().Format("2006/01/02"), r.ID)
}

// Put implements analysis.ArchiveStore.
func (s *Store) Put(ctx context.Context, r *analysis.Result) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "encode result")
	}

	key := s.Key(r)
	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", errors.Wrapf(err, "put %s", key)
	}

	// public URL; private buckets need a presigned URL instead
	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucketName, key), nil
}
