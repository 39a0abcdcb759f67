package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	opts        minio.PutObjectOptions
	err         error
}

func (f *fakePutter) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket, f.key, f.opts = bucket, key, opts
	b, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.body = b
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestStore_Put(t *testing.T) {
	fp := &fakePutter{}
	s := &Store{client: fp, endpoint: "minio:9000", bucketName: "analyses", prefix: "results/"}
	res := analysis.Analyze("a science piece", analysis.ContentText, "abc",
		time.Date(2024, 5, 12, 9, 45, 0, 0, time.UTC))

	url, err := s.Put(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/analyses/results/2024/05/12/abc.json", url)
	assert.Equal(t, "analyses", fp.bucket)
	assert.Equal(t, "application/json", fp.opts.ContentType)

	var decoded analysis.Result
	require.NoError(t, json.Unmarshal(fp.body, &decoded))
	assert.Equal(t, res.ID, decoded.ID)
	assert.Equal(t, res.Verdict, decoded.Verdict)
}

func TestStore_PutError(t *testing.T) {
	s := &Store{client: &fakePutter{err: errors.New("access denied")}, bucketName: "b"}
	res := analysis.Analyze("x", analysis.ContentText, "abc", time.Unix(0, 0))

	_, err := s.Put(context.Background(), res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
