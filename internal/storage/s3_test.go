package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "zenmarket/internal/config"
)

// fakeBucket is an in-memory ObjectAPI
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	down    bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (b *fakeBucket) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.objects[aws.ToString(in.Key)] = data
	b.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (b *fakeBucket) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	b.mu.Lock()
	delete(b.objects, aws.ToString(in.Key))
	b.mu.Unlock()
	return &s3.DeleteObjectOutput{}, nil
}

func (b *fakeBucket) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if b.down {
		return nil, errors.New("dial tcp: connection refused")
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (b *fakeBucket) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	return nil, &types.BucketAlreadyOwnedByYou{}
}

func TestS3Store(t *testing.T) {
	bucket := newFakeBucket()
	store := NewS3Store(bucket, "zen", "state/")
	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "visitor:v1:zen_cart", []byte("[]")))
	_, ok := bucket.objects["state/visitor:v1:zen_cart.json"]
	assert.True(t, ok)
}

func TestS3Store_HealthAndBucket(t *testing.T) {
	bucket := newFakeBucket()
	store := NewS3Store(bucket, "zen", "")
	ctx := context.Background()

	assert.NoError(t, store.HealthCheck(ctx))
	assert.NoError(t, store.CreateBucket(ctx), "existing bucket is fine")

	bucket.down = true
	assert.Error(t, store.HealthCheck(ctx))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestNewR2Store_RequiresCredentials(t *testing.T) {
	_, err := NewR2Store(context.Background(), appconfig.R2Config{BucketName: "zen"})
	assert.Error(t, err)
}
