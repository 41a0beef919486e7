package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 在内存里模拟一个 bucket
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key := range f.objects {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	return out, nil
}

func TestS3_Lifecycle(t *testing.T) {
	fake := newFakeS3()
	s := &S3{client: fake, bucket: "uploads"}
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.pdf", bytes.NewReader([]byte("%PDF-1.7")), 8))
	require.NoError(t, s.Put(ctx, "b.pdf", bytes.NewReader([]byte("%PDF-1.4")), 8))

	rc, size, err := s.Open(ctx, "a.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, int64(8), size)
	assert.Equal(t, "%PDF-1.7", string(data))

	names, err := s.List(ctx)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names)

	require.NoError(t, s.Remove(ctx, "a.pdf"))
	require.NoError(t, s.Remove(ctx, "a.pdf"))

	_, _, err = s.Open(ctx, "a.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3_PutError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("service unavailable")
	s := &S3{client: fake, bucket: "uploads"}

	err := s.Put(context.Background(), "a.pdf", bytes.NewReader([]byte("x")), 1)
	assert.Error(t, err)
	assert.Empty(t, fake.objects)
}
