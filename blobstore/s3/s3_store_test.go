package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	sdks3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/molfeat/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient implements Client over an in-memory object map.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (f *fakeClient) PutObject(_ context.Context, params *sdks3.PutObjectInput, _ ...func(*sdks3.Options)) (*sdks3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &sdks3.PutObjectOutput{}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, params *sdks3.HeadObjectInput, _ ...func(*sdks3.Options)) (*sdks3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &sdks3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeClient) GetObject(_ context.Context, params *sdks3.GetObjectInput, _ ...func(*sdks3.Options)) (*sdks3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	if r := aws.ToString(params.Range); r != "" {
		var lo, hi int64
		if _, err := fmt.Sscanf(r, "bytes=%d-%d", &lo, &hi); err != nil {
			return nil, err
		}
		if hi >= int64(len(data)) {
			hi = int64(len(data)) - 1
		}
		data = data[lo : hi+1]
	}

	return &sdks3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, params *sdks3.DeleteObjectInput, _ ...func(*sdks3.Options)) (*sdks3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(params.Key))
	return &sdks3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, params *sdks3.ListObjectsV2Input, _ ...func(*sdks3.Options)) (*sdks3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var contents []types.Object
	prefix := aws.ToString(params.Prefix)
	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			contents = append(contents, types.Object{Key: aws.String(key)})
		}
	}

	return &sdks3.ListObjectsV2Output{Contents: contents}, nil
}

func (f *fakeClient) CreateMultipartUpload(_ context.Context, params *sdks3.CreateMultipartUploadInput, _ ...func(*sdks3.Options)) (*sdks3.CreateMultipartUploadOutput, error) {
	return &sdks3.CreateMultipartUploadOutput{UploadId: aws.String("upload-1")}, nil
}

func (f *fakeClient) UploadPart(_ context.Context, params *sdks3.UploadPartInput, _ ...func(*sdks3.Options)) (*sdks3.UploadPartOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s.part%d", aws.ToString(params.Key), aws.ToInt32(params.PartNumber))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return &sdks3.UploadPartOutput{ETag: aws.String(key)}, nil
}

func (f *fakeClient) CompleteMultipartUpload(_ context.Context, params *sdks3.CompleteMultipartUploadInput, _ ...func(*sdks3.Options)) (*sdks3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	var data []byte
	for _, part := range params.MultipartUpload.Parts {
		partKey := aws.ToString(part.ETag)
		data = append(data, f.objects[partKey]...)
		delete(f.objects, partKey)
	}
	f.objects[key] = data
	return &sdks3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeClient) AbortMultipartUpload(_ context.Context, params *sdks3.AbortMultipartUploadInput, _ ...func(*sdks3.Options)) (*sdks3.AbortMultipartUploadOutput, error) {
	return &sdks3.AbortMultipartUploadOutput{}, nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeClient(), "test-bucket", "prefix")

	t.Run("PutOpenReadAll", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a.xyz", []byte("alpha")))

		blob, err := store.Open(ctx, "a.xyz")
		require.NoError(t, err)
		defer blob.Close()
		assert.Equal(t, int64(5), blob.Size())

		got, err := blobstore.ReadAll(ctx, store, "a.xyz")
		require.NoError(t, err)
		assert.Equal(t, []byte("alpha"), got)
	})

	t.Run("RangedReadAt", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "r.bin", []byte("0123456789")))

		blob, err := store.Open(ctx, "r.bin")
		require.NoError(t, err)
		defer blob.Close()

		buf := make([]byte, 4)
		n, err := blob.ReadAt(buf, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("3456"), buf)
	})

	t.Run("CreateStream", func(t *testing.T) {
		w, err := store.Create(ctx, "streamed.csv")
		require.NoError(t, err)
		_, err = w.Write([]byte("col\n"))
		require.NoError(t, err)
		_, err = w.Write([]byte("1.5\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		got, err := blobstore.ReadAll(ctx, store, "streamed.csv")
		require.NoError(t, err)
		assert.Equal(t, []byte("col\n1.5\n"), got)
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, names, "a.xyz")
		assert.Contains(t, names, "streamed.csv")
		assert.True(t, sort.StringsAreSorted(names))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a.xyz"))
		_, err := store.Open(ctx, "a.xyz")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("DoubleClose", func(t *testing.T) {
		w, err := store.Create(ctx, "dc")
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)
	})
}

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := sdks3.NewFromConfig(cfg)
	prefix := fmt.Sprintf("test-molfeat-%d/", time.Now().UnixNano())
	store := NewStore(client, bucket, prefix)

	name := "it.xyz"
	require.NoError(t, store.Put(ctx, name, []byte("integration")))
	defer store.Delete(ctx, name)

	got, err := blobstore.ReadAll(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("integration"), got)
}
