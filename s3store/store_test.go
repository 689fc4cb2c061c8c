package s3store_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/s3gate"
	"github.com/sagarc03/s3gate/s3store"
)

type fakeClient struct {
	pages     []*s3.ListObjectsV2Output
	listCalls []*s3.ListObjectsV2Input
	getOut    *s3.GetObjectOutput
	getErr    error
	putIn     *s3.PutObjectInput
	putErr    error
}

func (f *fakeClient) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listCalls = append(f.listCalls, params)
	if len(f.pages) == 0 {
		return &s3.ListObjectsV2Output{}, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeClient) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return f.getOut, f.getErr
}

func (f *fakeClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putIn = params
	return &s3.PutObjectOutput{}, f.putErr
}

func obj(key string, size int64, ts time.Time) types.Object {
	return types.Object{Key: aws.String(key), Size: aws.Int64(size), LastModified: aws.Time(ts)}
}

func TestStore_ListObjects(t *testing.T) {
	now := time.Now()

	t.Run("aggregates continuation pages in order", func(t *testing.T) {
		client := &fakeClient{pages: []*s3.ListObjectsV2Output{
			{
				Contents:              []types.Object{obj("a", 1, now), obj("b", 2, now)},
				NextContinuationToken: aws.String("t1"),
			},
			{
				Contents:              []types.Object{obj("c", 3, now)},
				NextContinuationToken: aws.String("t2"),
			},
			{
				Contents: []types.Object{obj("d", 4, now)},
			},
		}}
		store := s3store.NewWithClient(client)

		infos, err := store.ListObjects(context.Background(), "b1", "")
		require.NoError(t, err)

		keys := make([]string, 0, len(infos))
		for _, info := range infos {
			keys = append(keys, info.Key)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, keys)

		require.Len(t, client.listCalls, 3)
		assert.Nil(t, client.listCalls[0].ContinuationToken)
		assert.Equal(t, "t1", aws.ToString(client.listCalls[1].ContinuationToken))
		assert.Equal(t, "t2", aws.ToString(client.listCalls[2].ContinuationToken))
	})

	t.Run("forwards the prefix", func(t *testing.T) {
		client := &fakeClient{}
		store := s3store.NewWithClient(client)

		_, err := store.ListObjects(context.Background(), "b1", "logs/")
		require.NoError(t, err)

		require.Len(t, client.listCalls, 1)
		assert.Equal(t, "logs/", aws.ToString(client.listCalls[0].Prefix))
	})

	t.Run("empty bucket", func(t *testing.T) {
		store := s3store.NewWithClient(&fakeClient{})

		infos, err := store.ListObjects(context.Background(), "b1", "")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}

func TestStore_GetObject(t *testing.T) {
	t.Run("returns the body", func(t *testing.T) {
		client := &fakeClient{getOut: &s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("payload")),
		}}
		store := s3store.NewWithClient(client)

		rc, err := store.GetObject(context.Background(), "b1", "k")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("NoSuchKey maps to ErrObjectNotFound", func(t *testing.T) {
		client := &fakeClient{getErr: &types.NoSuchKey{}}
		store := s3store.NewWithClient(client)

		_, err := store.GetObject(context.Background(), "b1", "missing")
		require.ErrorIs(t, err, s3gate.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "b1/missing")
	})

	t.Run("other failures wrap ErrBackend", func(t *testing.T) {
		client := &fakeClient{getErr: errors.New("connection reset")}
		store := s3store.NewWithClient(client)

		_, err := store.GetObject(context.Background(), "b1", "k")
		assert.ErrorIs(t, err, s3gate.ErrBackend)
		assert.NotErrorIs(t, err, s3gate.ErrObjectNotFound)
	})
}

func TestStore_PutObject(t *testing.T) {
	t.Run("forwards content type", func(t *testing.T) {
		client := &fakeClient{}
		store := s3store.NewWithClient(client)

		err := store.PutObject(context.Background(), "b1", "k", strings.NewReader("x"), "text/plain")
		require.NoError(t, err)

		require.NotNil(t, client.putIn)
		assert.Equal(t, "text/plain", aws.ToString(client.putIn.ContentType))
	})

	t.Run("omits empty content type", func(t *testing.T) {
		client := &fakeClient{}
		store := s3store.NewWithClient(client)

		err := store.PutObject(context.Background(), "b1", "k", strings.NewReader("x"), "")
		require.NoError(t, err)
		assert.Nil(t, client.putIn.ContentType)
	})

	t.Run("failure wraps ErrBackend", func(t *testing.T) {
		client := &fakeClient{putErr: errors.New("denied")}
		store := s3store.NewWithClient(client)

		err := store.PutObject(context.Background(), "b1", "k", strings.NewReader("x"), "")
		assert.ErrorIs(t, err, s3gate.ErrBackend)
	})
}
