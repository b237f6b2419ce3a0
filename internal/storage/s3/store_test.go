package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shopify/js-uploader/internal/uploader"
)

type fakeAPI struct {
	got  *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.got = params
	b, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestStore_PutObject(t *testing.T) {
	api := &fakeAPI{}
	store := NewFromClient(api, Options{Bucket: "assets", ACL: "public-read", CacheControl: "max-age=300"})

	err := store.PutObject(context.Background(), uploader.PutObjectInput{
		Body:        []byte("console.log(1)"),
		Key:         "testbucket/0.1.1/app.js",
		ContentType: "application/javascript",
	})
	require.NoError(t, err)

	require.NotNil(t, api.got)
	assert.Equal(t, "assets", aws.ToString(api.got.Bucket))
	assert.Equal(t, "testbucket/0.1.1/app.js", aws.ToString(api.got.Key))
	assert.Equal(t, "application/javascript", aws.ToString(api.got.ContentType))
	assert.Equal(t, int64(14), aws.ToInt64(api.got.ContentLength))
	assert.Equal(t, types.ObjectCannedACLPublicRead, api.got.ACL)
	assert.Equal(t, "max-age=300", aws.ToString(api.got.CacheControl))
	assert.Equal(t, "console.log(1)", string(api.body))
}

func TestStore_PutObjectDefaults(t *testing.T) {
	api := &fakeAPI{}
	store := NewFromClient(api, Options{Bucket: "assets"})

	require.NoError(t, store.PutObject(context.Background(), uploader.PutObjectInput{Key: "a.js"}))
	assert.Empty(t, api.got.ACL)
	assert.Nil(t, api.got.CacheControl)
	assert.Equal(t, "assets", store.Bucket())
}

func TestStore_PutObjectAPIError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	store := NewFromClient(&fakeAPI{err: apiErr}, Options{Bucket: "assets"})

	err := store.PutObject(context.Background(), uploader.PutObjectInput{Key: "a.js"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
	assert.Contains(t, err.Error(), "assets/a.js")

	var got smithy.APIError
	assert.True(t, errors.As(err, &got))
}

func TestStore_PutObjectTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	store := NewFromClient(&fakeAPI{err: cause}, Options{Bucket: "assets"})

	err := store.PutObject(context.Background(), uploader.PutObjectInput{Key: "a.js"})
	assert.ErrorIs(t, err, cause)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}
