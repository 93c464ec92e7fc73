package blobstore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	putErr    error
	delInput  *s3.DeleteObjectInput
	deleteErr error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delInput = in
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

func newTestClient(api s3API) *Client {
	return &Client{
		api:           api,
		bucket:        "travel",
		publicBaseURL: "http://localhost:9000",
		logger:        zap.NewNop(),
	}
}

func TestUpload_KeyAndURL(t *testing.T) {
	api := &fakeS3{}
	c := newTestClient(api)

	url, err := c.Upload(context.Background(), bytes.NewBufferString("img"), "Sunset.JPG", EntryPhotoPrefix, "photo-1")
	require.NoError(t, err)

	require.NotNil(t, api.putInput)
	assert.Equal(t, "travel", *api.putInput.Bucket)
	assert.Equal(t, "entry_photos/photo-1.jpg", *api.putInput.Key)
	assert.Equal(t, "http://localhost:9000/travel/entry_photos/photo-1.jpg", url)
}

func TestUpload_Error(t *testing.T) {
	api := &fakeS3{putErr: errors.New("bucket missing")}
	c := newTestClient(api)

	_, err := c.Upload(context.Background(), bytes.NewBufferString("img"), "a.png", ProfilePicPrefix, "user-1")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	api := &fakeS3{}
	c := newTestClient(api)

	require.NoError(t, c.Delete(context.Background(), "entry_photos/photo-1.jpg"))
	require.NotNil(t, api.delInput)
	assert.Equal(t, "entry_photos/photo-1.jpg", *api.delInput.Key)
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("a.png"))
	assert.True(t, AllowedImage("a.jpg"))
	assert.True(t, AllowedImage("photo.JPEG"))
	assert.False(t, AllowedImage("doc.pdf"))
	assert.False(t, AllowedImage("archive.tar.gz"))
	assert.False(t, AllowedImage("noext"))
}

func TestKeyFromURL(t *testing.T) {
	assert.Equal(t, "entry_photos/photo-1.jpg",
		KeyFromURL("http://localhost:9000/travel/entry_photos/photo-1.jpg", EntryPhotoPrefix))
	assert.Equal(t, "profile_pics/user-1.png",
		KeyFromURL("https://cdn.example.com/travel/profile_pics/user-1.png", ProfilePicPrefix))
	// Bare file names still map under the prefix.
	assert.Equal(t, "entry_photos/photo-2.png", KeyFromURL("photo-2.png", EntryPhotoPrefix))
}
