// Package blobstore uploads journal images to an S3-compatible object store
// and serves them back through public URLs.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"nomad-nest/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Key prefixes for the two kinds of uploaded images.
const (
	ProfilePicPrefix = "profile_pics"
	EntryPhotoPrefix = "entry_photos"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// s3API is the slice of the S3 client the gateway needs. Seam for tests.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Client struct {
	api           s3API
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

func New(ctx context.Context, cfg *config.BlobConfig, logger *zap.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load blob store config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{
		api:           api,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores the file under {keyPrefix}/{keyBaseName}{ext}, marks it
// world-readable and returns its public URL. The extension comes from the
// original file name, lower-cased.
func (c *Client) Upload(ctx context.Context, r io.Reader, fileName, keyPrefix, keyBaseName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	key := keyPrefix + "/" + keyBaseName + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return c.publicURL(key), nil
}

// Delete removes an object. Deleting a key that does not exist is not an
// error; S3 DeleteObject is idempotent by contract.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (c *Client) publicURL(key string) string {
	return c.publicBaseURL + "/" + c.bucket + "/" + key
}

// AllowedImage reports whether the file name carries one of the accepted
// image extensions (png, jpg, jpeg), case-insensitively.
func AllowedImage(fileName string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// KeyFromURL derives the object key for a stored public URL from its trailing
// path segment and the known key prefix.
func KeyFromURL(rawURL, keyPrefix string) string {
	trailing := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		trailing = u.Path
	}
	if i := strings.LastIndex(trailing, "/"); i >= 0 {
		trailing = trailing[i+1:]
	}
	return keyPrefix + "/" + trailing
}
