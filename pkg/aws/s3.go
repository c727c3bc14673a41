package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores uploaded images (product photos, UPI QR codes) and
// hands back the public URL customers will fetch them from.
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
}

// NewS3Uploader wires an S3 client against the given bucket. publicBaseURL
// is the CDN or endpoint the returned URLs are rooted at; empty means the
// standard virtual-hosted bucket URL.
func NewS3Uploader(cfg sdkaws.Config, endpoint, bucket, prefix, publicBaseURL string) *S3Uploader {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	})
	if publicBaseURL == "" {
		if endpoint != "" {
			publicBaseURL = fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), bucket)
		} else {
			publicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
		}
	}
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		prefix:        prefix,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload puts the object and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := u.prefix + name
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(u.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", u.publicBaseURL, key), nil
}
