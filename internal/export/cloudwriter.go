package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CloudWriter buffers a report object and uploads it when closed. Reports
// are small (one row per order), so a single buffered PutObject is simpler
// than a multipart upload.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// S3Writer accumulates the object in memory and performs one PutObject on
// Close. A failed upload leaves nothing partial in the bucket.
type S3Writer struct {
	client *s3.Client
	bucket string
	key    string
	buf    bytes.Buffer
}

// NewS3Writer resolves credentials from the default AWS chain for the given
// region and targets s3://bucket/key.
func NewS3Writer(ctx context.Context, region, bucket, key string) (*S3Writer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("resolving AWS credentials: %w", err)
	}
	return &S3Writer{client: s3.NewFromConfig(cfg), bucket: bucket, key: key}, nil
}

func (w *S3Writer) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *S3Writer) Close() error {
	_, err := w.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("uploading report to s3://%s/%s: %w", w.bucket, w.key, err)
	}
	return nil
}
