package destination

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gallerysort/internal/config"
	"gallerysort/internal/sorter"
)

// S3Scheme prefixes destinations stored in an S3 bucket.
const S3Scheme = "s3://"

// objectUploader is the part of manager.Uploader used by S3Destination.
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Destination stores sorted files as objects under <prefix>/<folder>/<name>.
// S3 has no directories, so EnsureFolder only validates the folder name.
type S3Destination struct {
	bucket   string
	prefix   string
	uploader objectUploader
}

// ParseS3URL splits s3://bucket/prefix into its bucket and prefix.
func ParseS3URL(raw string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(raw, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %s", raw)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("s3 url has no bucket: %s", raw)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewS3Destination creates a destination for bucket/prefix using the AWS default
// configuration chain, overridden by any values set in cfg.
func NewS3Destination(ctx context.Context, bucket, prefix string, cfg config.S3Config) (*S3Destination, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3DestinationWithUploader(bucket, prefix, manager.NewUploader(client)), nil
}

func newS3DestinationWithUploader(bucket, prefix string, uploader objectUploader) *S3Destination {
	return &S3Destination{
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		uploader: uploader,
	}
}

// EnsureFolder validates folder. Objects are created with their full key, so
// there is nothing to create up front.
func (d *S3Destination) EnsureFolder(ctx context.Context, folder string) error {
	return validateName("folder", folder)
}

// Put uploads r as <prefix>/<folder>/<name>, replacing any existing object.
// Large files are split into a multipart upload by the uploader.
func (d *S3Destination) Put(ctx context.Context, folder, name string, r io.Reader, size int64) error {
	if err := validateName("folder", folder); err != nil {
		return err
	}
	if err := validateName("file", name); err != nil {
		return err
	}

	counter := &countingReader{r: r}
	_, err := d.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(folder, name)),
		Body:   counter,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", d.key(folder, name), err)
	}

	if counter.n != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, counter.n)
	}
	return nil
}

// Describe returns the s3:// URL of the destination.
func (d *S3Destination) Describe() string {
	if d.prefix == "" {
		return S3Scheme + d.bucket
	}
	return S3Scheme + d.bucket + "/" + d.prefix
}

func (d *S3Destination) key(folder, name string) string {
	return path.Join(d.prefix, folder, name)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Compile-time check that S3Destination implements sorter.Destination interface
var _ sorter.Destination = (*S3Destination)(nil)
