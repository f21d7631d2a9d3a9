// SPDX-License-Identifier: MPL-2.0

package awscheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	// ErrBucketNotFound is returned when the bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrBucketForbidden is returned when the caller may not access the bucket.
	ErrBucketForbidden = errors.New("access to bucket denied")
)

type (
	// HeadBucketAPI is the slice of the S3 client used by BucketChecker.
	HeadBucketAPI interface {
		HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	}

	// BucketChecker verifies that a deployment bucket is reachable.
	BucketChecker struct {
		client HeadBucketAPI
	}

	// BucketError reports a failed bucket check.
	BucketError struct {
		Bucket string
		Err    error
	}
)

// NewBucketChecker wraps an S3 client.
func NewBucketChecker(client HeadBucketAPI) *BucketChecker {
	return &BucketChecker{client: client}
}

// NewDefaultBucketChecker loads the default AWS configuration for region and
// returns a checker backed by a real S3 client.
func NewDefaultBucketChecker(ctx context.Context, region string) (*BucketChecker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewBucketChecker(s3.NewFromConfig(cfg)), nil
}

// Error implements the error interface.
func (e *BucketError) Error() string {
	return fmt.Sprintf("s3 bucket %q: %v", e.Bucket, e.Err)
}

// Unwrap returns the classified cause.
func (e *BucketError) Unwrap() error { return e.Err }

// VerifyBucket issues a HeadBucket request. A missing bucket wraps
// ErrBucketNotFound and a 403 wraps ErrBucketForbidden.
func (c *BucketChecker) VerifyBucket(ctx context.Context, bucket string) error {
	slog.Debug("checking deployment bucket", "bucket", bucket)

	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	var respErr *awshttp.ResponseError
	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchBucket):
		return &BucketError{Bucket: bucket, Err: ErrBucketNotFound}
	case errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound:
		return &BucketError{Bucket: bucket, Err: ErrBucketNotFound}
	case errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusForbidden:
		return &BucketError{Bucket: bucket, Err: fmt.Errorf("%w: %w", ErrBucketForbidden, err)}
	default:
		return &BucketError{Bucket: bucket, Err: err}
	}
}
