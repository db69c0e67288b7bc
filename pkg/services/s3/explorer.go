// Package s3 provides a small read-only browser over the buckets reachable
// with the currently active credentials.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 1000
	defaultPresignTTL = time.Hour
)

// Client is the slice of the S3 API the explorer needs.
type Client interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Presigner generates pre-signed GET URLs; satisfied by *s3.PresignClient.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Bucket struct {
	Name    string
	Created time.Time
}

type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type ObjectPage struct {
	Bucket            string
	Prefix            string
	Objects           []Object
	Truncated         bool
	ContinuationToken string
}

type Explorer struct {
	client    Client
	presigner Presigner
}

func NewExplorer(client Client, presigner Presigner) *Explorer {
	return &Explorer{client: client, presigner: presigner}
}

// NewClient builds a real S3 client from the ambient AWS configuration.
func NewClient(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return client, s3.NewPresignClient(client), nil
}

func (e *Explorer) ListBuckets(ctx context.Context) ([]Bucket, error) {
	out, err := e.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}
	var buckets []Bucket
	for _, b := range out.Buckets {
		buckets = append(buckets, Bucket{
			Name:    aws.ToString(b.Name),
			Created: aws.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}

func (e *Explorer) ListObjects(ctx context.Context, bucket, prefix string, maxKeys int, continuationToken string) (*ObjectPage, error) {
	if bucket == "" {
		return nil, domain.InvalidInputf("bucket name is required")
	}
	if maxKeys <= 0 {
		maxKeys = defaultPageSize
	}
	if maxKeys > maxPageSize {
		maxKeys = maxPageSize
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(int32(maxKeys)),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}

	out, err := e.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("listing objects in %s: %w", bucket, err)
	}

	page := &ObjectPage{
		Bucket:            bucket,
		Prefix:            prefix,
		Truncated:         aws.ToBool(out.IsTruncated),
		ContinuationToken: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	return page, nil
}

// PresignDownload returns a time-limited URL for fetching an object without
// credentials.
func (e *Explorer) PresignDownload(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if bucket == "" || key == "" {
		return "", domain.InvalidInputf("bucket and key are required")
	}
	if expires <= 0 {
		expires = defaultPresignTTL
	}

	req, err := e.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("presigning s3://%s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// CheckBucketAccess reports whether the bucket is reachable with the active
// credentials. Any API failure counts as not accessible.
func (e *Explorer) CheckBucketAccess(ctx context.Context, bucket string) bool {
	if bucket == "" {
		return false
	}
	_, err := e.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	return err == nil
}
