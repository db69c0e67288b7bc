package s3

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ListBuckets(
	ctx context.Context,
	params *s3.ListBucketsInput,
	optFns ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListBucketsOutput), args.Error(1)
}

func (m *mockClient) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *mockClient) HeadBucket(
	ctx context.Context,
	params *s3.HeadBucketInput,
	optFns ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignGetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

func TestListBuckets(t *testing.T) {
	created := time.Now().UTC()
	client := new(mockClient)
	client.On("ListBuckets", mock.Anything, mock.Anything).Return(&s3.ListBucketsOutput{
		Buckets: []s3types.Bucket{
			{Name: aws.String("artifacts"), CreationDate: aws.Time(created)},
			{Name: aws.String("logs"), CreationDate: aws.Time(created)},
		},
	}, nil)

	explorer := NewExplorer(client, new(mockPresigner))
	buckets, err := explorer.ListBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "artifacts", buckets[0].Name)
}

func TestListObjects_PaginationDefaults(t *testing.T) {
	client := new(mockClient)
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Bucket) == "artifacts" &&
			aws.ToInt32(in.MaxKeys) == 20 &&
			in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents: []s3types.Object{
			{Key: aws.String("build/app.tar.gz"), Size: aws.Int64(1024)},
		},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next-token"),
	}, nil)

	explorer := NewExplorer(client, new(mockPresigner))
	page, err := explorer.ListObjects(context.Background(), "artifacts", "", 0, "")
	require.NoError(t, err)
	require.Len(t, page.Objects, 1)
	assert.Equal(t, int64(1024), page.Objects[0].Size)
	assert.True(t, page.Truncated)
	assert.Equal(t, "next-token", page.ContinuationToken)
}

func TestListObjects_RequiresBucket(t *testing.T) {
	explorer := NewExplorer(new(mockClient), new(mockPresigner))
	_, err := explorer.ListObjects(context.Background(), "", "", 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPresignDownload(t *testing.T) {
	presigner := new(mockPresigner)
	presigner.On("PresignGetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "artifacts" && aws.ToString(in.Key) == "build/app.tar.gz"
	})).Return(&v4.PresignedHTTPRequest{URL: "https://example.com/signed"}, nil)

	explorer := NewExplorer(new(mockClient), presigner)
	url, err := explorer.PresignDownload(context.Background(), "artifacts", "build/app.tar.gz", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
}

func TestCheckBucketAccess(t *testing.T) {
	client := new(mockClient)
	client.On("HeadBucket", mock.Anything, mock.MatchedBy(func(in *s3.HeadBucketInput) bool {
		return aws.ToString(in.Bucket) == "open"
	})).Return(&s3.HeadBucketOutput{}, nil)
	client.On("HeadBucket", mock.Anything, mock.MatchedBy(func(in *s3.HeadBucketInput) bool {
		return aws.ToString(in.Bucket) == "denied"
	})).Return(nil, errors.New("forbidden"))

	explorer := NewExplorer(client, new(mockPresigner))
	assert.True(t, explorer.CheckBucketAccess(context.Background(), "open"))
	assert.False(t, explorer.CheckBucketAccess(context.Background(), "denied"))
	assert.False(t, explorer.CheckBucketAccess(context.Background(), ""))
}
