// Package blobstore stores uploaded documents in S3-compatible object
// storage. A container is a bucket.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"chatdesk/internal/domain"
)

const (
	// URLExpiry is the lifetime of every signed URL the client mints.
	URLExpiry = time.Hour

	blobTimeLayout = "20060102-150405"
	listPageSize   = 1000
)

// s3API is the minimal S3 interface required by Client.
// *s3.Client from aws-sdk-go-v2 satisfies this interface.
type s3API interface {
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// presignAPI is satisfied by *s3.PresignClient.
type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Error reports a failed object store operation.
type Error struct {
	Op        string
	Container string
	Key       string
	Err       error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("blobstore: %s %s: %v", e.Op, e.Container, e.Err)
	}
	return fmt.Sprintf("blobstore: %s %s/%s: %v", e.Op, e.Container, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the service error code, or "" when the failure did not come
// from the store's API.
func (e *Error) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// Client uploads and lists objects and mints read-only signed URLs.
type Client struct {
	api              s3API
	presigner        presignAPI
	defaultContainer string
	region           string
	now              func() time.Time
}

// New creates a Client over an S3 API and presigner.
func New(api s3API, presigner presignAPI, defaultContainer, region string) (*Client, error) {
	if api == nil {
		return nil, errors.New("blobstore: api must not be nil")
	}
	if presigner == nil {
		return nil, errors.New("blobstore: presigner must not be nil")
	}
	defaultContainer = strings.TrimSpace(defaultContainer)
	if defaultContainer == "" {
		return nil, errors.New("blobstore: default container must not be empty")
	}
	return &Client{
		api:              api,
		presigner:        presigner,
		defaultContainer: defaultContainer,
		region:           region,
		now:              time.Now,
	}, nil
}

// NewFromConnectionString builds an S3 client from a connection string.
func NewFromConnectionString(ctx context.Context, connectionString, defaultContainer string) (*Client, error) {
	conn, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(conn.Region)}
	if conn.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conn.AccessKeyID, conn.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blobstore: load AWS config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conn.Endpoint != "" {
			o.BaseEndpoint = aws.String(conn.Endpoint)
		}
		o.UsePathStyle = conn.PathStyle
	})
	return New(api, s3.NewPresignClient(api), defaultContainer, conn.Region)
}

// DefaultContainer returns the container used when none is given.
func (c *Client) DefaultContainer() string {
	return c.defaultContainer
}

func (c *Client) container(name string) string {
	if strings.TrimSpace(name) == "" {
		return c.defaultContainer
	}
	return name
}

// EnsureContainer creates the container if it does not exist. An existing
// container is not an error.
func (c *Client) EnsureContainer(ctx context.Context, name string) error {
	name = c.container(name)
	in := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if c.region != "" && c.region != defaultRegion {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	_, err := c.api.CreateBucket(ctx, in)
	if err == nil {
		return nil
	}
	if bucketExists(err) {
		return nil
	}
	return &Error{Op: "create container", Container: name, Err: err}
}

// bucketExists also matches by code for S3-compatible stores whose error
// bodies do not deserialize into the typed errors.
func bucketExists(err error) bool {
	var owned *types.BucketAlreadyOwnedByYou
	var exists *types.BucketAlreadyExists
	if errors.As(err, &owned) || errors.As(err, &exists) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return true
		}
	}
	return false
}

// BlobName returns the stored name for originalName uploaded at t.
func BlobName(t time.Time, originalName string) string {
	return t.UTC().Format(blobTimeLayout) + "-" + originalName
}

// Upload writes data under a timestamp-prefixed name, replacing any object
// with the same name, and returns its record with a one-hour signed URL.
func (c *Client) Upload(ctx context.Context, data []byte, originalName, contentType, container string) (domain.UploadedObject, error) {
	container = c.container(container)
	if err := c.EnsureContainer(ctx, container); err != nil {
		return domain.UploadedObject{}, err
	}

	now := c.now().UTC()
	stamp := now.Format(blobTimeLayout)
	name := BlobName(now, originalName)

	in := &s3.PutObjectInput{
		Bucket:        aws.String(container),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	var ct *string
	if contentType != "" {
		ct = aws.String(contentType)
		in.ContentType = ct
	}
	if _, err := c.api.PutObject(ctx, in); err != nil {
		return domain.UploadedObject{}, &Error{Op: "upload", Container: container, Key: name, Err: err}
	}

	url, err := c.SignedURL(ctx, container, name)
	if err != nil {
		return domain.UploadedObject{}, err
	}

	return domain.UploadedObject{
		BlobName:    name,
		URL:         url,
		ContentType: ct,
		Size:        int64(len(data)),
		UploadedAt:  stamp,
	}, nil
}

// SignedURL mints a read-only URL for one object valid for URLExpiry.
func (c *Client) SignedURL(ctx context.Context, container, name string) (string, error) {
	container = c.container(container)
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(URLExpiry))
	if err != nil {
		return "", &Error{Op: "sign", Container: container, Key: name, Err: err}
	}
	return req.URL, nil
}

// List enumerates the container in the store's native order, signing a
// fresh URL for every object. maxResults <= 0 means no limit.
func (c *Client) List(ctx context.Context, maxResults int, container string) ([]domain.ObjectInfo, error) {
	container = c.container(container)
	if err := c.EnsureContainer(ctx, container); err != nil {
		return nil, err
	}

	pageSize := int32(listPageSize)
	if maxResults > 0 && maxResults < listPageSize {
		pageSize = int32(maxResults)
	}
	pages := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket:  aws.String(container),
		MaxKeys: aws.Int32(pageSize),
	})

	files := []domain.ObjectInfo{}
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, &Error{Op: "list", Container: container, Err: err}
		}
		for _, obj := range page.Contents {
			info, err := c.describe(ctx, container, obj)
			if err != nil {
				return nil, err
			}
			files = append(files, info)
			if maxResults > 0 && len(files) >= maxResults {
				return files, nil
			}
		}
	}
	return files, nil
}

func (c *Client) describe(ctx context.Context, container string, obj types.Object) (domain.ObjectInfo, error) {
	name := aws.ToString(obj.Key)

	head, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	})
	if err != nil {
		return domain.ObjectInfo{}, &Error{Op: "head", Container: container, Key: name, Err: err}
	}

	url, err := c.SignedURL(ctx, container, name)
	if err != nil {
		return domain.ObjectInfo{}, err
	}

	info := domain.ObjectInfo{
		Name:        name,
		URL:         url,
		ContentType: head.ContentType,
		Size:        aws.ToInt64(obj.Size),
	}
	if obj.LastModified != nil {
		ts := obj.LastModified.UTC().Format(time.RFC3339)
		info.LastModified = &ts
	}
	return info, nil
}
