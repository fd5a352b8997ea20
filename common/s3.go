package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Config contains minimal configuration for creating an S3 client.
// Values are optional and fall back to the standard AWS config/credential
// chain.
type S3Config struct {
	// Region to use for requests, e.g. "us-east-1". If empty, AWS defaults apply.
	Region string
	// Profile selects a named shared config/credentials profile.
	Profile string
	// UsePathStyle forces path-style addressing (useful for S3-compatible providers).
	UsePathStyle bool
}

// Archive stores uploaded documents and completed research results in S3.
// It is optional: a nil *Archive skips every operation.
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewArchive creates an S3-backed archive using the default AWS
// configuration chain with optional overrides.
func NewArchive(ctx context.Context, cfg S3Config, bucket, prefix string) (*Archive, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &Archive{client: client, bucket: bucket, prefix: prefix}, nil
}

// NewArchiveFromEnv returns an archive if S3_BUCKET is set, nil otherwise.
// Optional: S3_REGION, S3_PROFILE, S3_PREFIX, S3_USE_PATH_STYLE=true.
func NewArchiveFromEnv(ctx context.Context) *Archive {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil
	}

	cfg := S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	archive, err := NewArchive(ctx, cfg, bucket, strings.TrimSpace(os.Getenv("S3_PREFIX")))
	if err != nil {
		log.Printf("Warning: failed to init S3 archive: %v (archiving disabled)", err)
		return nil
	}
	return archive
}

// PutObject uploads an object under the archive prefix.
func (a *Archive) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	if a == nil {
		return nil
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.prefix + key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := a.client.PutObject(ctx, in)
	return err
}

// PutJSON marshals v and uploads it under the archive prefix.
func (a *Archive) PutJSON(ctx context.Context, key string, v interface{}) error {
	if a == nil {
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return a.PutObject(ctx, key, bytes.NewReader(b), "application/json")
}

// DeleteObject removes an object under the archive prefix.
func (a *Archive) DeleteObject(ctx context.Context, key string) error {
	if a == nil {
		return nil
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.prefix + key),
	})
	return err
}

// Exists returns true if the object exists (HTTP 200 from HeadObject);
// false on 404/NotFound.
func (a *Archive) Exists(ctx context.Context, key string) (bool, error) {
	if a == nil {
		return false, nil
	}
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.prefix + key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}
