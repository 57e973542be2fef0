package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"
)

const provenanceKey = "migrated_from"

// objectAPI is the part of *s3.Client the migration needs.
type objectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Bucket struct {
	api      objectAPI
	name     string
	region   string
	endpoint string
	source   string
}

func newBucket(api objectAPI, s *Settings) *Bucket {
	return &Bucket{
		api:      api,
		name:     s.Bucket,
		region:   s.Region,
		endpoint: s.Endpoint,
		source:   s.SourceTag,
	}
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}

// exists reports whether key is present. Any error other than not-found is
// logged and reported as absent so the object gets transferred again.
func (b *Bucket) exists(ctx context.Context, key string) bool {
	_, err := b.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		if !isNotFound(err) {
			slog.Warn("objectExists", "key", key, "error", err)
		}
		return false
	}
	return true
}

// locate re-queries an object known to exist and returns its reference URL.
func (b *Bucket) locate(ctx context.Context, key string) (string, error) {
	_, err := b.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", err
	}
	return b.publicURL(key)
}

// publish uploads the staged file at localPath to key, tagged with the
// migration source.
func (b *Bucket) publish(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	_, err = b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType(localPath)),
		Metadata:      map[string]string{provenanceKey: b.source},
	})
	if err != nil {
		return "", err
	}

	slog.Info("objectPublish", "key", key, "bucket", b.name, "status", "uploaded")
	return b.publicURL(key)
}

// publicURL sets the literal key as the URL path, so a "%" in a key becomes %25
// and the URL resolves back to the same key.
func (b *Bucket) publicURL(key string) (string, error) {
	if b.endpoint != "" {
		u, err := url.Parse(b.endpoint)
		if err != nil {
			return "", err
		}
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + b.name + "/" + key
		u.RawPath = ""
		return u.String(), nil
	}

	u := &url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", b.name, b.region),
		Path:   "/" + key,
	}
	return u.String(), nil
}

func contentType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}
