package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/securedoc-app/securedoc/internal/config"
)

// Gateway is the object-store surface the file service consumes. Presigned
// URLs let clients move bytes directly against the store; the server itself
// only probes and deletes.
type Gateway interface {
	// PresignPut returns a URL a client may PUT object bytes to.
	PresignPut(ctx context.Context, bucket, key, contentType string, expire time.Duration) (string, error)

	// PresignGet returns a URL for reading an object. A non-empty
	// responseFilename forces an attachment content disposition.
	PresignGet(ctx context.Context, bucket, key, responseFilename string, expire time.Duration) (string, error)

	// HeadExists probes object existence. (false, nil) means confirmed
	// absent; any error means the probe was inconclusive, never absent.
	HeadExists(ctx context.Context, bucket, key string) (bool, error)

	// Delete removes an object. Deleting an already-absent object is not an
	// error.
	Delete(ctx context.Context, bucket, key string) error
}

type S3Deps struct {
	Client    *s3.Client
	Presigner *s3.PresignClient

	// RawBucket receives new uploads.
	RawBucket string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	acfg, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	s3Opts := func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.S3.Endpoint); ep != "" {
			if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
				ep = "https://" + ep
			}
			if u, uerr := url.Parse(ep); uerr == nil {
				o.BaseEndpoint = aws.String(u.String())
			}
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	}

	client := s3.NewFromConfig(acfg, s3Opts)

	return &S3Deps{
		Client:    client,
		Presigner: s3.NewPresignClient(client),
		RawBucket: cfg.S3.RawBucket,
	}, nil
}

func (s *S3Deps) PresignPut(ctx context.Context, bucket, key, contentType string, expire time.Duration) (string, error) {
	ps, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, func(po *s3.PresignOptions) {
		po.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

func (s *S3Deps) PresignGet(ctx context.Context, bucket, key, responseFilename string, expire time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}

	in := &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}
	if responseFilename != "" {
		in.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", responseFilename))
	}

	ps, err := s.Presigner.PresignGetObject(ctx, in, func(po *s3.PresignOptions) {
		po.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

func (s *S3Deps) HeadExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err == nil {
		return true, nil
	}
	if isObjectAbsent(err) {
		return false, nil
	}
	// Permission errors, throttling and the like are inconclusive; callers
	// must not treat them as absence.
	return false, err
}

func (s *S3Deps) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil && !isObjectAbsent(err) {
		return err
	}
	return nil
}

func isObjectAbsent(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *s3types.NoSuchKey
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
