// Package s3 implements the cloud object storage variant on AWS S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"sartor/internal/config"
	"sartor/internal/domain"
	"sartor/internal/port"
	"sartor/internal/storage/objectkey"
)

type s3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	bucket    string
	region    string
}

// NewS3Store creates the S3-backed ObjectStorage implementation and ensures
// its bucket exists. Bucket bootstrap failure is logged, not fatal: later
// operations will surface connectivity errors on their own.
func NewS3Store(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	store := &s3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
	}
	store.ensureBucket(context.Background())
	return store, nil
}

// ensureBucket creates the bucket if absent and blocks all public access on
// it. All failures are logged only.
func (s *s3Store) ensureBucket(ctx context.Context) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return
	}
	var nf *types.NotFound
	if !errors.As(err, &nf) {
		log.Printf("s3Store: bucket check failed for %q: %v", s.bucket, err)
		return
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 is the only region that rejects an explicit location constraint.
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		log.Printf("s3Store: creating bucket %q failed: %v", s.bucket, err)
		return
	}

	_, err = s.client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(s.bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	})
	if err != nil {
		log.Printf("s3Store: blocking public access on %q failed: %v", s.bucket, err)
		return
	}
	log.Printf("s3Store: created bucket %q", s.bucket)
}

func (s *s3Store) UploadFile(ctx context.Context, localPath, key string) (string, error) {
	if key == "" {
		key = s.GenerateObjectName(filepath.Ext(localPath))
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening staged file: %w", err)
	}
	defer f.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 f,
		ContentType:          aws.String(objectkey.ContentType(localPath)),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", classifyWrite("upload", key, err)
	}
	return key, nil
}

func (s *s3Store) DownloadFile(ctx context.Context, key, localPath string) (string, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", fmt.Errorf("s3 download %q: %w", key, domain.ErrObjectNotFound)
		}
		return "", fmt.Errorf("s3 download %q: %w (%v)", key, domain.ErrStorageUnavailable, err)
	}
	defer result.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("creating local file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, result.Body); err != nil {
		return "", fmt.Errorf("writing local file: %w", err)
	}
	return localPath, nil
}

func (s *s3Store) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, fmt.Errorf("s3 head %q: %w (%v)", key, domain.ErrStorageUnavailable, err)
}

func (s *s3Store) DeleteFile(ctx context.Context, key string) (bool, error) {
	// DeleteObject is silent about missing keys, so check first to report
	// whether a deletion actually happened.
	exists, err := s.FileExists(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("s3 delete %q: %w (%v)", key, domain.ErrStorageUnavailable, err)
	}
	return true, nil
}

func (s *s3Store) PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	exists, err := s.FileExists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("s3 presign %q: %w", key, domain.ErrObjectNotFound)
	}

	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %q: %w (%v)", key, domain.ErrStorageUnavailable, err)
	}
	return result.URL, nil
}

func (s *s3Store) GenerateObjectName(ext string) string {
	return objectkey.New(ext)
}

// classifyWrite distinguishes backend-side rejections (quota, policy,
// credentials) from plain connectivity failures for write operations.
func classifyWrite(op, key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "QuotaExceeded", "EntityTooLarge":
			return fmt.Errorf("s3 %s %q: %w (%s)", op, key, domain.ErrUploadRejected, apiErr.ErrorCode())
		}
	}
	return fmt.Errorf("s3 %s %q: %w (%v)", op, key, domain.ErrStorageUnavailable, err)
}
