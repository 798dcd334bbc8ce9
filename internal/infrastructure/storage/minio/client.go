// Package minio serves dataset files from a MinIO (or any S3-compatible)
// bucket.  Object names are the dataset-relative names prefixed with the
// configured key prefix.
package minio

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
)

// MinIOAPI is the subset of *minio.Client used by ObjectSource.
type MinIOAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOConfig configures the connection and the dataset location.
type MinIOConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	Prefix          string        `mapstructure:"prefix"`
	CreateBucket    bool          `mapstructure:"create_bucket"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// Default values applied by applyDefaults.
const (
	DefaultRegion         = "us-east-1"
	DefaultBucket         = "molgraph-datasets"
	DefaultConnectTimeout = 10 * time.Second
)

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
}

// NewObjectSource connects to MinIO and verifies the dataset bucket, creating
// it when CreateBucket is set.
func NewObjectSource(cfg *MinIOConfig, log logging.Logger) (*ObjectSource, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.InvalidParam("minio endpoint is required")
	}
	applyDefaults(cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	src := newObjectSource(client, cfg, log)
	if err := src.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	src.logger.Info("MinIO dataset source connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL),
	)
	return src, nil
}

func newObjectSource(api MinIOAPI, cfg *MinIOConfig, log logging.Logger) *ObjectSource {
	if log == nil {
		log = logging.NewNopLogger()
	}
	applyDefaults(cfg)
	return &ObjectSource{client: api, config: cfg, logger: log.Named("minio")}
}

// EnsureBucket checks that the dataset bucket exists.
func (s *ObjectSource) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.config.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to minio")
	}
	if exists {
		return nil
	}
	if !s.config.CreateBucket {
		return errors.NotFound("dataset bucket not found").WithDetailf("bucket=%s", s.config.Bucket)
	}
	if err := s.client.MakeBucket(ctx, s.config.Bucket, minio.MakeBucketOptions{Region: s.config.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create bucket").WithDetailf("bucket=%s", s.config.Bucket)
	}
	s.logger.Info("Created bucket", logging.String("bucket", s.config.Bucket))
	return nil
}

// HealthCheck reports whether the dataset bucket is reachable.
func (s *ObjectSource) HealthCheck(ctx context.Context) common.ComponentHealth {
	h := common.ComponentHealth{Name: "storage.minio", Status: common.HealthUp}
	start := time.Now()
	exists, err := s.client.BucketExists(ctx, s.config.Bucket)
	latency := time.Since(start)

	switch {
	case err != nil:
		h.Status = common.HealthDown
		h.Message = err.Error()
	case !exists:
		h.Status = common.HealthDegraded
		h.Message = "bucket " + s.config.Bucket + " missing"
	default:
		h.Message = "latency " + latency.Round(time.Millisecond).String()
	}
	return h
}

//Personal.AI order the ending
