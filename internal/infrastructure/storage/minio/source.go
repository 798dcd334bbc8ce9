package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/pkg/errors"
)

// ObjectSource implements storage.Source and storage.Sink over one bucket.
type ObjectSource struct {
	client MinIOAPI
	config *MinIOConfig
	logger logging.Logger
}

var (
	_ storage.Source        = (*ObjectSource)(nil)
	_ storage.Sink          = (*ObjectSource)(nil)
	_ storage.HealthChecker = (*ObjectSource)(nil)
)

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (s *ObjectSource) key(name string) (string, error) {
	cleaned, err := storage.CleanName(name)
	if err != nil {
		return "", err
	}
	prefix := strings.Trim(s.config.Prefix, "/")
	if prefix == "" {
		return cleaned, nil
	}
	return path.Join(prefix, cleaned), nil
}

// Kind implements storage.Source.
func (s *ObjectSource) Kind() string { return storage.KindMinIO }

// Open implements storage.Source.
func (s *ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.StatObject(ctx, s.config.Bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil, errors.NotFound("dataset object not found").WithDetailf("bucket=%s key=%s", s.config.Bucket, key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat dataset object").WithDetailf("key=%s", key)
	}

	obj, err := s.client.GetObject(ctx, s.config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to get dataset object").WithDetailf("key=%s", key)
	}
	s.logger.Debug("object opened", logging.String("bucket", s.config.Bucket), logging.String("key", key))
	return obj, nil
}

// List implements storage.Source.  Both objects and common prefixes directly
// under dir are returned, without their trailing slash.
func (s *ObjectSource) List(ctx context.Context, dir string) ([]string, error) {
	key, err := s.key(dir)
	if err != nil {
		return nil, err
	}
	prefix := ""
	if key != "" {
		prefix = key + "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.config.Bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStorageError, "failed to list dataset objects").WithDetailf("prefix=%s", prefix)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), "/")
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, errors.NotFound("dataset directory not found").WithDetailf("bucket=%s prefix=%s", s.config.Bucket, prefix)
	}
	sort.Strings(names)
	return names, nil
}

// Create implements storage.Sink.  The object is uploaded when the writer is
// closed.
func (s *ObjectSource) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	return &objectWriter{ctx: ctx, src: s, key: key}, nil
}

type objectWriter struct {
	ctx    context.Context
	src    *ObjectSource
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New(errors.ErrCodeStorageError, "write to closed object").WithDetailf("key=%s", w.key)
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	size := int64(w.buf.Len())
	info, err := w.src.client.PutObject(w.ctx, w.src.config.Bucket, w.key, &w.buf, size,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to upload dataset object").WithDetailf("key=%s", w.key)
	}
	w.src.logger.Debug("object uploaded",
		logging.String("bucket", w.src.config.Bucket),
		logging.String("key", w.key),
		logging.Int64("size", info.Size),
	)
	return nil
}

//Personal.AI order the ending
