// Package storage abstracts where dataset files live.  A Source opens files
// by slash-separated name relative to its root; a Sink creates them.  The
// local filesystem and MinIO (package minio) both implement the pair.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
)

// Source kinds, as configured under dataset.source.
const (
	KindLocal = "local"
	KindMinIO = "minio"
)

// Source reads dataset files.
type Source interface {
	// Open returns the content of name.  A missing file fails with an error
	// for which errors.IsNotFound is true.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns the names of the direct children of dir, sorted.
	List(ctx context.Context, dir string) ([]string, error)

	// Kind names the backend, for logs and metrics labels.
	Kind() string
}

// Sink writes dataset files.  The file is complete once the returned writer
// is closed without error.
type Sink interface {
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// HealthChecker reports backend reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) common.ComponentHealth
}

// CleanName normalizes a slash-separated name and rejects names escaping the
// root.
func CleanName(name string) (string, error) {
	slashed := strings.ReplaceAll(name, "\\", "/")
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", errors.InvalidParam("path escapes the dataset root").WithDetailf("name=%s", name)
		}
	}
	return strings.TrimPrefix(path.Clean("/"+slashed), "/"), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// LocalSource
// ─────────────────────────────────────────────────────────────────────────────

// LocalSource serves files below a filesystem directory.
type LocalSource struct {
	root string
}

// NewLocalSource returns a LocalSource rooted at root.
func NewLocalSource(root string) *LocalSource {
	if root == "" {
		root = "."
	}
	return &LocalSource{root: root}
}

// Root returns the filesystem root.
func (s *LocalSource) Root() string { return s.root }

func (s *LocalSource) resolve(name string) (string, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Open implements Source.
func (s *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("dataset file not found").WithDetailf("name=%s", name)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open dataset file").WithDetailf("name=%s", name)
	}
	return f, nil
}

// List implements Source.
func (s *LocalSource) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("dataset directory not found").WithDetailf("dir=%s", dir)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to list dataset directory").WithDetailf("dir=%s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Kind implements Source.
func (s *LocalSource) Kind() string { return KindLocal }

// Create implements Sink.  Parent directories are created as needed.
func (s *LocalSource) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create dataset directory").WithDetailf("name=%s", name)
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create dataset file").WithDetailf("name=%s", name)
	}
	return f, nil
}

// HealthCheck implements HealthChecker.
func (s *LocalSource) HealthCheck(_ context.Context) common.ComponentHealth {
	h := common.ComponentHealth{Name: "storage." + KindLocal, Status: common.HealthUp}
	info, err := os.Stat(s.root)
	switch {
	case err != nil:
		h.Status = common.HealthDown
		h.Message = err.Error()
	case !info.IsDir():
		h.Status = common.HealthDown
		h.Message = "dataset root is not a directory"
	}
	return h
}

//Personal.AI order the ending
