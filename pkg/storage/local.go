// Package storage provides the durable byte store backing note
// attachments: path-based write, read, delete on local disk.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

type FileStore interface {
	// Save writes the stream to a new file under the store directory
	// and returns its path and the number of bytes written. The file
	// is removed again if the write fails or ctx is canceled mid-copy.
	Save(ctx context.Context, filename string, r io.Reader) (string, int64, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root directory files are stored under.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, int64, error) {
	// Stored names are generated by the caller; O_EXCL guards against
	// an improbable collision overwriting another upload.
	path := filepath.Join(s.dir, filepath.Base(filename))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, err
	}

	written, err := io.Copy(dst, &contextReader{ctx: ctx, r: r})
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, written, nil
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *LocalStore) Remove(path string) error {
	return os.Remove(path)
}

// contextReader aborts a copy when the request context is canceled so
// a client disconnect mid-upload does not finish writing the file.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
