package object

import (
	"context"
	"errors"
	"io"
)

// Folders group stored files by what uploaded them.
const (
	FolderResumes      = "resumes"
	FolderApplications = "applications"
)

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Object describes a stored file.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// Store saves and retrieves uploaded documents. Keys are relative paths of the
// form <folder>/<owner hash>/<random>_<file name>.
type Store interface {
	Save(ctx context.Context, folder, owner, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
