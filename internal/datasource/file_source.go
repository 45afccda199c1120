package datasource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const fileSourceName = "file"

// FileSource reads division exports from a local directory
type FileSource struct {
	dir string
}

// NewFileSource creates a data source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Open opens the named export inside the source directory
func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, filepath.Clean("/"+name))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewDataSourceError(fileSourceName, ErrCodeNotFound, "export not found: "+path, err)
		}
		return nil, NewDataSourceError(fileSourceName, ErrCodeUnknown, "failed to open export: "+path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewDataSourceError(fileSourceName, ErrCodeUnknown, "failed to stat export: "+path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, NewDataSourceError(fileSourceName, ErrCodeInvalidData, "export is a directory: "+path, nil)
	}
	return f, nil
}

// Name returns the data source name
func (s *FileSource) Name() string {
	return fileSourceName
}

// Dir returns the directory the source reads from
func (s *FileSource) Dir() string {
	return s.dir
}
