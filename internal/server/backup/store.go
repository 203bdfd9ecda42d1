package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/filex"
)

// BlobStore keeps encrypted backup archives by name.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// List returns archive names in ascending order.
	List(ctx context.Context) ([]string, error)
}

// FileStore keeps archives in a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: abs}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Put(_ context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	return filex.WriteFileAtomic(filepath.Join(s.dir, name), data, 0o600)
}

func (s *FileStore) Get(_ context.Context, name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	des, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}
	var names []string
	for _, de := range des {
		if de.Type().IsRegular() && isArchiveName(de.Name()) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid backup name %q", name)
	}
	return nil
}
