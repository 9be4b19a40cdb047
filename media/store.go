// Package media provides the scratch-directory image store of one
// conversion.
//
// A [Store] owns a single fresh directory and writes each image to a file
// named from its page index, image index and extension:
//
//	store, err := media.New("", "reflow-")
//	if err != nil {
//	    // handle error
//	}
//	path, err := store.Put(0, 1, "png", data) // <dir>/img_p0_1.png
//
// The (page, image) pair is the uniqueness key, so pages may be written out
// of order or concurrently. The store never deletes its directory; cleanup
// belongs to the caller.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/reflow/model"
)

// Store writes extracted images into one scratch directory
type Store struct {
	dir string

	mu      sync.Mutex
	written map[key]string
}

type key struct {
	page, image int
}

// New creates a store backed by a fresh, empty directory created inside
// baseDir (the system temporary directory when empty). prefix is prepended
// to the generated directory name.
func New(baseDir, prefix string) (*Store, error) {
	dir, err := os.MkdirTemp(baseDir, prefix+"*")
	if err != nil {
		return nil, &model.IOError{Op: "mkdir", Path: filepath.Join(baseDir, prefix+"*"), Err: err}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Store{
		dir:     dir,
		written: make(map[key]string),
	}, nil
}

// Dir returns the absolute path of the scratch directory
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns the file name used for an image
func FileName(pageIndex, imageIndex int, ext string) string {
	return fmt.Sprintf("img_p%d_%d.%s", pageIndex, imageIndex, ext)
}

// Put writes data to the file for (pageIndex, imageIndex) and returns its
// path. An empty or unusable extension is replaced by one sniffed from the
// data. Writing the same pair twice overwrites the earlier file.
func (s *Store) Put(pageIndex, imageIndex int, ext string, data []byte) (string, error) {
	path := filepath.Join(s.dir, FileName(pageIndex, imageIndex, NormalizeExt(ext, data)))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &model.IOError{Op: "write", Path: path, Err: err}
	}

	s.mu.Lock()
	s.written[key{pageIndex, imageIndex}] = path
	s.mu.Unlock()

	return path, nil
}

// Paths returns the written files ordered by page, then image index
func (s *Store) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]key, 0, len(s.written))
	for k := range s.written {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].page != keys[j].page {
			return keys[i].page < keys[j].page
		}
		return keys[i].image < keys[j].image
	})

	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = s.written[k]
	}
	return paths
}

// NormalizeExt lower-cases ext, strips a leading dot and drops anything
// outside [a-z0-9]. When nothing is left the format is sniffed from data,
// falling back to "bin".
func NormalizeExt(ext string, data []byte) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")

	var sb strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() > 0 {
		return sb.String()
	}

	if info, err := Probe(data); err == nil {
		return info.Ext()
	}
	return "bin"
}
