package middleware

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// DirFS serves files from a root directory on the filesystem. The directory is
// opened as an [os.Root], so neither ".." nor symlinks can reach outside it.
type DirFS struct {
	root *os.Root
	fsys fs.FS
}

// NewDirFS opens dir and returns a DirFS rooted at it. The caller must Close it.
func NewDirFS(dir string) (*DirFS, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &DirFS{root: root, fsys: root.FS()}, nil
}

// Open implements [fs.FS].
func (d *DirFS) Open(name string) (fs.File, error) {
	f, err := d.fsys.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, err
	}

	// a symlink that resolves outside the root is a traversal attempt, not an I/O failure
	if fi, lerr := d.root.Lstat(name); lerr == nil && fi.Mode()&fs.ModeSymlink != 0 {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return nil, err
}

// Name returns the directory the DirFS is rooted at.
func (d *DirFS) Name() string { return d.root.Name() }

// Close releases the underlying root directory.
func (d *DirFS) Close() error { return d.root.Close() }

// NewStaticHandler creates a handler for serving static files from fsys.
// Directories serve their index.html when present.
// For security, requests whose path contains a ".." segment are answered with
// 404 before the filesystem is touched.
func NewStaticHandler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasDotDot(r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func hasDotDot(p string) bool {
	if !strings.Contains(p, "..") {
		return false
	}
	for _, seg := range strings.FieldsFunc(p, isSlash) {
		if seg == ".." {
			return true
		}
	}
	return false
}

func isSlash(r rune) bool { return r == '/' || r == '\\' }
