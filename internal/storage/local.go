// Package storage persists uploaded course material attachments on local
// disk under a configured media root.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotReadable is returned when a stored attachment path cannot be opened.
var ErrNotReadable = errors.New("storage: attachment is not readable")

// LocalStore writes attachments under root and hands back media-relative
// paths, which is what the material records persist.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save stores the uploaded file under subdir with a unique name and returns
// the media-relative path.
func (s *LocalStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Resolve turns a media-relative path into an absolute one, verifying the
// file exists and is readable.
func (s *LocalStore) Resolve(relPath string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(relPath))
	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotReadable, relPath)
	}
	_ = f.Close()
	return abs, nil
}

// FileName returns the original file name of a stored path, with the unique
// prefix added by Save stripped.
func FileName(relPath string) string {
	base := filepath.Base(filepath.FromSlash(relPath))
	if _, rest, ok := strings.Cut(base, "_"); ok && rest != "" {
		return rest
	}
	return base
}

// ContentType guesses the MIME type from the file extension.
func (s *LocalStore) ContentType(relPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(relPath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
