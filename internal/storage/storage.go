package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
)

const DefaultMaxBytes = 5 * 1024 * 1024

var allowedImages = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg", "image/jpg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
}

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type BlobStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ValidatePhoto accepts jpeg, jpg, png and gif files up to maxBytes. Both the
// extension and the declared content type must agree.
func ValidatePhoto(p *Photo, maxBytes int64) error {
	if p == nil {
		return nil
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if p.Size > maxBytes {
		return domain.Invalid(fmt.Sprintf("Photo must be at most %d bytes", maxBytes))
	}

	ext := strings.ToLower(filepath.Ext(p.Name))
	types, ok := allowedImages[ext]
	if !ok {
		return domain.Invalid("Only image files are allowed")
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(p.ContentType, ";", 2)[0]))
	for _, t := range types {
		if ct == t {
			return nil
		}
	}
	return domain.Invalid("Only image files are allowed")
}

type DiskStore struct {
	Dir      string
	MaxBytes int64
	Now      func() time.Time
}

func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &DiskStore{Dir: dir, MaxBytes: maxBytes, Now: time.Now}, nil
}

// Save writes r as "<unix-ms>-<base name>" and returns that file name as the
// reference. Writing stops with ErrValidation once MaxBytes is exceeded.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean("/" + originalName))
	if base == "/" || base == "." {
		return "", domain.Invalid("Photo needs a file name")
	}
	ref := strconv.FormatInt(s.Now().UnixMilli(), 10) + "-" + base

	f, err := os.OpenFile(filepath.Join(s.Dir, ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.MaxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write photo: %w", err)
	case n > s.MaxBytes:
		_ = os.Remove(f.Name())
		return "", domain.Invalid(fmt.Sprintf("Photo must be at most %d bytes", s.MaxBytes))
	case closeErr != nil:
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close photo: %w", closeErr)
	}
	return ref, nil
}

func (s *DiskStore) Delete(_ context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return fmt.Errorf("bad photo reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.Dir, ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
