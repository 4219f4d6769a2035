package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-directory-api/config"
)

var ErrFileTooLarge = errors.New("file too large or empty")

// Disk keeps uploaded images in a local directory. The router serves that
// directory statically.
type Disk struct {
	logger  *zap.Logger
	dir     string
	maxSize int64
	now     func() time.Time
}

func New(logger *zap.Logger, cfg config.Upload) (*Disk, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Disk{
		logger:  logger,
		dir:     cfg.Dir,
		maxSize: cfg.MaxSizeBytes,
		now:     time.Now,
	}, nil
}

// Save copies the uploaded file into the upload directory under a generated
// name and returns that name.
func (d *Disk) Save(ctx context.Context, field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size <= 0 || (d.maxSize > 0 && fh.Size > d.maxSize) {
		return "", ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := d.genFileName(field, fh)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(d.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err = dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}

	d.logger.Debug("upload stored", zap.String("file", name), zap.Int64("size", fh.Size))

	return name, nil
}

// Remove deletes a previously saved file. Unknown names are ignored.
func (d *Disk) Remove(name string) {
	if name == "" || name != filepath.Base(name) {
		return
	}
	if err := os.Remove(filepath.Join(d.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		d.logger.Warn("failed to remove upload", zap.String("file", name), zap.Error(err))
	}
}

// genFileName: "<field>-<unix-ms>-<rand8>-<safe-base>.ext"
func (d *Disk) genFileName(field string, fh *multipart.FileHeader) string {
	safe := sanitizeFileName(fh.Filename)
	ext := path.Ext(safe)
	base := strings.TrimSuffix(safe, ext)
	if ext == "" {
		ext = extByMime(fh.Header.Get("Content-Type"))
	}

	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%s-%d-%s-%s%s", field, d.now().UnixMilli(), rnd, base, ext)
}
