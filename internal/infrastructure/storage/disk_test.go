package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-directory-api/config"
	"user-directory-api/internal/application/ports"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("profileImage", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&b, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["profileImage"][0]
}

var _ ports.FileStorage = (*Disk)(nil)

func newDisk(t *testing.T, maxSize int64) *Disk {
	t.Helper()
	d, err := New(zap.NewNop(), config.Upload{
		Dir:          filepath.Join(t.TempDir(), "uploads"),
		MaxSizeBytes: maxSize,
	})
	require.NoError(t, err)
	d.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return d
}

func TestDisk_Save(t *testing.T) {
	d := newDisk(t, 1<<10)

	name, err := d.Save(context.Background(), "profileImage", fileHeader(t, "Photo de Zoé.PNG", []byte("png-bytes")))
	require.NoError(t, err)

	assert.Regexp(t, `^profileImage-1700000000000-[0-9a-f]{8}-photo-de-zoe\.png$`, name)

	got, err := os.ReadFile(filepath.Join(d.dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)

	d.Remove(name)
	_, err = os.Stat(filepath.Join(d.dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDisk_Save_TooLarge(t *testing.T) {
	d := newDisk(t, 4)

	_, err := d.Save(context.Background(), "profileImage", fileHeader(t, "a.png", []byte("12345")))
	require.ErrorIs(t, err, ErrFileTooLarge)

	_, err = d.Save(context.Background(), "profileImage", fileHeader(t, "a.png", []byte{}))
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestDisk_Remove_IgnoresTraversal(t *testing.T) {
	d := newDisk(t, 0)
	outside := filepath.Join(filepath.Dir(d.dir), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	d.Remove("../keep.txt")

	_, err := os.Stat(outside)
	require.NoError(t, err)
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"":                         "file",
		"..":                       "file",
		`C:\Users\me\Avatar.JPG`:   "avatar.jpg",
		"../../etc/passwd":         "passwd",
		"Café  au lait__v2.jpeg":   "cafe-au-lait-v2.jpeg",
		"résumé.p!ng":              "resume.png",
		"***.gif":                  "file.gif",
	}

	for in, want := range tests {
		assert.Equal(t, want, sanitizeFileName(in), "input %q", in)
	}
}
