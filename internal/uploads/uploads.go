package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Saver persists uploaded binaries under a base directory, one
// subdirectory per resource, and reports the relative URL to store on the
// entity. Writing the file and writing the entity row are two separate
// steps: if the row write fails afterwards the file stays behind as an
// orphan (the caller logs it).
type Saver struct {
	baseDir string
}

// NewSaver creates a Saver rooted at baseDir.
func NewSaver(baseDir string) *Saver {
	return &Saver{baseDir: baseDir}
}

// Save writes the uploaded file into <baseDir>/<category> under a
// uuid-prefixed name and returns the relative URL "/<category>/<uuid>_<name>".
// The destination directory is created if missing. Any I/O failure is
// returned with the underlying cause attached.
func (s *Saver) Save(category string, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	// Strip any path components a client may have smuggled into the name.
	safeName := filepath.Base(file.Filename)
	uniqueName := fmt.Sprintf("%s_%s", uuid.New().String(), safeName)
	dst := filepath.Join(dir, uniqueName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %s: %w", safeName, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file %s: %w", dst, err)
	}

	return fmt.Sprintf("/%s/%s", category, uniqueName), nil
}
