package uploads_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"supermart/internal/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader the way Fiber hands one to
// the saver.
func fileHeader(t *testing.T, fieldName, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[fieldName][0]
}

func TestSaverSave(t *testing.T) {
	dir := t.TempDir()
	saver := uploads.NewSaver(dir)

	header := fileHeader(t, "image", "logo.png", []byte("png-bytes"))
	url, err := saver.Save("products", header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/products/"), "url %q should start with /products/", url)
	assert.True(t, strings.HasSuffix(url, "_logo.png"), "url %q should keep the original name", url)

	// The relative URL must resolve to the written file.
	onDisk := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/")))
	f, err := os.Open(onDisk)
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)
}

func TestSaverCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	saver := uploads.NewSaver(dir)

	header := fileHeader(t, "image", "photo.jpg", []byte("jpg"))
	_, err := saver.Save("employees", header)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "employees"))
	assert.NoError(t, err)
}

func TestSaverStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	saver := uploads.NewSaver(dir)

	header := fileHeader(t, "image", "evil.png", []byte("x"))
	header.Filename = "../../escape.png"

	url, err := saver.Save("orders", header)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "_escape.png"))
	assert.NotContains(t, url, "..")
}

func TestSaverUniqueNames(t *testing.T) {
	dir := t.TempDir()
	saver := uploads.NewSaver(dir)

	header := fileHeader(t, "image", "same.png", []byte("x"))
	first, err := saver.Save("products", header)
	require.NoError(t, err)
	second, err := saver.Save("products", header)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
