package file_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/file"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {w.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestMIMEType(t *testing.T) {
	t.Parallel()

	t.Run("specific declared type wins", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "scan.bin", "application/pdf", []byte("not really a pdf"))
		mt, err := file.MIMEType(fh)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mt)
	})

	t.Run("generic declared type is sniffed", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "photo", "application/octet-stream", pngHeader)
		mt, err := file.MIMEType(fh)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mt)
	})

	t.Run("missing declared type is sniffed", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "doc.pdf", "", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"))
		mt, err := file.MIMEType(fh)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mt)
	})

	t.Run("text drops charset", func(t *testing.T) {
		t.Parallel()
		mt, err := file.DetectMIMEType(fileHeader(t, "a.txt", "", []byte("hello world")))
		require.NoError(t, err)
		assert.Equal(t, "text/plain", mt)
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		_, err := file.MIMEType(nil)
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
	})
}

func TestValidateSize(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "a.txt", "text/plain", bytes.Repeat([]byte("x"), 100))

	assert.NoError(t, file.ValidateSize(fh, 100))
	assert.NoError(t, file.ValidateSize(fh, 0))
	assert.ErrorIs(t, file.ValidateSize(fh, 99), file.ErrFileTooLarge)
	assert.ErrorIs(t, file.ValidateSize(nil, 1), file.ErrNilFileHeader)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "a.txt", "text/plain", []byte("content"))
	rc, err := file.Open(fh)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(b))

	_, err = file.Open(nil)
	assert.ErrorIs(t, err, file.ErrNilFileHeader)
}
