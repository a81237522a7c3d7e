package binder_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/binder"
)

type uploadRequest struct {
	FolderID   string                  `form:"folderId"`
	NamePrefix string                  `form:"namePrefix"`
	MakePublic bool                    `form:"makePublic"`
	Tags       []string                `form:"tags"`
	File       *multipart.FileHeader   `file:"file"`
	Extras     []*multipart.FileHeader `file:"extras"`
	Ignored    string                  `form:"-"`
}

type part struct {
	field    string
	filename string
	content  string
}

func newMultipartRequest(t *testing.T, fields map[string]string, files ...part) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-to-folder", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestForm_Multipart(t *testing.T) {
	t.Parallel()

	t.Run("fields and files", func(t *testing.T) {
		t.Parallel()
		req := newMultipartRequest(t,
			map[string]string{"folderId": "f-1", "namePrefix": " scan ", "makePublic": "on", "tags": "a,b", "Ignored": "x"},
			part{field: "file", filename: "passport.pdf", content: "%PDF"},
			part{field: "extras", filename: "a.png", content: "1"},
			part{field: "extras", filename: "b.png", content: "2"},
		)

		var got uploadRequest
		require.NoError(t, binder.Form()(req, &got))

		assert.Equal(t, "f-1", got.FolderID)
		assert.Equal(t, "scan", got.NamePrefix)
		assert.True(t, got.MakePublic)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		assert.Empty(t, got.Ignored)
		require.NotNil(t, got.File)
		assert.Equal(t, "passport.pdf", got.File.Filename)
		assert.Equal(t, int64(4), got.File.Size)
		assert.Len(t, got.Extras, 2)
	})

	t.Run("file names are reduced to a safe base name", func(t *testing.T) {
		t.Parallel()
		req := newMultipartRequest(t, nil, part{field: "file", filename: `..\..\windows\re:port.pdf`, content: "x"})

		var got uploadRequest
		require.NoError(t, binder.Form()(req, &got))
		require.NotNil(t, got.File)
		assert.Equal(t, "report.pdf", got.File.Filename)
	})

	t.Run("missing file leaves field nil", func(t *testing.T) {
		t.Parallel()
		req := newMultipartRequest(t, map[string]string{"folderId": "f-1"})

		var got uploadRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Nil(t, got.File)
	})

	t.Run("body over limit", func(t *testing.T) {
		t.Parallel()
		req := newMultipartRequest(t, map[string]string{"folderId": "f-1"},
			part{field: "file", filename: "big.bin", content: strings.Repeat("x", 4096)})

		var got uploadRequest
		err := binder.Multipart(1024)(req, &got)
		assert.ErrorIs(t, err, binder.ErrRequestTooLarge)
	})

	t.Run("missing boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		req.Header.Set("Content-Type", "multipart/form-data")

		var got uploadRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("invalid boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		req.Header.Set("Content-Type", `multipart/form-data; boundary="`+strings.Repeat("b", 71)+`"`)

		var got uploadRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})
}

func TestForm_URLEncoded(t *testing.T) {
	t.Parallel()

	t.Run("binds values", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"folderId": {"f-2"}, "makePublic": {"false"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got uploadRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "f-2", got.FolderID)
		assert.False(t, got.MakePublic)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("makePublic=maybe"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got uploadRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("no body is not applicable", func(t *testing.T) {
		t.Parallel()
		var got uploadRequest
		err := binder.Form()(httptest.NewRequest(http.MethodGet, "/", nil), &got)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		var got uploadRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrUnsupportedMediaType)
	})
}
