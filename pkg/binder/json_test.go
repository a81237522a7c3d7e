package binder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/binder"
)

type createFoldersRequest struct {
	RootName   string   `json:"rootName"`
	DocTypes   []string `json:"docTypes"`
	MakePublic bool     `json:"makePublic"`
	ParentID   *string  `json:"parentId"`
}

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/create-case-folders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got createFoldersRequest
		err := binder.JSON()(newJSONRequest(`{"rootName":"Acme","docTypes":["id_front","id_back"],"makePublic":true,"parentId":"p1"}`), &got)

		require.NoError(t, err)
		assert.Equal(t, "Acme", got.RootName)
		assert.Equal(t, []string{"id_front", "id_back"}, got.DocTypes)
		assert.True(t, got.MakePublic)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, "p1", *got.ParentID)
	})

	t.Run("strings are cleaned", func(t *testing.T) {
		t.Parallel()
		var got createFoldersRequest
		err := binder.JSON()(newJSONRequest(`{"rootName":"  Acme\u0000 ","docTypes":[" id "],"parentId":" p1 "}`), &got)

		require.NoError(t, err)
		assert.Equal(t, "Acme", got.RootName)
		assert.Equal(t, []string{"id"}, got.DocTypes)
		assert.Equal(t, "p1", *got.ParentID)
	})

	t.Run("charset parameter accepted", func(t *testing.T) {
		t.Parallel()
		req := newJSONRequest(`{"rootName":"Acme"}`)
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got createFoldersRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "Acme", got.RootName)
	})

	t.Run("no body is not applicable", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/create-case-folders", nil)

		var got createFoldersRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("whitespace body is not applicable", func(t *testing.T) {
		t.Parallel()
		var got createFoldersRequest
		assert.ErrorIs(t, binder.JSON()(newJSONRequest("  \n"), &got), binder.ErrBinderNotApplicable)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{name: "missing content type", contentType: "", body: `{"rootName":"x"}`, wantErr: binder.ErrMissingContentType},
		{name: "wrong content type", contentType: "text/plain", body: `{"rootName":"x"}`, wantErr: binder.ErrUnsupportedMediaType},
		{name: "malformed", contentType: "application/json", body: `{"rootName":`, wantErr: binder.ErrFailedToParseJSON},
		{name: "unknown field", contentType: "application/json", body: `{"rootName":"x","admin":true}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "wrong type", contentType: "application/json", body: `{"docTypes":"id_front"}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing data", contentType: "application/json", body: `{"rootName":"x"}{"rootName":"y"}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "too large", contentType: "application/json", body: `{"rootName":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, wantErr: binder.ErrRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var got createFoldersRequest
			err := binder.JSON()(req, &got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsBindError(t *testing.T) {
	t.Parallel()

	assert.True(t, binder.IsBindError(binder.ErrInvalidForm))
	assert.True(t, binder.IsBindError(binder.ErrMissingContentType))
	assert.False(t, binder.IsBindError(binder.ErrRequestTooLarge))
	assert.False(t, binder.IsBindError(binder.ErrBinderNotApplicable))
	assert.False(t, binder.IsBindError(nil))
}
