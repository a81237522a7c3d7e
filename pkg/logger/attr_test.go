package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("drive", slog.String("op", "list"), slog.Int("n", 2))
	require.Equal(t, "drive", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "op", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr func(string) slog.Attr
		key  string
	}{
		{logger.RequestID, "request_id"},
		{logger.CaseID, "case_id"},
		{logger.FolderID, "folder_id"},
		{logger.FileID, "file_id"},
		{logger.DocType, "doc_type"},
		{logger.Role, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			attr := tt.attr("v1")
			assert.Equal(t, tt.key, attr.Key)
			assert.Equal(t, "v1", attr.Value.String())

			assert.True(t, tt.attr("").Equal(slog.Attr{}), "empty value yields empty attr")
		})
	}
}

func TestDuration(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(150 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 150*time.Millisecond, attr.Value.Duration())
}
