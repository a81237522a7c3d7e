package drive_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/drive"
)

func TestMemoryGateway_CreateFolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()

	root, err := gw.CreateFolder(ctx, "  Case: 42 / Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Case 42  Acme", root.Name)
	assert.True(t, root.IsFolder())
	assert.Equal(t, []string{drive.MemoryRootID}, root.Parents)
	assert.Equal(t, "https://drive.google.com/file/d/"+root.ID+"/view", root.WebViewLink)

	child, err := gw.CreateFolder(ctx, "01_submitted", root.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, child.Parents)

	_, err = gw.CreateFolder(ctx, `<>:"|`)
	assert.ErrorIs(t, err, drive.ErrEmptyName)

	_, err = gw.CreateFolder(ctx, "orphan", "missing")
	assert.ErrorIs(t, err, drive.ErrNotFound)
}

func TestMemoryGateway_DefaultParent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seed := drive.NewMemoryGateway()
	parent, err := seed.CreateFolder(ctx, "Cases")
	require.NoError(t, err)

	gw := drive.NewMemoryGateway(drive.WithMemoryDefaultParent(parent.ID))
	_, err = gw.CreateFolder(ctx, "Case")
	assert.ErrorIs(t, err, drive.ErrNotFound, "default parent must exist in this gateway")
}

func TestMemoryGateway_Files(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	folder, err := gw.CreateFolder(ctx, "docs")
	require.NoError(t, err)

	file, err := gw.CreateFile(ctx, "scan.pdf", folder.ID, "application/pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), file.Size)
	assert.NotEmpty(t, file.MD5)
	assert.False(t, file.IsFolder())

	got, err := gw.Get(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	dl, err := gw.Download(ctx, file.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	require.NoError(t, dl.Body.Close())
	assert.Equal(t, "%PDF-1.7", string(body))
	assert.Equal(t, "application/pdf", dl.MimeType)
	assert.Equal(t, file.MD5, dl.MD5)

	_, err = gw.Download(ctx, folder.ID)
	assert.ErrorIs(t, err, drive.ErrNotDownloadable)

	_, err = gw.Get(ctx, "nope")
	assert.ErrorIs(t, err, drive.ErrNotFound)
}

func TestMemoryGateway_ListChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	parent, err := gw.CreateFolder(ctx, "parent")
	require.NoError(t, err)

	a, err := gw.CreateFolder(ctx, "b-folder", parent.ID)
	require.NoError(t, err)
	b, err := gw.CreateFile(ctx, "a-file.txt", parent.ID, "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	c, err := gw.CreateFolder(ctx, "c-folder", parent.ID)
	require.NoError(t, err)
	require.NoError(t, gw.Trash(ctx, c.ID))

	items, err := gw.ListChildren(ctx, parent.ID, drive.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(items), "creation order, trashed excluded")

	items, err = gw.ListChildren(ctx, parent.ID, drive.ListOptions{MimeType: drive.FolderMimeType})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids(items))

	items, err = gw.ListChildren(ctx, parent.ID, drive.ListOptions{OrderBy: "modifiedTime desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, ids(items))

	items, err = gw.ListChildren(ctx, parent.ID, drive.ListOptions{OrderBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, ids(items))

	items, err = gw.ListChildren(ctx, parent.ID, drive.ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	empty, err := gw.ListChildren(ctx, a.ID, drive.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryGateway_Reparent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	src, err := gw.CreateFolder(ctx, "src")
	require.NoError(t, err)
	dst, err := gw.CreateFolder(ctx, "dst")
	require.NoError(t, err)
	file, err := gw.CreateFile(ctx, "f.txt", src.ID, "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", file.MimeType)

	moved, err := gw.Reparent(ctx, file.ID, dst.ID, src.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{dst.ID}, moved.Parents)

	inSrc, err := gw.ListChildren(ctx, src.ID, drive.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, inSrc)

	_, err = gw.Reparent(ctx, file.ID, "missing", dst.ID)
	assert.ErrorIs(t, err, drive.ErrNotFound)
}

func TestMemoryGateway_DescriptionAndGrants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	f, err := gw.CreateFolder(ctx, "f")
	require.NoError(t, err)

	updated, err := gw.SetDescription(ctx, f.ID, "reviewed")
	require.NoError(t, err)
	assert.Equal(t, "reviewed", updated.Description)

	require.NoError(t, gw.GrantPublicRead(ctx, f.ID))
	require.NoError(t, gw.GrantPublicRead(ctx, f.ID))
	assert.Equal(t, 2, gw.PublicGrants(f.ID), "grants are not deduplicated")

	assert.ErrorIs(t, gw.GrantPublicRead(ctx, "missing"), drive.ErrNotFound)
}

func TestMemoryGateway_FailureInjection(t *testing.T) {
	t.Parallel()

	errQuota := errors.New("quota exceeded")
	gw := drive.NewMemoryGateway(drive.WithMemoryFailure(func(op, arg string) error {
		if op == "CreateFolder" && arg == "boom" {
			return errQuota
		}
		return nil
	}))

	_, err := gw.CreateFolder(context.Background(), "ok")
	require.NoError(t, err)
	_, err = gw.CreateFolder(context.Background(), "boom")
	assert.ErrorIs(t, err, errQuota)
	assert.Equal(t, 1, gw.Count())
}

func TestMemoryGateway_Clock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	gw := drive.NewMemoryGateway(drive.WithMemoryClock(func() time.Time { return fixed }))

	a, err := gw.CreateFolder(context.Background(), "a")
	require.NoError(t, err)
	b, err := gw.CreateFolder(context.Background(), "b")
	require.NoError(t, err)

	assert.True(t, b.CreatedTime.After(a.CreatedTime), "timestamps are strictly increasing")
}

func TestMemoryGateway_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	parent, err := gw.CreateFolder(ctx, "parent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.CreateFolder(ctx, "child", parent.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := gw.ListChildren(ctx, parent.ID, drive.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

func ids(items []drive.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
