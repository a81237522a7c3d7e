package transfer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/file"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newService(t *testing.T, opts ...drive.MemoryOption) (*transfer.Service, *drive.MemoryGateway, string) {
	t.Helper()
	gw := drive.NewMemoryGateway(opts...)
	folder, err := gw.CreateFolder(context.Background(), "inbox")
	require.NoError(t, err)
	return transfer.New(gw, transfer.WithClock(clock)), gw, folder.ID
}

func TestStoredName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1709285400000_scan.pdf", transfer.StoredName("", "scan.pdf", fixedNow))
	assert.Equal(t, "front_1709285400000_id.png", transfer.StoredName("front", "../../id.png", fixedNow))
	assert.Equal(t, "ab_1709285400000_file", transfer.StoredName(" a/b ", "", fixedNow))
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores under the derived name", func(t *testing.T) {
		t.Parallel()
		svc, gw, folderID := newService(t)

		f, err := svc.Upload(context.Background(), transfer.UploadParams{
			FolderID:   folderID,
			NamePrefix: "id_front",
			Filename:   "passport.pdf",
			MimeType:   "application/pdf",
			Content:    strings.NewReader("%PDF-1.4"),
		})
		require.NoError(t, err)

		assert.Equal(t, "id_front_1709285400000_passport.pdf", f.Name)
		assert.Equal(t, "application/pdf", f.MimeType)
		assert.Equal(t, []string{folderID}, f.Parents)
		assert.False(t, f.IsPublic)
		assert.Zero(t, gw.PublicGrants(f.ID))
		assert.Equal(t, "https://drive.google.com/file/d/"+f.ID+"/view", f.View)
		assert.Equal(t, "https://drive.google.com/file/d/"+f.ID+"/preview", f.Preview)
		assert.Equal(t, "https://drive.google.com/uc?export=download&id="+f.ID, f.Download)
	})

	t.Run("grants public read", func(t *testing.T) {
		t.Parallel()
		svc, gw, folderID := newService(t)

		f, err := svc.Upload(context.Background(), transfer.UploadParams{
			FolderID:   folderID,
			MakePublic: true,
			Filename:   "a.txt",
			Content:    strings.NewReader("a"),
		})
		require.NoError(t, err)
		assert.True(t, f.IsPublic)
		assert.Equal(t, 1, gw.PublicGrants(f.ID))
	})

	t.Run("grant failure is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("permission denied")
		svc, _, folderID := newService(t, drive.WithMemoryFailure(func(op, _ string) error {
			if op == "GrantPublicRead" {
				return boom
			}
			return nil
		}))

		_, err := svc.Upload(context.Background(), transfer.UploadParams{
			FolderID:   folderID,
			MakePublic: true,
			Filename:   "a.txt",
			Content:    strings.NewReader("a"),
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing folder", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.Upload(context.Background(), transfer.UploadParams{Filename: "a", Content: strings.NewReader("")})
		assert.ErrorIs(t, err, transfer.ErrMissingFolderID)

		_, err = svc.Upload(context.Background(), transfer.UploadParams{FolderID: "nope", Filename: "a", Content: strings.NewReader("")})
		assert.ErrorIs(t, err, drive.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	folder, err := gw.CreateFolder(ctx, "inbox")
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		it, err := gw.CreateFile(ctx, name, folder.ID, "text/plain", strings.NewReader(name))
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}
	require.NoError(t, gw.Trash(ctx, ids[1]))

	svc := transfer.New(gw, transfer.WithListLimit(1))
	files, err := svc.List(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ids[2], files[0].ID)
	assert.NotEmpty(t, files[0].Download)

	files, err = transfer.New(gw).List(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, []string{ids[2], ids[0]}, []string{files[0].ID, files[1].ID})

	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, transfer.ErrMissingFolderID)
}

func TestMove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	src, err := gw.CreateFolder(ctx, "src")
	require.NoError(t, err)
	dst, err := gw.CreateFolder(ctx, "dst")
	require.NoError(t, err)
	other, err := gw.CreateFolder(ctx, "other")
	require.NoError(t, err)
	svc := transfer.New(gw)

	t.Run("explicit", func(t *testing.T) {
		it, err := gw.CreateFile(ctx, "a", src.ID, "", strings.NewReader("a"))
		require.NoError(t, err)

		moved, err := svc.Move(ctx, it.ID, src.ID, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{dst.ID}, moved.Parents)
		assert.NotEmpty(t, moved.View)

		_, err = svc.Move(ctx, it.ID, "", dst.ID)
		assert.ErrorIs(t, err, transfer.ErrMissingFolderID)
		_, err = svc.Move(ctx, "", src.ID, dst.ID)
		assert.ErrorIs(t, err, transfer.ErrMissingFileID)
	})

	t.Run("smart replaces every parent", func(t *testing.T) {
		it, err := gw.CreateFile(ctx, "b", src.ID, "", strings.NewReader("b"))
		require.NoError(t, err)
		_, err = gw.Reparent(ctx, it.ID, other.ID)
		require.NoError(t, err)

		moved, err := svc.MoveSmart(ctx, it.ID, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{dst.ID}, moved.Parents)

		again, err := svc.MoveSmart(ctx, it.ID, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{dst.ID}, again.Parents)
	})

	t.Run("smart unknown file", func(t *testing.T) {
		_, err := svc.MoveSmart(ctx, "missing", dst.ID)
		assert.ErrorIs(t, err, drive.ErrNotFound)
	})
}

func TestComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, gw, folderID := newService(t)
	it, err := gw.CreateFile(ctx, "a", folderID, "", strings.NewReader("a"))
	require.NoError(t, err)

	f, err := svc.Comment(ctx, it.ID, "looks  blurry\n")
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-01T09:30:00Z] looks blurry", f.Description)

	f, err = svc.Comment(ctx, it.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-01T09:30:00Z] looks blurry\n[2024-03-01T09:30:00Z] approved", f.Description)

	_, err = svc.Comment(ctx, it.ID, "   ")
	assert.ErrorIs(t, err, transfer.ErrEmptyMessage)
	_, err = svc.Comment(ctx, "missing", "x")
	assert.ErrorIs(t, err, drive.ErrNotFound)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, gw, folderID := newService(t)
	it, err := gw.CreateFile(ctx, "a.txt", folderID, "text/plain", strings.NewReader("0123456789"))
	require.NoError(t, err)

	d, err := svc.Preview(ctx, it.ID, 10)
	require.NoError(t, err)
	defer d.Body.Close()
	b, err := io.ReadAll(d.Body)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(b))
	assert.Equal(t, int64(10), d.Size)
	assert.NotEmpty(t, d.MD5)

	_, err = svc.Preview(ctx, it.ID, 9)
	assert.ErrorIs(t, err, transfer.ErrTooLarge)

	d, err = svc.Preview(ctx, it.ID, 0)
	require.NoError(t, err)
	_ = d.Body.Close()

	_, err = svc.Preview(ctx, folderID, 0)
	assert.ErrorIs(t, err, drive.ErrNotDownloadable)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cases := map[error]int{
		drive.ErrNotFound:            404,
		transfer.ErrTooLarge:         413,
		transfer.ErrMissingFolderID:  400,
		drive.ErrNotDownloadable:     400,
		errors.New("quota exceeded"): 500,
	}
	for err, want := range cases {
		assert.Equal(t, want, handler.StatusCode(transfer.HTTPError(err)), err.Error())
	}
}

func multipartFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
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

func TestUploadFile_PerFileLimit(t *testing.T) {
	t.Parallel()

	gw := drive.NewMemoryGateway()
	folder, err := gw.CreateFolder(context.Background(), "inbox")
	require.NoError(t, err)
	svc := transfer.New(gw, transfer.WithClock(clock), transfer.WithMaxFileBytes(10))

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()
		fh := multipartFile(t, "scan.pdf", "application/pdf", []byte("%PDF-1.4"))
		f, err := svc.UploadFile(context.Background(), fh, transfer.UploadParams{FolderID: folder.ID})
		require.NoError(t, err)
		assert.Equal(t, "1709285400000_scan.pdf", f.Name)
		assert.Equal(t, "application/pdf", f.MimeType)
	})

	t.Run("over limit", func(t *testing.T) {
		t.Parallel()
		fh := multipartFile(t, "big.txt", "text/plain", bytes.Repeat([]byte("x"), 11))
		_, err := svc.UploadFile(context.Background(), fh, transfer.UploadParams{FolderID: folder.ID})
		require.ErrorIs(t, err, file.ErrFileTooLarge)
		assert.Equal(t, http.StatusRequestEntityTooLarge, handler.StatusCode(transfer.HTTPError(err)))
	})
}
