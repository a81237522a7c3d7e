package containment_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	"github.com/dmitrymomot/drivecase/svc/containment"
)

func TestIsUnder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()
	trees := casetree.New(gw)

	r1, err := trees.Build(ctx, casetree.BuildParams{RootName: "R", DocTypes: []string{"id"}})
	require.NoError(t, err)
	r2, err := trees.Build(ctx, casetree.BuildParams{RootName: "R2", DocTypes: []string{"id"}})
	require.NoError(t, err)

	inStatus, err := gw.CreateFile(ctx, "a.pdf", r1.StatusFolders.Pending.ID, "application/pdf", strings.NewReader("a"))
	require.NoError(t, err)
	inDoc, err := gw.CreateFile(ctx, "b.pdf", r1.DocFolders["01_submitted"][0].ID, "application/pdf", strings.NewReader("b"))
	require.NoError(t, err)
	elsewhere, err := gw.CreateFile(ctx, "c.pdf", r2.StatusFolders.Pending.ID, "application/pdf", strings.NewReader("c"))
	require.NoError(t, err)

	c := containment.New(gw)

	tests := []struct {
		name   string
		fileID string
		rootID string
		want   bool
	}{
		{"direct child of status folder", inStatus.ID, r1.Root.ID, true},
		{"inside doc folder", inDoc.ID, r1.Root.ID, true},
		{"status folder itself", r1.StatusFolders.Approved.ID, r1.Root.ID, true},
		{"other root", elsewhere.ID, r1.Root.ID, false},
		{"root itself", r1.Root.ID, r1.Root.ID, false},
		{"unrestricted", elsewhere.ID, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.IsUnder(ctx, tt.fileID, tt.rootID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsUnder_DepthBound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := drive.NewMemoryGateway()

	root, err := gw.CreateFolder(ctx, "root")
	require.NoError(t, err)
	parent := root.ID
	for i := range 12 {
		f, err := gw.CreateFolder(ctx, fmt.Sprintf("level-%d", i), parent)
		require.NoError(t, err)
		parent = f.ID
	}

	got, err := containment.New(gw).IsUnder(ctx, parent, root.ID)
	require.NoError(t, err)
	assert.False(t, got, "12 levels deep exceeds the default bound")

	got, err = containment.New(gw, containment.WithMaxDepth(12)).IsUnder(ctx, parent, root.ID)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsUnder_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	errUpstream := errors.New("boom")
	gw := drive.NewMemoryGateway(drive.WithMemoryFailure(func(op, arg string) error {
		if op == "Get" && arg == "flaky" {
			return errUpstream
		}
		return nil
	}))
	c := containment.New(gw)

	_, err := c.IsUnder(ctx, "missing", "R")
	assert.ErrorIs(t, err, drive.ErrNotFound)

	_, err = c.IsUnder(ctx, "flaky", "R")
	assert.ErrorIs(t, err, errUpstream)

	_, err = c.IsUnder(ctx, "", "R")
	assert.ErrorIs(t, err, drive.ErrMissingID)

	got, err := c.IsUnder(ctx, drive.MemoryRootID, "R")
	require.NoError(t, err)
	assert.False(t, got, "parentless node ends the walk")
}
