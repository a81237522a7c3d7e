package containment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/logger"
)

// DefaultMaxDepth is how many parent hops are followed before giving up.
const DefaultMaxDepth = 10

// MetadataGetter is the part of drive.Gateway the checker needs.
type MetadataGetter interface {
	Get(ctx context.Context, id string) (*drive.Item, error)
}

// Checker decides whether a file lives under a given root.
type Checker struct {
	gw       MetadataGetter
	maxDepth int
	log      *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithMaxDepth overrides the hop limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(c *Checker) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Checker reading metadata from gw.
func New(gw MetadataGetter, opts ...Option) *Checker {
	c := &Checker{
		gw:       gw,
		maxDepth: DefaultMaxDepth,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsUnder walks the first-parent chain of fileID and reports whether
// rootID is among the parents of any visited node. An empty rootID means
// no restriction and returns true without a lookup. Only the first parent
// of each node is followed.
//
// A file that does not exist is not under anything: drive.ErrNotFound on the
// starting node is returned so callers can answer 404; not-found further up
// ends the walk with false.
func (c *Checker) IsUnder(ctx context.Context, fileID, rootID string) (bool, error) {
	if rootID == "" {
		return true, nil
	}
	if fileID == "" {
		return false, drive.ErrMissingID
	}
	if fileID == rootID {
		return false, nil
	}

	id := fileID
	for hop := 0; hop < c.maxDepth; hop++ {
		item, err := c.gw.Get(ctx, id)
		if err != nil {
			if hop > 0 && errors.Is(err, drive.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		if item.HasParent(rootID) {
			return true, nil
		}
		if len(item.Parents) == 0 {
			return false, nil
		}
		id = item.Parents[0]
	}

	c.log.DebugContext(ctx, "containment depth exhausted",
		logger.Component("containment"),
		logger.FileID(fileID),
		logger.FolderID(rootID),
		slog.Int("max_depth", c.maxDepth),
	)
	return false, nil
}
