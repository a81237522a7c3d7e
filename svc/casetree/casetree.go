package casetree

import (
	"log/slog"

	"github.com/dmitrymomot/drivecase/pkg/drive"
)

// Status is the review role of a status folder.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists the roles in the order their folders are created.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// ManifestName is the placeholder file written at a case root.
const ManifestName = "manifest.csv"

// ManifestHeader is the only row of a fresh manifest.
var ManifestHeader = []string{"file_name", "doc_type", "status", "uploaded_at"}

// Labels are the folder names used for each status role.
// Resolution is keyed by these names, so renaming a folder in Drive
// detaches it from its role.
type Labels struct {
	Pending  string `env:"STATUS_LABEL_PENDING" envDefault:"01_submitted"`
	Approved string `env:"STATUS_LABEL_APPROVED" envDefault:"02_approved"`
	Rejected string `env:"STATUS_LABEL_REJECTED" envDefault:"03_rejected"`
}

// DefaultLabels returns the stock status folder names.
func DefaultLabels() Labels {
	return Labels{
		Pending:  "01_submitted",
		Approved: "02_approved",
		Rejected: "03_rejected",
	}
}

// For returns the folder name of a status role.
func (l Labels) For(s Status) string {
	switch s {
	case StatusPending:
		return l.Pending
	case StatusApproved:
		return l.Approved
	case StatusRejected:
		return l.Rejected
	}
	return ""
}

// Role maps a folder name back to its status role.
func (l Labels) Role(name string) (Status, bool) {
	for _, s := range Statuses {
		if l.For(s) == name {
			return s, true
		}
	}
	return "", false
}

// Folder is the reduced view of a Drive folder returned to clients.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ViewLink string `json:"viewLink,omitempty"`
}

func folderOf(it *drive.Item) Folder {
	return Folder{ID: it.ID, Name: it.Name, ViewLink: it.WebViewLink}
}

// StatusFolders holds one folder per status role.
type StatusFolders struct {
	Pending  Folder `json:"pending"`
	Approved Folder `json:"approved"`
	Rejected Folder `json:"rejected"`
}

// Get returns the folder of a status role.
func (sf StatusFolders) Get(s Status) Folder {
	switch s {
	case StatusApproved:
		return sf.Approved
	case StatusRejected:
		return sf.Rejected
	default:
		return sf.Pending
	}
}

func (sf *StatusFolders) set(s Status, f Folder) {
	switch s {
	case StatusPending:
		sf.Pending = f
	case StatusApproved:
		sf.Approved = f
	case StatusRejected:
		sf.Rejected = f
	}
}

// Tree is a freshly built case folder hierarchy. DocFolders is keyed by the
// status folder name and keeps the requested docType order.
type Tree struct {
	Root          Folder              `json:"root"`
	StatusFolders StatusFolders       `json:"statusFolders"`
	DocFolders    map[string][]Folder `json:"docFolders"`
	Manifest      *Folder             `json:"manifest,omitempty"`
}

// IDs returns every folder id of the tree, root first.
func (t *Tree) IDs() []string {
	ids := []string{t.Root.ID}
	for _, s := range Statuses {
		sf := t.StatusFolders.Get(s)
		ids = append(ids, sf.ID)
		for _, f := range t.DocFolders[sf.Name] {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Service builds and resolves case folder trees on a storage gateway.
type Service struct {
	gw     drive.Gateway
	labels Labels
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLabels overrides the status folder names. Empty labels keep the default.
func WithLabels(l Labels) Option {
	return func(s *Service) {
		def := DefaultLabels()
		if l.Pending == "" {
			l.Pending = def.Pending
		}
		if l.Approved == "" {
			l.Approved = def.Approved
		}
		if l.Rejected == "" {
			l.Rejected = def.Rejected
		}
		s.labels = l
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a case tree service over gw.
func New(gw drive.Gateway, opts ...Option) *Service {
	s := &Service{
		gw:     gw,
		labels: DefaultLabels(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Labels returns the status folder names in use.
func (s *Service) Labels() Labels {
	return s.labels
}
