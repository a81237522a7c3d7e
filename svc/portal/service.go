package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/drivecase/pkg/jwt"
	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/scopes"
)

// Service issues and verifies the two token flavors. Portal tokens are
// signed with the portal secret and always carry the debtor role. Access
// tokens are signed with the reviewer secret and carry an explicit role and
// scope list.
//
// There is no revocation: a token stays valid until it expires.
type Service struct {
	portal   *jwt.Service
	reviewer *jwt.Service
	cfg      Config
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*options)

type options struct {
	clock func() time.Time
	log   *slog.Logger
}

// WithClock overrides the time source for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates the token service. Both secrets are required.
func New(cfg Config, opts ...Option) (*Service, error) {
	o := &options{clock: time.Now, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}

	portal, err := jwt.NewFromString(cfg.PortalSecret, jwt.WithClock(o.clock))
	if err != nil {
		return nil, errors.Join(ErrMissingSecret, err)
	}
	reviewer, err := jwt.NewFromString(cfg.ReviewerSecret, jwt.WithClock(o.clock))
	if err != nil {
		return nil, errors.Join(ErrMissingSecret, err)
	}

	if cfg.PortalTTL <= 0 {
		cfg.PortalTTL = 7 * 24 * time.Hour
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}

	return &Service{portal: portal, reviewer: reviewer, cfg: cfg, log: o.log}, nil
}

// PortalParams describes a debtor portal link.
type PortalParams struct {
	RootID     string
	DebtorName string
	DocTypes   []string
	TTL        time.Duration // zero uses the configured default
}

// AccessParams describes a reviewer or scoped debtor access token.
type AccessParams struct {
	Role       Role
	RootID     string
	DebtorName string
	DocTypes   []string
	Scope      []string
	TTL        time.Duration
}

// Issued is a signed token with its expiry.
type Issued struct {
	Token     string    `json:"token"`
	URL       string    `json:"url,omitempty"`
	ExpiresIn int64     `json:"expiresIn"` // seconds
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssuePortal signs a debtor token bound to one case root and returns it
// together with the portal link.
func (s *Service) IssuePortal(ctx context.Context, p PortalParams) (*Issued, error) {
	if p.RootID == "" {
		return nil, ErrMissingRootID
	}

	ttl := p.TTL
	if ttl <= 0 {
		ttl = s.cfg.PortalTTL
	}

	out, err := s.issue(s.portal, &Claims{
		RootID:     p.RootID,
		DebtorName: p.DebtorName,
		DocTypes:   p.DocTypes,
		Role:       RoleDebtor,
	}, ttl)
	if err != nil {
		return nil, err
	}
	out.URL = portalURL(s.cfg.BaseURL, out.Token)

	s.log.InfoContext(ctx, "portal link issued",
		logger.Component("portal"),
		logger.FolderID(p.RootID),
		slog.Int("doc_types", len(p.DocTypes)),
		slog.Time("expires_at", out.ExpiresAt),
	)
	return out, nil
}

// IssueAccess signs a token with the reviewer secret. Reviewers may omit
// RootID to get an unrestricted token; debtor tokens always carry one.
func (s *Service) IssueAccess(ctx context.Context, p AccessParams) (*Issued, error) {
	if !p.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if p.Role == RoleDebtor && p.RootID == "" {
		return nil, ErrMissingRootID
	}
	if err := scopes.Validate(p.Scope, []string{ScopePreview, ScopeList}); err != nil {
		return nil, err
	}

	ttl := p.TTL
	if ttl <= 0 {
		ttl = s.cfg.AccessTTL
	}

	out, err := s.issue(s.reviewer, &Claims{
		RootID:     p.RootID,
		DebtorName: p.DebtorName,
		DocTypes:   p.DocTypes,
		Role:       p.Role,
		Scope:      scopes.Normalize(p.Scope),
	}, ttl)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "access token issued",
		logger.Component("portal"),
		logger.Role(string(p.Role)),
		logger.FolderID(p.RootID),
		slog.String("scope", scopes.Join(p.Scope)),
	)
	return out, nil
}

func (s *Service) issue(signer *jwt.Service, c *Claims, ttl time.Duration) (*Issued, error) {
	now := signer.Now()
	exp := now.Add(ttl)

	c.ID = uuid.NewString()
	c.Issuer = s.cfg.Issuer
	c.Subject = c.RootID
	c.IssuedAt = now.Unix()
	c.ExpiresAt = exp.Unix()

	token, err := signer.Generate(c)
	if err != nil {
		return nil, err
	}
	return &Issued{
		Token:     token,
		ExpiresIn: int64(ttl / time.Second),
		ExpiresAt: time.Unix(c.ExpiresAt, 0).UTC(),
	}, nil
}

// VerifyPortal checks a portal token. Any signature, format or expiry failure
// is ErrUnauthorized.
func (s *Service) VerifyPortal(token string) (*Claims, error) {
	return verify(s.portal, token)
}

// VerifyAccess checks an access token signed with the reviewer secret.
func (s *Service) VerifyAccess(token string) (*Claims, error) {
	return verify(s.reviewer, token)
}

func verify(signer *jwt.Service, token string) (*Claims, error) {
	var c Claims
	if err := signer.Parse(token, &c); err != nil {
		return nil, errors.Join(ErrUnauthorized, err)
	}
	if !c.Role.Valid() {
		return nil, errors.Join(ErrUnauthorized, ErrInvalidRole)
	}
	return &c, nil
}

func portalURL(base, token string) string {
	if base == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + url.Values{"token": {token}}.Encode()
}
