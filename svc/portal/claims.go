package portal

import (
	"slices"

	"github.com/dmitrymomot/drivecase/pkg/jwt"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// Role identifies who a token was issued to.
type Role string

const (
	RoleDebtor   Role = "debtor"
	RoleReviewer Role = "reviewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleDebtor || r == RoleReviewer
}

// Capability scopes a debtor access token may carry.
const (
	ScopePreview = "preview"
	ScopeList    = "list"
)

// Claims is the payload of portal and access tokens. RootID empty means the
// bearer is not bound to one case.
type Claims struct {
	jwt.StandardClaims
	RootID     string   `json:"rootId,omitempty"`
	DebtorName string   `json:"debtorName,omitempty"`
	DocTypes   []string `json:"docTypes,omitempty"`
	Role       Role     `json:"role"`
	Scope      []string `json:"scope,omitempty"`
}

// AllowsDocType reports whether docType is in the token's list, comparing
// sanitized names the way folders are created.
func (c *Claims) AllowsDocType(docType string) bool {
	name := sanitizer.FolderName(docType)
	if name == "" {
		return false
	}
	return slices.ContainsFunc(c.DocTypes, func(dt string) bool {
		return sanitizer.FolderName(dt) == name
	})
}
