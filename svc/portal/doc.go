// Package portal issues and verifies the signed tokens that grant access to a
// case outside the back office.
//
// Two flavors share one claim set. Portal tokens are signed with the portal
// secret, always carry the debtor role and are handed out as links:
//
//	issued, err := svc.IssuePortal(ctx, portal.PortalParams{
//		RootID:     rootID,
//		DebtorName: "Taro",
//		DocTypes:   []string{"id_front", "id_back"},
//	})
//	// issued.URL == cfg.BaseURL + "?token=" + issued.Token
//
// Access tokens are signed with the reviewer secret and name their role and
// capability scopes ("preview", "list"). A reviewer token without RootID is
// not bound to any case.
//
// Routes pick a gate explicitly. RequireDebtor admits only debtors and guards
// the portal routes. RequireRoleOrScope admits reviewers and debtors holding
// the scope, and guards the shared preview and list routes.
//
// Tokens cannot be revoked; expiry is the only way to invalidate one.
package portal
