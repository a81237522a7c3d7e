// Package portal mounts the debtor portal under /portal.
//
// Every route requires a debtor token, sent as "Authorization: Bearer
// <token>" or as ?token=, and is limited to the case root and document types
// the token was issued for. Links are issued by the back-office route
// POST /issue-portal-link.
package portal
