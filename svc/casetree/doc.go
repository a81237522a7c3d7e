// Package casetree provisions and recovers the Drive folder hierarchy of a
// case.
//
// A case tree is a root folder with one child per status role (pending,
// approved, rejected) and, under each of them, one folder per document type:
//
//	Case-123/
//	  01_submitted/{id_front, id_back}
//	  02_approved/{id_front, id_back}
//	  03_rejected/{id_front, id_back}
//
// Build creates the tree; Resolve recovers it later by listing children,
// keyed by folder name. Status roles are tied to folder names through Labels,
// so a folder renamed in Drive no longer resolves to its role.
//
// Build is not transactional. A failure after the root exists returns a
// *PartialTreeError with the created ids so the caller can pass them to
// Discard:
//
//	tree, err := svc.Build(ctx, casetree.BuildParams{RootName: "Acme", DocTypes: types})
//	var partial *casetree.PartialTreeError
//	if errors.As(err, &partial) {
//		_ = svc.Discard(ctx, partial.Created...)
//	}
package casetree
