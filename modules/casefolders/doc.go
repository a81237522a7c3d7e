// Package casefolders mounts the back-office routes over case folder trees:
// tree creation, resolution and discard, uploads, moves, listings and
// comments, portal link and access token issuance, plus the token gated
// preview stream and listing.
//
//	r.Mount("/", casefolders.New(cfg, tree, files, tokens, checker,
//		casefolders.WithLogger(log),
//	).Handle())
package casefolders
