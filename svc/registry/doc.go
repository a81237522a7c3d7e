// Package registry tracks debtor cases, their documents and the public share
// link of each case.
//
// Every case gets exactly one link, created in the same transaction. The link
// carries a random 21 character URL safe id; anyone holding it can read the
// case through PublicCase until the link is deactivated:
//
//	svc := registry.New(registry.NewPostgresStore(pool), cfg.Registry)
//	created, err := svc.CreateCase(ctx, "Taro")
//	// created.ShareURL == cfg.PublicBaseURL + "/" + created.PublicID
//
// PostgresStore expects the schema from db/migrations. MemoryStore has the
// same semantics, including the cascade on DeleteCase, and needs no database.
package registry
