// Package async provides small generic helpers for running work in
// goroutines and collecting the results.
//
// Async starts a computation and returns a Future. WaitAll collects many
// futures in argument order and returns at the first failure, or when the
// caller's context ends, without cancelling the rest. Map combines the two for fan-out over a slice:
//
//	folders, err := async.Map(ctx, docTypes, func(ctx context.Context, name string) (*drive.Item, error) {
//		return gw.CreateFolder(ctx, name, parentID)
//	})
package async
