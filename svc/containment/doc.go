// Package containment checks that a Drive file sits inside a case tree by
// walking its parent chain a bounded number of hops.
package containment
