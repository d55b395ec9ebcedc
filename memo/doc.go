// Package memo provides constrained memoization of pure functions.
//
// Ordinary memoization reuses a result only when the input is identical.
// Here an input is split in two parts:
//   - a key part, hashed into a 64-bit digest that addresses the cache,
//   - a constraint part, checked against the constraint the function returned
//     together with its cached output.
//
// A cached output is reused whenever the digest matches and the new input
// satisfies the stored constraint, even if the inputs differ. The memoized
// function itself describes, at computation time, which future inputs its
// result stays valid for.
//
// # Inputs
//
// Any type implementing Trackable can be memoized. Exact and Ignore are the
// two leaf policies: plain exact-value memoization, and a field that never
// affects the output. Tuple2Of, Tuple3Of and Tuple4Of compose fields; their
// constraints match only when every field matches.
//
// # Caches
//
// A Cache belongs to exactly one goroutine. It is never locked and must never
// be shared: give each worker its own cache (see package pool) or scope one to
// a context with WithCache.
//
// Entries age by one on every Evict call that did not see them hit, and are
// dropped once their age exceeds the configured maximum (DefaultMaxAge).
// Nothing evicts automatically.
//
// Example:
//
//	c := memo.NewCache()
//	area := memo.Memoized(c, memo.Exactly(3), func(side memo.Exact[int]) (int, memo.Unit) {
//	    return side.Value * side.Value, memo.Unit{}
//	})
//
// WARNING: memoized functions must be pure. Impure functions are not detected
// and return stale results on later hits.
package memo
