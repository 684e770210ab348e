// Package eval executes parsed query trees against a point store.
//
// # Evaluation Model
//
// Every node of a query tree evaluates to a ResultSet: a set of point ids
// (a roaring bitmap) paired with the full point records keyed by those ids.
// Leaves fetch from the store; combinators run set algebra on their
// operands' results:
//
//   - Crop: builds a declarative filter from the crop fields and asks the
//     store for every matching point. All filtering happens in the store
//     (one query), never row-by-row in memory. A region that cannot hold
//     any point skips the store call entirely.
//   - And: intersects the operands' id sets, then re-fetches the surviving
//     ids in one batched lookup so the combined result carries records
//     straight from the store.
//   - Or: unions the operands' id sets. A given id always maps to the same
//     record, so the union merges the operands' points without another
//     round trip.
//
// Zero-operand combinators evaluate to the empty set; a single operand
// passes through unchanged.
//
// # Concurrency
//
// Sibling operands may evaluate concurrently (WithParallelism). Results
// land in an indexed slice so combination order never depends on
// scheduling, and the first operand failure cancels the rest. The default
// degree is 1: strictly sequential, depth-first.
//
// # Correlation
//
// Each Evaluate call mints a query token and binds it into its log
// records, so the log lines of one evaluation can be pulled out of
// interleaved output. Tokens come from a TokenGenerator; production uses
// time-sortable UUIDv7, tests inject fixed sequences.
package eval
