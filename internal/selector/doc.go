// Package selector picks a small set of sentences that covers a target
// vocabulary, greedily and deterministically.
//
// Each iteration scores every unselected candidate against the current
// coverage counts: a target word still below its threshold contributes
// 10 + 5·rarity, a satisfied one contributes 1. The highest score wins, ties
// go to the lowest sentence id, and counts are updated before the next pass.
// Scoring may fan out across goroutines; the reduction applies the same
// tie-break so parallel and sequential runs select identical sequences.
//
// Stopping early (limit reached, nothing left to gain, budget spent, context
// cancelled) is a normal outcome described by Status, never an error.
package selector
