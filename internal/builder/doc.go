// Package builder computes merge plans.
//
// Given two JSON documents and an ordered key set, the builder parses both
// documents, indexes their records by composite key, pairs records across the
// documents, and records every field-level conflict in a plan.Plan. It never
// resolves conflicts; that happens at execution time.
//
// # Pairing
//
// Records are grouped by the structural value of their key fields, with a
// missing field counting as null. Within one key, the i-th left record pairs
// with the i-th right record in encounter order. Excess left records become
// left_only entries and excess right records become right_only entries,
// emitted directly after that key's matched entries.
//
// Entries follow the order in which keys first appear in the left document,
// followed by keys found only in the right document in right-document order.
//
// Building is a pure function of its arguments: no I/O, no shared state, and
// identical inputs always produce byte-identical plan text.
package builder
