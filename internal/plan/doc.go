// Package plan defines the merge plan: the only contract between the plan
// builder and the plan executor.
//
// A plan is plain data. It carries the key set, the resolution policy, and an
// ordered list of correspondence entries, each embedding full snapshots of
// the records it pairs. Executing a plan needs nothing but the plan text, so
// the two phases may run in different processes or at different times.
//
// # Text Format
//
// Plans are encoded as indented JSON with a fixed member order:
//
//	{
//	  "version": "1",
//	  "id": "<uuid derived from content>",
//	  "keys": ["id"],
//	  "policy": "right_wins",
//	  "entries": [
//	    {"type": "matched", "left": {...}, "right": {...}, "conflicts": ["v"]},
//	    {"type": "left_only", "left": {...}, "right": null, "conflicts": []}
//	  ]
//	}
//
// Decoding accepts any text of that shape. "version", "id" and "policy" are
// optional; when "id" is present it must match the content.
//
// # Validation
//
// Decode validates in three stages: JSON syntax, structural shape against an
// embedded CUE schema, then entry semantics (which sides each entry type
// carries, which fields a conflict may name). Every failure is reported as a
// MalformedPlan error.
package plan
