// Package ir provides the JSON value representation used by tagmerge.
//
// This package contains value types and their codecs only. All other internal
// packages import ir; ir imports nothing internal. This keeps the value model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Value is a sealed tagged union: Null, Bool, Number, String, Array, *Object
//   - Objects are ordered mappings; member order is document order
//   - Numbers keep their literal text and compare by exact rational value,
//     never through float64
//   - Canonical encoding (RFC 8785 key order, normalized numbers) is used for
//     composite-key fingerprints only, never for user-visible output
package ir
