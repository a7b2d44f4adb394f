// Package memory provides the node storage used by the ordered tree
// engine. Arena hands out fixed-type slots addressed by int32 index,
// recycles released slots, and can be capped so that callers observe
// allocation failure instead of unbounded growth.
//
// The package is single-writer: an Arena must be guarded by its owner
// when shared.
package memory
