// Package snapshot provides point-in-time, read-only views of the
// key space. A view is a deep copy taken under the writer's lock, so
// readers never contend with writes.
package snapshot
