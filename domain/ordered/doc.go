// Package ordered provides the associative containers built on the
// rbtree engine: Map and Set reject duplicate keys, MultiMap and
// MultiSet keep them. Maps project the key out of an Entry, sets use
// the element itself.
//
// Like the engine, containers are single-writer.
package ordered
