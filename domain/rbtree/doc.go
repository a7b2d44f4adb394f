// Package rbtree implements the ordered storage engine under the
// ordered containers: a red-black tree whose nodes live in an index
// arena and whose header node doubles as the End position.
//
// The header's parent link is the root, its left link the minimum and
// its right link the maximum, so Begin, Last and End are O(1) and a
// cursor walks the tree through parent and child links alone.
//
// Trees are single-writer and do no locking.
package rbtree
