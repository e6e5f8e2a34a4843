// Package rope provides an immutable rope for document text.
//
// A rope is a balanced tree whose leaves hold short chunks of text and whose
// internal nodes cache a Summary of their subtree. Positions are character
// (code point) offsets; the byte layout of the chunks never leaks out.
//
// Key features:
//   - O(log n) edits, character access and line lookups
//   - Edits return a new Rope and share unchanged subtrees with the old one
//   - "\n", "\r\n" and a lone "\r" all end a line
//   - Safe for concurrent readers
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Replace(5, 5, ",")   // "hello, world"
//	r.LineCount()              // 1
package rope
