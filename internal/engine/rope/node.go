package rope

import (
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// maxChildren is the fan-out of internal nodes.
const maxChildren = 8

// node is a node of the rope tree. Leaves (height 0) hold one chunk of
// text; internal nodes hold children that are all one level lower.
// Nodes are never modified once built.
type node struct {
	height   uint8
	sum      Summary
	text     string
	children []*node
}

// leafOf returns a leaf holding s, or nil for an empty s.
func leafOf(s string) *node {
	if s == "" {
		return nil
	}
	return &node{text: s, sum: Summarize(s)}
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.sum = n.sum.Add(c.sum)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

// group wraps siblings back into a node. One sibling is returned as is.
func group(siblings []*node) *node {
	switch len(siblings) {
	case 0:
		return nil
	case 1:
		return siblings[0]
	}
	return newInternal(slices.Clone(siblings))
}

// balanced builds a node from same-height children, adding a level when
// there are too many for one node.
func balanced(children []*node) *node {
	if len(children) <= maxChildren {
		return newInternal(children)
	}
	mid := len(children) / 2
	return newInternal([]*node{
		newInternal(children[:mid:mid]),
		newInternal(children[mid:]),
	})
}

// join concatenates two trees. The result is as tall as the taller input
// or one level taller, and all its leaves stay at the same depth.
func join(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	switch {
	case a.height == b.height:
		if a.isLeaf() {
			if len(a.text)+len(b.text) <= MaxChunkSize {
				return leafOf(a.text + b.text)
			}
			return newInternal([]*node{a, b})
		}
		children := make([]*node, 0, len(a.children)+len(b.children))
		children = append(children, a.children...)
		return balanced(append(children, b.children...))

	case a.height > b.height:
		last := len(a.children) - 1
		r := join(a.children[last], b)
		children := make([]*node, 0, last+2)
		children = append(children, a.children[:last]...)
		if r.height < a.height {
			children = append(children, r)
		} else {
			children = append(children, r.children...)
		}
		return balanced(children)

	default:
		r := join(a, b.children[0])
		children := make([]*node, 0, len(b.children)+1)
		if r.height < b.height {
			children = append(children, r)
		} else {
			children = append(children, r.children...)
		}
		return balanced(append(children, b.children[1:]...))
	}
}

// split cuts n at character offset off into [0, off) and [off, end).
func split(n *node, off int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if off <= 0 {
		return nil, n
	}
	if off >= n.sum.Chars {
		return n, nil
	}

	if n.isLeaf() {
		at := n.byteOffset(off)
		return leafOf(n.text[:at]), leafOf(n.text[at:])
	}

	base := 0
	for i, c := range n.children {
		if off < base+c.sum.Chars {
			l, r := split(c, off-base)
			return join(group(n.children[:i]), l), join(r, group(n.children[i+1:]))
		}
		base += c.sum.Chars
	}
	return n, nil
}

// byteOffset converts a character offset within a leaf to a byte offset.
func (n *node) byteOffset(chars int) int {
	if chars <= 0 {
		return 0
	}
	if chars >= n.sum.Chars {
		return len(n.text)
	}
	if n.sum.Flags&FlagASCII != 0 {
		return chars
	}
	count := 0
	for i := range n.text {
		if count == chars {
			return i
		}
		count++
	}
	return len(n.text)
}

// runeAt returns the character at off, which must be in range.
func (n *node) runeAt(off int) rune {
	for !n.isLeaf() {
		for _, c := range n.children {
			if off < c.sum.Chars {
				n = c
				break
			}
			off -= c.sum.Chars
		}
	}
	r, _ := utf8.DecodeRuneInString(n.text[n.byteOffset(off):])
	return r
}

// appendRange writes the characters in [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if n.isLeaf() {
		sb.WriteString(n.text[n.byteOffset(start):n.byteOffset(end)])
		return
	}

	base := 0
	for _, c := range n.children {
		next := base + c.sum.Chars
		if next > start {
			c.appendRange(sb, max(start-base, 0), min(end-base, c.sum.Chars))
		}
		if next >= end {
			return
		}
		base = next
	}
}

// prefix returns the summary of the first off characters.
func (n *node) prefix(off int) Summary {
	if off >= n.sum.Chars {
		return n.sum
	}
	if n.isLeaf() {
		return Summarize(n.text[:n.byteOffset(off)])
	}

	var acc Summary
	for _, c := range n.children {
		if off < c.sum.Chars {
			return acc.Add(c.prefix(off))
		}
		acc = acc.Add(c.sum)
		off -= c.sum.Chars
	}
	return acc
}

// breakAfter returns the offset just past the target-th line terminator
// (1-based). afterCR tells whether the text before n ends with '\r'.
func (n *node) breakAfter(target int, afterCR bool) int {
	if n.isLeaf() {
		prev := rune(-1)
		if afterCR {
			prev = '\r'
		}
		k := 0
		for _, r := range n.text {
			k++
			if r == '\r' || (r == '\n' && prev != '\r') {
				if target--; target == 0 {
					return k
				}
			}
			prev = r
		}
		return k
	}

	base := 0
	for _, c := range n.children {
		lines := c.sum.Lines
		if afterCR && c.sum.Flags&FlagStartsLF != 0 {
			lines--
		}
		if target <= lines {
			return base + c.breakAfter(target, afterCR)
		}
		target -= lines
		base += c.sum.Chars
		afterCR = c.sum.Flags&FlagEndsCR != 0
	}
	return base
}

func (n *node) writeTo(w io.Writer) (int64, error) {
	if n.isLeaf() {
		written, err := io.WriteString(w, n.text)
		return int64(written), err
	}
	var total int64
	for _, c := range n.children {
		written, err := c.writeTo(w)
		total += written
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
