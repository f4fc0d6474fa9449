// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "sort"

// trieNode is a single segment of the subscription trie.
type trieNode struct {
	children    map[string]*trieNode
	subscribers map[Handler]struct{}
}

func newTrieNode() *trieNode {
	return &trieNode{
		children:    map[string]*trieNode{},
		subscribers: map[Handler]struct{}{},
	}
}

func (n *trieNode) empty() bool {
	return len(n.children) == 0 && len(n.subscribers) == 0
}

// pathTrie maps segment sequences to handler sets. It holds no lock of its
// own; Router serialises access.
type pathTrie struct {
	root *trieNode
}

func newPathTrie() *pathTrie {
	return &pathTrie{root: newTrieNode()}
}

// insert adds h at path, creating intermediate nodes. It reports whether h
// was not already present.
func (t *pathTrie) insert(path Path, h Handler) bool {
	n := t.root
	for _, seg := range path {
		child, ok := n.children[seg]
		if !ok {
			child = newTrieNode()
			n.children[seg] = child
		}
		n = child
	}

	if _, ok := n.subscribers[h]; ok {
		return false
	}
	n.subscribers[h] = struct{}{}
	return true
}

// remove deletes h from path and prunes branches left without subscribers
// or descendants. It reports whether h was present.
func (t *pathTrie) remove(path Path, h Handler) bool {
	visited := make([]*trieNode, 0, len(path)+1)
	n := t.root
	visited = append(visited, n)
	for _, seg := range path {
		child, ok := n.children[seg]
		if !ok {
			return false
		}
		n = child
		visited = append(visited, n)
	}

	if _, ok := n.subscribers[h]; !ok {
		return false
	}
	delete(n.subscribers, h)

	for i := len(path) - 1; i >= 0; i-- {
		if !visited[i+1].empty() {
			break
		}
		delete(visited[i].children, path[i])
	}
	return true
}

// lookup returns the node at exactly path, or nil.
func (t *pathTrie) lookup(path Path) *trieNode {
	n := t.root
	for _, seg := range path {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// walk visits every node with at least one subscriber, depth first, with
// children in lexical segment order.
func (t *pathTrie) walk(fn func(path Path, n *trieNode)) {
	var visit func(prefix Path, n *trieNode)
	visit = func(prefix Path, n *trieNode) {
		if len(n.subscribers) > 0 {
			fn(prefix, n)
		}

		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			visit(prefix.Append(k), n.children[k])
		}
	}
	visit(Path{}, t.root)
}

// nodeCount returns the number of nodes including the root.
func (t *pathTrie) nodeCount() int {
	count := 0
	var visit func(n *trieNode)
	visit = func(n *trieNode) {
		count++
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
	return count
}
