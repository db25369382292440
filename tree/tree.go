// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tree implements an unbalanced binary search tree keyed by a string
// identifier. Records with smaller keys live in the left subtree, records with
// greater or equal keys in the right subtree. No rebalancing is performed, so
// sorted input degrades the tree into a chain.
package tree

import (
	"errors"
)

// ErrDuplicateKey is returned by Insert when the key is already present and the
// tree rejects duplicates.
var ErrDuplicateKey = errors.New("duplicate key")

// Keyed is implemented by every record stored in a Tree.
type Keyed interface {
	Key() string
}

// DuplicatePolicy decides what Insert does with a key that is already stored.
type DuplicatePolicy int

const (
	// RejectDuplicates leaves the tree unchanged and reports ErrDuplicateKey.
	RejectDuplicates DuplicatePolicy = iota
	// AllowDuplicates routes the equal key into the right subtree, so it is
	// listed after the original by an in-order traversal.
	AllowDuplicates
	// ReplaceDuplicates overwrites the stored record in place.
	ReplaceDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case AllowDuplicates:
		return "allow"
	case ReplaceDuplicates:
		return "replace"
	}
	return "unknown"
}

// ParseDuplicatePolicy maps "reject", "allow" or "replace" to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "reject":
		return RejectDuplicates, nil
	case "allow":
		return AllowDuplicates, nil
	case "replace":
		return ReplaceDuplicates, nil
	}
	return RejectDuplicates, errors.New("unknown duplicate policy: " + s)
}

type node[R Keyed] struct {
	record R
	left   *node[R]
	right  *node[R]
}

// Tree owns zero or one root node. The zero value is not usable, use New.
type Tree[R Keyed] struct {
	root       *node[R]
	size       int
	duplicates DuplicatePolicy
}

// Option configures a Tree at construction time.
type Option func(*options)

type options struct {
	duplicates DuplicatePolicy
}

// WithDuplicates sets the policy applied when an inserted key is already stored.
func WithDuplicates(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

func New[R Keyed](opts ...Option) *Tree[R] {
	o := options{duplicates: RejectDuplicates}
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[R]{duplicates: o.duplicates}
}

// Policy reports the duplicate policy the tree was built with.
func (t *Tree[R]) Policy() DuplicatePolicy {
	return t.duplicates
}

func (t *Tree[R]) IsEmpty() bool {
	return t.root == nil
}

// Len returns the number of stored records.
func (t *Tree[R]) Len() int {
	return t.size
}

// Insert stores r. Under RejectDuplicates an existing key yields
// ErrDuplicateKey and the tree is left untouched.
func (t *Tree[R]) Insert(r R) error {
	if t.root == nil {
		t.root = &node[R]{record: r}
		t.size++
		return nil
	}

	key := r.Key()
	current := t.root
	for {
		switch {
		case key < current.record.Key():
			if current.left == nil {
				current.left = &node[R]{record: r}
				t.size++
				return nil
			}
			current = current.left
		case key > current.record.Key():
			if current.right == nil {
				current.right = &node[R]{record: r}
				t.size++
				return nil
			}
			current = current.right
		default:
			switch t.duplicates {
			case ReplaceDuplicates:
				current.record = r
				return nil
			case AllowDuplicates:
				if current.right == nil {
					current.right = &node[R]{record: r}
					t.size++
					return nil
				}
				current = current.right
			default:
				return ErrDuplicateKey
			}
		}
	}
}

// Search returns the record stored under key. The boolean is false when the
// key is absent; the returned record is then the zero value and must not be used.
func (t *Tree[R]) Search(key string) (R, bool) {
	current := t.root
	for current != nil {
		k := current.record.Key()
		if key == k {
			return current.record, true
		}
		if key < k {
			current = current.left
		} else {
			current = current.right
		}
	}
	var zero R
	return zero, false
}

// Remove deletes the first node found under key and reports whether one was
// removed. A node with two children takes over its in-order successor's
// record, and the successor's original node is removed instead.
func (t *Tree[R]) Remove(key string) bool {
	var removed bool
	t.root = t.removeNode(t.root, key, &removed)
	if removed {
		t.size--
	}
	return removed
}

func (t *Tree[R]) removeNode(n *node[R], key string, removed *bool) *node[R] {
	if n == nil {
		return nil // Key not found
	}

	k := n.record.Key()
	if key < k {
		n.left = t.removeNode(n.left, key, removed)
		return n
	}
	if key > k {
		n.right = t.removeNode(n.right, key, removed)
		return n
	}

	// Case 1: No children
	if n.left == nil && n.right == nil {
		*removed = true
		return nil
	}
	// Case 2: One child (right)
	if n.left == nil {
		*removed = true
		return n.right
	}
	// Case 3: One child (left)
	if n.right == nil {
		*removed = true
		return n.left
	}
	// Case 4: Two children. The successor has no left child, so removing it
	// below always lands in case 1 or 2.
	successor := findMin(n.right)
	n.record = successor.record
	n.right = t.removeNode(n.right, successor.record.Key(), removed)
	return n
}

func findMin[R Keyed](n *node[R]) *node[R] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func findMax[R Keyed](n *node[R]) *node[R] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Min returns the record with the smallest key.
func (t *Tree[R]) Min() (R, bool) {
	if t.root == nil {
		var zero R
		return zero, false
	}
	return findMin(t.root).record, true
}

// Max returns the record with the greatest key. With duplicates allowed it is
// the last inserted copy of that key.
func (t *Tree[R]) Max() (R, bool) {
	if t.root == nil {
		var zero R
		return zero, false
	}
	return findMax(t.root).record, true
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree[R]) Height() int {
	return height(t.root)
}

func height[R Keyed](n *node[R]) int {
	if n == nil {
		return 0
	}
	return max(height(n.left), height(n.right)) + 1
}

// Clear tears the tree down in post-order, unlinking children before the
// parent that holds them.
func (t *Tree[R]) Clear() {
	detach(t.root)
	t.root = nil
	t.size = 0
}

func detach[R Keyed](n *node[R]) {
	if n == nil {
		return
	}
	detach(n.left)
	detach(n.right)
	n.left, n.right = nil, nil
}
