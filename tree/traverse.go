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

package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Order selects the visiting order of a traversal.
type Order int

const (
	InOrder   Order = iota // left, node, right: ascending keys
	PreOrder               // node, left, right: root first
	PostOrder              // left, right, node: leaves first
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "in"
	case PreOrder:
		return "pre"
	case PostOrder:
		return "post"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder accepts "in", "pre" or "post", with or without an "order" suffix.
func ParseOrder(s string) (Order, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order")
	s = strings.TrimSuffix(s, "-")
	switch s {
	case "", "in":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	}
	return InOrder, fmt.Errorf("unknown traversal order %q", s)
}

// All returns a lazy sequence over every stored record in the given order.
// The sequence can be ranged over any number of times; the tree must not be
// mutated while a range loop over it is running.
func (t *Tree[R]) All(order Order) iter.Seq[R] {
	return func(yield func(R) bool) {
		switch order {
		case PreOrder:
			t.root.preOrder(yield)
		case PostOrder:
			t.root.postOrder(yield)
		default:
			t.root.inOrder(yield)
		}
	}
}

// InOrder yields records in ascending key order.
func (t *Tree[R]) InOrder() iter.Seq[R] { return t.All(InOrder) }

// PreOrder yields each record before the records of its subtrees.
func (t *Tree[R]) PreOrder() iter.Seq[R] { return t.All(PreOrder) }

// PostOrder yields each record after the records of its subtrees.
func (t *Tree[R]) PostOrder() iter.Seq[R] { return t.All(PostOrder) }

// Each walk reports false once yield asked to stop.

func (n *node[R]) inOrder(yield func(R) bool) bool {
	if n == nil {
		return true
	}
	return n.left.inOrder(yield) && yield(n.record) && n.right.inOrder(yield)
}

func (n *node[R]) preOrder(yield func(R) bool) bool {
	if n == nil {
		return true
	}
	return yield(n.record) && n.left.preOrder(yield) && n.right.preOrder(yield)
}

func (n *node[R]) postOrder(yield func(R) bool) bool {
	if n == nil {
		return true
	}
	return n.left.postOrder(yield) && n.right.postOrder(yield) && yield(n.record)
}
