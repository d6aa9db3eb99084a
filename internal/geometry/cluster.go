// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package geometry implements the fuzzy interval clustering that turns a
// flat stream of positioned tokens into rows, phrases, and columns.
//
// The clustering contract is grounded on the original implementation's
// IntervalTree-based fuzzy_groupby (original_source/.../etl/utils/pdf.py):
// for each token t, build an interval [t.key-lowerTol, t.key+upperTol]
// around its axis value; two tokens belong to the same group iff their
// intervals overlap. This package reimplements that behavior with a
// sorted-slice union-find instead of an interval tree, since Go's
// standard library has no interval tree and the token counts per page
// (tens to low hundreds) make the O(n log n) sort-and-merge approach
// plenty fast without pulling in a third-party interval tree package.
package geometry

import (
	"sort"
	"strconv"

	"github.com/phlfinance/ledger-etl/internal/token"
)

// Axis selects which coordinate of a token drives clustering.
type Axis int

const (
	AxisTop Axis = iota
	AxisBottom
	AxisX1
)

func axisValue(t token.Token, axis Axis) float64 {
	switch axis {
	case AxisTop:
		return t.Top
	case AxisBottom:
		return t.Bottom
	case AxisX1:
		return t.X1
	default:
		return t.Top
	}
}

// Group is a transient grouping of tokens sharing one spatial axis.
// Groups carry no identity; they are reassigned freely between passes.
type Group struct {
	// Pivot is the representative axis value used for stable group
	// ordering (the axis value of the group's first token in sortKey
	// order).
	Pivot float64
	Tokens []token.Token
}

// FuzzyGroup clusters tokens whose axis-value lies within an interval
// [k-lowerTol, k+upperTol] of one another, transitively: token a and c
// land in the same group if a overlaps b and b overlaps c, even if a and
// c don't directly overlap. This mirrors the interval-tree union
// semantics of the original implementation, where membership in tree[y]
// pulls in everything whose stored interval covers y.
//
// Groups are emitted in ascending pivot order; within a group tokens are
// sorted by the orthogonal key (the caller-supplied sortKey). Identical
// token sets are de-duplicated, matching "the same group contents must
// never appear twice."
func FuzzyGroup(tokens []token.Token, axis Axis, lowerTol, upperTol float64, sortKey func(token.Token) float64) []Group {
	if len(tokens) == 0 {
		return nil
	}

	type indexed struct {
		tok token.Token
		key float64
		idx int
	}

	items := make([]indexed, len(tokens))
	for i, t := range tokens {
		items[i] = indexed{tok: t, key: axisValue(t, axis), idx: i}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })

	// Union-find over the sorted sequence: merge adjacent items whose
	// intervals [key-lowerTol, key+upperTol] overlap. Because the items
	// are sorted, overlap is transitive along the sequence: if item i
	// and i+1 overlap, they're in the same cluster; clusters are
	// contiguous runs in sorted order.
	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 1; i < len(items); i++ {
		prevHigh := items[i-1].key + upperTol
		curLow := items[i].key - lowerTol
		if curLow <= prevHigh {
			union(i-1, i)
		}
	}

	clusters := make(map[int][]indexed)
	order := make([]int, 0)
	for i := range items {
		root := find(i)
		if _, ok := clusters[root]; !ok {
			order = append(order, root)
		}
		clusters[root] = append(clusters[root], items[i])
	}

	sort.Ints(order)

	groups := make([]Group, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, root := range order {
		members := clusters[root]
		sort.Slice(members, func(i, j int) bool {
			return sortKey(members[i].tok) < sortKey(members[j].tok)
		})

		toks := make([]token.Token, len(members))
		for i, m := range members {
			toks[i] = m.tok
		}

		sig := signature(toks)
		if seen[sig] {
			continue
		}
		seen[sig] = true

		groups = append(groups, Group{Pivot: members[0].key, Tokens: toks})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Pivot < groups[j].Pivot })

	return groups
}

// signature produces a de-duplication key for a token set: the same
// group contents must never appear twice. Each token contributes its
// text and all four coordinates.
func signature(toks []token.Token) string {
	var b []byte
	for _, t := range toks {
		b = append(b, []byte(t.Text)...)
		b = append(b, 0)
		for _, v := range []float64{t.X0, t.X1, t.Top, t.Bottom} {
			b = strconv.AppendFloat(b, v, 'g', -1, 64)
			b = append(b, 0)
		}
	}
	return string(b)
}
