// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package deflist

import (
	"slices"

	"github.com/petar-djukic/go-deflist/internal/ordering"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

type namespaceGroup struct {
	ns    *types.Namespace
	types []*types.NamedType
}

// namespaceGroups is a set of namespaces keyed by the comparer, so that
// equally named namespaces from different assemblies collapse into one
// group. Iteration follows insertion order.
type namespaceGroups struct {
	cmp     *ordering.Comparer
	buckets map[uint64][]*namespaceGroup
	order   []*namespaceGroup
}

func newNamespaceGroups(cmp *ordering.Comparer) *namespaceGroups {
	return &namespaceGroups{cmp: cmp, buckets: make(map[uint64][]*namespaceGroup)}
}

func (s *namespaceGroups) get(ns *types.Namespace) *namespaceGroup {
	for _, g := range s.buckets[s.cmp.Hash(ns)] {
		if s.cmp.Equal(g.ns, ns) {
			return g
		}
	}
	return nil
}

// add returns the group of ns, creating it if needed.
func (s *namespaceGroups) add(ns *types.Namespace) *namespaceGroup {
	if g := s.get(ns); g != nil {
		return g
	}
	g := &namespaceGroup{ns: ns}
	h := s.cmp.Hash(ns)
	s.buckets[h] = append(s.buckets[h], g)
	s.order = append(s.order, g)
	return g
}

func (s *namespaceGroups) remove(ns *types.Namespace) {
	g := s.get(ns)
	if g == nil {
		return
	}
	h := s.cmp.Hash(ns)
	s.buckets[h] = slices.DeleteFunc(s.buckets[h], func(x *namespaceGroup) bool { return x == g })
	s.order = slices.DeleteFunc(s.order, func(x *namespaceGroup) bool { return x == g })
}

func (s *namespaceGroups) all() []*namespaceGroup {
	return slices.Clone(s.order)
}

// sorted returns the groups in namespace order.
func (s *namespaceGroups) sorted() []*namespaceGroup {
	out := s.all()
	slices.SortStableFunc(out, func(a, b *namespaceGroup) int { return s.cmp.Compare(a.ns, b.ns) })
	return out
}
