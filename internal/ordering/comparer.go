// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ordering provides the deterministic total order used to list
// namespaces, types and members.
package ordering

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Policy selects how far the comparer looks past declaration kinds.
type Policy int

const (
	// ByKind orders by declaration kind only. Ties keep input order when
	// used with a stable sort.
	ByKind Policy = iota
	// ByKindThenName breaks kind ties by accessibility, static before
	// instance, ordinal name, generic arity and parameter list.
	ByKindThenName
)

func (p Policy) String() string {
	if p == ByKind {
		return "kind"
	}
	return "kind-then-name"
}

// ErrInvalidPolicy is returned by ParsePolicy for an unknown policy name.
var ErrInvalidPolicy = errors.New("invalid sort policy")

// ParsePolicy parses "kind" or "kind-then-name".
func ParsePolicy(s string) (Policy, error) {
	for p := ByKind; p <= ByKindThenName; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// Config configures a Comparer.
type Config struct {
	Policy                    Policy
	PlaceSystemNamespaceFirst bool
	SystemNamespace           string // Root namespace listed first when PlaceSystemNamespaceFirst is set
}

// ConfigFor returns the comparer configuration implied by opts.
func ConfigFor(policy Policy, opts *options.Options) Config {
	return Config{
		Policy:                    policy,
		PlaceSystemNamespaceFirst: opts.PlaceSystemNamespaceFirst(),
		SystemNamespace:           opts.SystemNamespace(),
	}
}

// Comparer orders symbols: namespaces before types before members.
// Compare, Equal and Hash are derived from one sort key, so Equal(a, b) holds
// exactly when Compare(a, b) == 0, and equal symbols hash alike.
type Comparer struct {
	cfg Config
}

// New returns a comparer for cfg.
func New(cfg Config) *Comparer {
	if cfg.SystemNamespace == "" {
		cfg.SystemNamespace = options.DefaultSystemNamespace
	}
	return &Comparer{cfg: cfg}
}

// Policy returns the comparer policy.
func (c *Comparer) Policy() Policy { return c.cfg.Policy }

// Compare returns -1, 0 or +1.
func (c *Comparer) Compare(a, b types.Symbol) int {
	if a == b {
		return 0
	}
	return compareKeys(c.key(a), c.key(b))
}

// Equal reports whether a and b occupy the same position in the order.
func (c *Comparer) Equal(a, b types.Symbol) bool {
	return c.Compare(a, b) == 0
}

// Hash returns a hash consistent with Equal.
func (c *Comparer) Hash(sym types.Symbol) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, p := range c.key(sym) {
		if p.isText {
			buf[0] = 's'
			_, _ = h.Write(buf[:1])
			_, _ = h.WriteString(p.text)
			buf[0] = 0
			_, _ = h.Write(buf[:1])
			continue
		}
		buf[0] = 'n'
		_, _ = h.Write(buf[:1])
		binary.LittleEndian.PutUint64(buf[:], uint64(p.num))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Sort sorts symbols in place. The sort is stable.
func Sort[S ~[]E, E types.Symbol](c *Comparer, symbols S) {
	slices.SortStableFunc(symbols, func(a, b E) int { return c.Compare(a, b) })
}

// keyPart is one element of a sort key: a number or a text compared
// ordinally. Numbers sort before texts.
type keyPart struct {
	num    int
	text   string
	isText bool
}

func num(n int) keyPart     { return keyPart{num: n} }
func text(s string) keyPart { return keyPart{text: s, isText: true} }

// flag sorts true before false.
func flag(b bool) keyPart {
	if b {
		return num(0)
	}
	return num(1)
}

func compareKeys(a, b []keyPart) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		if x.isText != y.isText {
			if x.isText {
				return 1
			}
			return -1
		}
		var r int
		if x.isText {
			r = strings.Compare(x.text, y.text)
		} else {
			r = cmp.Compare(x.num, y.num)
		}
		if r != 0 {
			return r
		}
	}
	return cmp.Compare(len(a), len(b))
}

const (
	categoryNamespace = iota
	categoryType
	categoryMember
)

func (c *Comparer) key(sym types.Symbol) []keyPart {
	switch s := sym.(type) {
	case *types.Namespace:
		return append([]keyPart{num(categoryNamespace)}, c.namespaceKey(s)...)
	case *types.NamedType:
		return append([]keyPart{num(categoryType)}, c.typeKey(s)...)
	default:
		k := []keyPart{num(categoryMember)}
		if ct := sym.Info().Containing; ct != nil {
			k = append(k, c.typeKey(ct)...)
		} else {
			k = append(k, c.namespaceKey(sym.Info().Namespace)...)
		}
		return append(k, c.memberKey(sym)...)
	}
}

func (c *Comparer) namespaceKey(ns *types.Namespace) []keyPart {
	name := ns.FullName()
	system := c.cfg.PlaceSystemNamespaceFirst && isUnder(name, c.cfg.SystemNamespace)
	return []keyPart{flag(ns.IsGlobal()), flag(system), text(name)}
}

func isUnder(name, root string) bool {
	return name == root || strings.HasPrefix(name, root+".")
}

// typeKey orders by namespace, then containing types, then kind rank.
func (c *Comparer) typeKey(t *types.NamedType) []keyPart {
	chain := types.ContainingTypes(t)
	k := c.namespaceKey(t.Namespace)
	k = append(k, num(len(chain)))
	for _, ct := range chain {
		k = append(k, text(ct.Name), num(ct.Arity()))
	}
	k = append(k, num(int(TypeRank(t.TypeKind))))
	if c.cfg.Policy == ByKindThenName {
		k = append(k, text(t.Name), num(t.Arity()))
	}
	return k
}

func (c *Comparer) memberKey(sym types.Symbol) []keyPart {
	k := []keyPart{num(int(MemberRank(sym)))}
	if c.cfg.Policy != ByKindThenName {
		return k
	}
	d := sym.Info()
	k = append(k, num(accessRank(d.Accessibility)), flag(d.IsStatic()), text(d.Name))
	arity := 0
	if m, ok := sym.(*types.Method); ok {
		arity = m.Arity()
	} else if t, ok := sym.(*types.NamedType); ok {
		arity = t.Arity()
	}
	k = append(k, num(arity))
	params := types.Parameters(sym)
	k = append(k, num(len(params)))
	for _, p := range params {
		k = append(k, text(refKey(p.Type)), num(int(p.RefKind)))
	}
	return k
}

// refKey renders a type reference for overload ordering.
func refKey(r types.TypeRef) string {
	var b strings.Builder
	writeRefKey(&b, r)
	return b.String()
}

func writeRefKey(b *strings.Builder, r types.TypeRef) {
	switch r.Kind {
	case types.RefArray, types.RefPointer, types.RefNullable:
		if r.Elem != nil {
			writeRefKey(b, *r.Elem)
		}
		switch r.Kind {
		case types.RefArray:
			b.WriteString("[" + strings.Repeat(",", max(r.Rank-1, 0)) + "]")
		case types.RefPointer:
			b.WriteString("*")
		default:
			b.WriteString("?")
		}
	case types.RefTuple:
		b.WriteString("(")
		for i, e := range r.Elems {
			if i > 0 {
				b.WriteString(",")
			}
			writeRefKey(b, e)
		}
		b.WriteString(")")
	default:
		b.WriteString(r.QualifiedName())
		if len(r.Args) > 0 {
			b.WriteString("<")
			for i, a := range r.Args {
				if i > 0 {
					b.WriteString(",")
				}
				writeRefKey(b, a)
			}
			b.WriteString(">")
		}
	}
}
