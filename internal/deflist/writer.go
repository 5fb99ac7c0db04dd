// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deflist writes definition lists: assemblies, then namespaces,
// then types, then members, each level indented under its parent.
//
// Indentation is written lazily. A line break marks indentation as pending
// and the next non-empty write emits it, so blank lines never carry
// trailing whitespace.
package deflist

import (
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-deflist/internal/display"
	"github.com/petar-djukic/go-deflist/internal/invariant"
	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/internal/ordering"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Writer streams a definition list to an io.Writer. A Writer is not safe
// for concurrent use; separate Writers share nothing mutable.
type Writer struct {
	w        io.Writer
	opts     *options.Options
	cmp      *ordering.Comparer
	renderer *display.Renderer

	depth   int
	pending bool
	err     error
}

// New returns a Writer on w. A nil opts means options.Default(); a nil cmp
// orders by kind, then name.
func New(w io.Writer, opts *options.Options, cmp *ordering.Comparer) *Writer {
	if opts == nil {
		opts = options.Default()
	}
	if cmp == nil {
		cmp = ordering.New(ordering.ConfigFor(ordering.ByKindThenName, opts))
	}
	return &Writer{
		w:        w,
		opts:     opts,
		cmp:      cmp,
		renderer: display.New(opts),
	}
}

// WithAttributeFilter replaces the predicate that decides which attributes
// are displayed.
func (w *Writer) WithAttributeFilter(filter func(types.TypeRef) bool) *Writer {
	w.renderer = w.renderer.WithAttributeFilter(filter)
	return w
}

// Depth returns the current indentation depth. It is zero outside Write.
func (w *Writer) Depth() int { return w.depth }

// IsVisibleNamespace reports whether a namespace block is written.
func (w *Writer) IsVisibleNamespace(ns *types.Namespace) bool {
	return !w.opts.ShouldBeIgnored(ns)
}

// IsVisibleType reports whether t is listed.
func (w *Writer) IsVisibleType(t *types.NamedType) (bool, error) {
	if t.Implicit || w.opts.ShouldBeIgnored(t) {
		return false, nil
	}
	return w.opts.IsVisible(t)
}

// IsVisibleMember reports whether sym is listed as a member. Accessors,
// static constructors, destructors and explicit interface implementations
// are never listed on their own. A parameterless constructor of a class is
// listed even when implicit; on a struct it is never listed.
func (w *Writer) IsVisibleMember(sym types.Symbol) (bool, error) {
	canBeImplicit := false
	switch s := sym.(type) {
	case *types.Field, *types.Property, *types.Event:
	case *types.Method:
		switch s.MethodKind {
		case types.MethodConstructor:
			if len(s.Parameters) == 0 && s.Containing != nil {
				switch s.Containing.TypeKind {
				case types.TypeKindClass:
					canBeImplicit = true
				case types.TypeKindStruct:
					return false, nil
				}
			}
		case types.MethodOrdinary, types.MethodOperator, types.MethodConversion:
		case types.MethodStaticConstructor, types.MethodDestructor, types.MethodExplicitInterfaceImplementation,
			types.MethodPropertyGet, types.MethodPropertySet,
			types.MethodEventAdd, types.MethodEventRemove, types.MethodEventRaise,
			types.MethodDelegateInvoke:
			return false, nil
		default:
			invariant.Fail("unexpected method kind %v of %s", s.MethodKind, types.QualifiedName(s))
			return false, nil
		}
	default:
		return false, nil
	}

	if sym.Info().Implicit && !canBeImplicit {
		return false, nil
	}
	if w.opts.ShouldBeIgnored(sym) {
		return false, nil
	}
	return w.opts.IsVisible(sym)
}

// Write writes the definition list of assemblies. Assemblies are ordered by
// name, then version.
func (w *Writer) Write(assemblies []*types.Assembly) error {
	w.depth, w.pending, w.err = 0, false, nil

	sorted := slices.Clone(assemblies)
	slices.SortStableFunc(sorted, compareAssemblies)
	for i, asm := range sorted {
		if i > 0 && w.opts.AssemblyAttributes() {
			w.writeLine()
		}
		if err := w.writeAssembly(asm); err != nil {
			return err
		}
	}

	groups := w.groupTypes(sorted)
	var err error
	if w.opts.NestNamespaces() {
		err = w.writeNamespaceHierarchy(groups)
	} else {
		for _, g := range groups.sorted() {
			if err = w.writeNamespace(g.ns, g.types, nil); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}
	return w.err
}

func compareAssemblies(a, b *types.Assembly) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return compareVersions(a.Version, b.Version)
}

// compareVersions compares dotted versions numerically, falling back to
// ordinal comparison for non-numeric components.
func compareVersions(a, b string) int {
	as := strings.Split(types.NormalizeVersion(a), ".")
	bs := strings.Split(types.NormalizeVersion(b), ".")
	for i := range as {
		x, errX := strconv.Atoi(as[i])
		y, errY := strconv.Atoi(bs[i])
		var c int
		if errX == nil && errY == nil {
			c = cmp.Compare(x, y)
		} else {
			c = strings.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func (w *Writer) writeAssembly(asm *types.Assembly) error {
	w.write("assembly ")
	w.write(asm.Identity())
	w.writeLine()

	if !w.opts.AssemblyAttributes() {
		return nil
	}
	parts, err := w.renderer.AssemblyAttributes(asm)
	if err != nil {
		return err
	}
	w.writeParts(parts)
	return nil
}

// groupTypes groups the top-level types of all assemblies by namespace.
// Namespaces from different assemblies with the same name share a group.
// Types are grouped before the visibility filter so that a namespace whose
// types are all filtered out is still listed.
func (w *Writer) groupTypes(assemblies []*types.Assembly) *namespaceGroups {
	groups := newNamespaceGroups(w.cmp)
	for _, asm := range assemblies {
		for _, t := range asm.Types(func(t *types.NamedType) bool {
			return t.Containing == nil && !t.Implicit && !w.opts.ShouldBeIgnored(t)
		}) {
			if !w.IsVisibleNamespace(t.Namespace) {
				continue
			}
			g := groups.add(t.Namespace)
			g.types = append(g.types, t)
		}
	}
	return groups
}

// writeNamespaceHierarchy writes every namespace nested under its parent.
// Parents without types of their own are written as empty blocks.
func (w *Writer) writeNamespaceHierarchy(groups *namespaceGroups) error {
	roots := newNamespaceGroups(w.cmp)
	nested := newNamespaceGroups(w.cmp)
	for _, g := range groups.all() {
		if g.ns.IsGlobal() {
			roots.add(g.ns)
			continue
		}
		n := g.ns
		for !n.Namespace.IsGlobal() {
			nested.add(n)
			n = n.Namespace
		}
		roots.add(n)
	}

	var walk func(ns *types.Namespace) error
	walk = func(ns *types.Namespace) error {
		var own []*types.NamedType
		if g := groups.get(ns); g != nil {
			own = g.types
		}
		return w.writeNamespace(ns, own, func() error {
			var children []*types.Namespace
			for _, g := range nested.all() {
				if w.cmp.Equal(g.ns.Namespace, ns) {
					children = append(children, g.ns)
				}
			}
			ordering.Sort(w.cmp, children)
			for _, child := range children {
				nested.remove(child)
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for _, g := range roots.sorted() {
		if err := walk(g.ns); err != nil {
			return err
		}
	}
	return nil
}

// writeNamespace writes one namespace block: the header, its types, and
// whatever inner writes before closing the block.
func (w *Writer) writeNamespace(ns *types.Namespace, nsTypes []*types.NamedType, inner func() error) error {
	global := ns.IsGlobal()
	if !global {
		parts, err := w.renderer.Render(ns)
		if err != nil {
			return err
		}
		w.writeLine()
		w.writeParts(parts)
		w.writeLine()
		w.enter()
		defer w.leave()
	}

	if w.opts.IncludesTypes() {
		if err := w.writeTypes(nsTypes); err != nil {
			return err
		}
	}
	if inner != nil {
		return inner()
	}
	return nil
}

func (w *Writer) writeTypes(candidates []*types.NamedType) error {
	var visible []*types.NamedType
	for _, t := range candidates {
		ok, err := w.IsVisibleType(t)
		if err != nil {
			return err
		}
		if ok {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 {
		return nil
	}
	ordering.Sort(w.cmp, visible)

	w.writeLine()
	for i, t := range visible {
		if i > 0 {
			w.writeLine()
		}
		if err := w.writeType(t); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeType(t *types.NamedType) error {
	parts, err := w.renderer.Render(t)
	if err != nil {
		return err
	}
	w.writeParts(parts)

	if t.TypeKind == types.TypeKindDelegate {
		w.write(";")
		w.writeLine()
		return nil
	}
	w.writeLine()

	w.enter()
	defer w.leave()
	if t.TypeKind == types.TypeKindEnum {
		return w.writeEnumMembers(t)
	}
	return w.writeMembers(t)
}

func (w *Writer) writeMembers(t *types.NamedType) error {
	if w.opts.IncludesMembers() {
		var members []types.Symbol
		for _, m := range t.Members {
			ok, err := w.IsVisibleMember(m)
			if err != nil {
				return err
			}
			if ok {
				members = append(members, m)
			}
		}
		ordering.Sort(w.cmp, members)

		if len(members) > 0 {
			w.writeLine()
		}
		var prev ordering.Rank
		for i, m := range members {
			rank := ordering.MemberRank(m)
			if i > 0 && (rank != prev || w.opts.EmptyLineBetweenMembers()) {
				w.writeLine()
			}
			prev = rank

			parts, err := w.renderer.Render(m)
			if err != nil {
				return err
			}
			w.writeParts(parts)
			if !endsWithBlock(parts) {
				w.write(";")
			}
			w.writeLine()
		}
	}

	return w.writeTypes(t.TypeMembers())
}

// writeEnumMembers lists the public constants of an enum in declaration
// order.
func (w *Writer) writeEnumMembers(t *types.NamedType) error {
	if !w.opts.IncludesMembers() {
		return nil
	}
	var fields []*types.Field
	for _, f := range t.Fields() {
		if f.Accessibility == types.AccessPublic {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}

	w.writeLine()
	for _, f := range fields {
		parts, err := w.renderer.Render(f)
		if err != nil {
			return err
		}
		w.writeParts(parts)
		w.write(",")
		w.writeLine()
	}
	return nil
}

// endsWithBlock reports whether parts end with an accessor block, which
// takes the place of a terminator.
func endsWithBlock(parts types.Parts) bool {
	return len(parts) > 0 && parts[len(parts)-1].IsPunctuation("}")
}
