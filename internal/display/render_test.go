// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"testing"

	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T, mutate func(*options.Config)) *Renderer {
	t.Helper()
	cfg := options.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	opts, err := options.New(cfg)
	require.NoError(t, err)
	return New(opts)
}

func omitted(c *options.Config) { c.NamespaceStyle = options.NamespaceOmitted }

func render(t *testing.T, r *Renderer, sym types.Symbol) string {
	t.Helper()
	parts, err := r.Render(sym)
	require.NoError(t, err)
	return parts.String()
}

var acme = types.NewAssembly("Acme", "1.0")

// host builds a class Acme.Host holding members.
func host(members ...types.Symbol) *types.NamedType {
	return types.NewType(types.TypeKindClass, "Host").Add(members...).Build(acme.Namespace("Acme"))
}

func attr(name string, args ...types.TypedConstant) types.Attribute {
	return types.NewAttribute(types.Named("", name, types.TypeKindClass), args...)
}

func intRef() types.TypeRef    { return types.Special(types.SpecialInt32) }
func stringRef() types.TypeRef { return types.Special(types.SpecialString) }

func TestRender_AttributeOrder(t *testing.T) {
	newFoo := func() *types.NamedType {
		return types.NewType(types.TypeKindClass, "Foo").
			Attributes(attr("BetaAttribute"), attr("AlphaAttribute")).
			Build(acme.Namespace("Acme"))
	}

	split := testRenderer(t, nil)
	assert.Equal(t, "[Alpha]\n[Beta]\npublic class Foo", render(t, split, newFoo()))

	joined := testRenderer(t, func(c *options.Config) { c.SplitAttributes = false })
	assert.Equal(t, "[Alpha, Beta]\npublic class Foo", render(t, joined, newFoo()))
}

func TestRender_AttributeFilter(t *testing.T) {
	internalAttr := types.NewType(types.TypeKindClass, "SecretAttribute").
		Access(types.AccessInternal).
		Build(acme.Namespace("Acme"))

	m := types.NewMethod("Run", types.Void())
	m.Attributes = []types.Attribute{
		types.NewAttribute(types.Named("System.Runtime.CompilerServices", "CompilerGeneratedAttribute", types.TypeKindClass)),
		types.NewAttribute(internalAttr.Ref()),
		attr("VisibleAttribute"),
	}
	host(m)

	r := testRenderer(t, nil)
	assert.Equal(t, "[Visible]\npublic void Run()", render(t, r, m))

	all := r.WithAttributeFilter(func(types.TypeRef) bool { return true })
	assert.Contains(t, render(t, all, m), "[Acme.Secret]")
}

func TestRender_DefaultLiteral(t *testing.T) {
	newMethod := func() *types.Method {
		m := types.NewMethod("M", types.Void(),
			types.OptionalParam("x", intRef(), types.Primitive(types.SpecialInt32, nil)),
			types.OptionalParam("s", stringRef(), types.Primitive(types.SpecialString, nil)),
			types.OptionalParam("n", intRef(), types.IntConstant(5)))
		host(m)
		return m
	}

	on := testRenderer(t, nil)
	assert.Equal(t, "public void M(int x = default, string s = null, int n = 5)", render(t, on, newMethod()))

	off := testRenderer(t, func(c *options.Config) { c.UseDefaultLiteral = false })
	assert.Equal(t, "public void M(int x = default(int), string s = null, int n = 5)", render(t, off, newMethod()))
}

func TestRender_EnumerableSuppression(t *testing.T) {
	newBag := func() *types.NamedType {
		return types.NewType(types.TypeKindClass, "Bag").
			TypeParameters(types.TypeParameter{Name: "T"}).
			Implements(
				types.Named("System.Collections", "IEnumerable", types.TypeKindInterface),
				types.Generic("System.Collections.Generic", "IEnumerable", types.TypeKindInterface, types.TypeParam("T")),
			).
			Build(acme.Namespace("Acme"))
	}

	on := testRenderer(t, nil)
	assert.Equal(t, "public class Bag<T> : System.Collections.Generic.IEnumerable<T>", render(t, on, newBag()))

	off := testRenderer(t, func(c *options.Config) { c.OmitIEnumerable = false })
	assert.Equal(t,
		"public class Bag<T> : System.Collections.IEnumerable, System.Collections.Generic.IEnumerable<T>",
		render(t, off, newBag()))
}

func TestRender_BaseListAndConstraints(t *testing.T) {
	newRepo := func() *types.NamedType {
		return types.NewType(types.TypeKindClass, "Repo").
			TypeParameters(types.TypeParameter{Name: "T", ReferenceType: true, Constructor: true}).
			Base(types.Named("Acme", "Base", types.TypeKindClass)).
			Implements(types.Named("Acme", "IRepo", types.TypeKindInterface)).
			Build(acme.Namespace("Acme"))
	}

	tests := []struct {
		name   string
		mutate func(*options.Config)
		want   string
	}{
		{"inline", nil, "public class Repo<T> : Base, IRepo where T : class, new()"},
		{"format constraints", func(c *options.Config) { c.FormatConstraints = true }, "public class Repo<T> : Base, IRepo\n  where T : class, new()"},
		{"format base list", func(c *options.Config) { c.FormatBaseList = true }, "public class Repo<T> : Base,\n  IRepo where T : class, new()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRenderer(t, func(c *options.Config) {
				omitted(c)
				if tt.mutate != nil {
					tt.mutate(c)
				}
			})
			assert.Equal(t, tt.want, render(t, r, newRepo()))
		})
	}
}

func TestRender_ConstraintsWithoutBaseList(t *testing.T) {
	pair := types.NewType(types.TypeKindClass, "Pair").
		TypeParameters(
			types.TypeParameter{Name: "TKey", NotNull: true},
			types.TypeParameter{Name: "TValue", ReferenceType: true},
		).
		Build(acme.Namespace("Acme"))

	inline := testRenderer(t, nil)
	assert.Equal(t, "public class Pair<TKey, TValue> where TKey : notnull where TValue : class", render(t, inline, pair))

	formatted := testRenderer(t, func(c *options.Config) { c.FormatConstraints = true })
	assert.Equal(t, "public class Pair<TKey, TValue>\n  where TKey : notnull\n  where TValue : class", render(t, formatted, pair))

	single := types.NewType(types.TypeKindClass, "Box").
		TypeParameters(types.TypeParameter{Name: "T", ValueType: true}).
		Build(acme.Namespace("Acme"))
	assert.Equal(t, "public class Box<T> where T : struct", render(t, formatted, single), "one clause stays inline")
}

func TestRender_AccessorAttributes(t *testing.T) {
	prop := types.NewProperty("Name", stringRef(), true, true)
	prop.Getter.Attributes = []types.Attribute{attr("PureAttribute")}
	prop.Setter.Accessibility = types.AccessPrivate

	ev := types.NewEvent("Changed", types.Named("System", "EventHandler", types.TypeKindDelegate))
	ev.Adder.Attributes = []types.Attribute{attr("TracedAttribute")}

	plain := types.NewEvent("Closed", types.Named("System", "EventHandler", types.TypeKindDelegate))
	host(prop, ev, plain)

	r := testRenderer(t, nil)
	assert.Equal(t, "public string Name { [Pure] get; private set; }", render(t, r, prop))
	assert.Equal(t, "public event System.EventHandler Changed { [Traced] add; remove; }", render(t, r, ev))
	assert.Equal(t, "public event System.EventHandler Closed", render(t, r, plain))
}

func TestRender_ParameterAttributesAndFormatting(t *testing.T) {
	a := types.Param("a", stringRef())
	a.Attributes = []types.Attribute{attr("NotNullAttribute")}
	m := types.NewMethod("M", types.Void(), a, types.Param("b", intRef()))
	single := types.NewMethod("One", types.Void(), types.Param("x", intRef()))
	host(m, single)

	r := testRenderer(t, nil)
	assert.Equal(t, "public void M([NotNull] string a, int b)", render(t, r, m))

	formatted := testRenderer(t, func(c *options.Config) { c.FormatParameters = true })
	assert.Equal(t, "public void M(\n  [NotNull] string a,\n  int b)", render(t, formatted, m))
	assert.Equal(t, "public void One(int x)", render(t, formatted, single), "a single parameter stays inline")
}

func TestRender_ConversionToTupleParameterAttributes(t *testing.T) {
	b := types.Param("b", intRef())
	b.Attributes = []types.Attribute{attr("MarkAttribute")}
	tuple := types.TypeRef{Kind: types.RefTuple, Elems: []types.TypeRef{intRef(), intRef()}}
	conv := types.NewConversion(false, tuple, b)
	host(conv)

	assert.Equal(t, "public static explicit operator (int, int)([Mark] int b)", render(t, testRenderer(t, nil), conv))
}

func TestRender_Indexer(t *testing.T) {
	getOnly := types.NewIndexer(intRef(), true, false, types.Param("index", intRef()))
	grid := types.NewIndexer(types.ArrayOf(intRef()), true, true, types.Param("row", intRef()), types.Param("col", intRef()))
	host(getOnly, grid)

	r := testRenderer(t, nil)
	assert.Equal(t, "public int this[int index] { get; }", render(t, r, getOnly))

	formatted := testRenderer(t, func(c *options.Config) { c.FormatParameters = true })
	assert.Equal(t, "public int[] this[\n  int row,\n  int col] { get; set; }", render(t, formatted, grid))
}

func TestRender_Members(t *testing.T) {
	ns := acme.Namespace("Acme")
	money := types.NewType(types.TypeKindStruct, "Money").Build(ns)
	moneyRef := money.Ref()

	count := types.NewField("Count", intRef())
	count.Modifiers |= types.ModStatic | types.ModReadOnly
	name := types.NewConst("Name", stringRef(), types.StringConstant(`say "hi"`))
	ctor := types.NewConstructor(types.Param("amount", types.Special(types.SpecialDecimal)))
	plus := types.NewOperator("+", moneyRef, types.Param("left", moneyRef), types.Param("right", moneyRef))
	conv := types.NewConversion(true, types.Special(types.SpecialDecimal), types.Param("value", moneyRef))
	abstract := types.NewMethod("Describe", stringRef())
	abstract.Modifiers |= types.ModAbstract
	ext := types.NewMethod("Twice", intRef(), types.Parameter{Name: "value", Type: intRef(), RefKind: types.RefThis})
	ext.Modifiers |= types.ModStatic
	generic := types.NewMethod("Find", types.TypeParam("T"), types.Parameter{Name: "key", Type: stringRef(), RefKind: types.RefIn})
	generic.TypeParameters = []types.TypeParameter{{Name: "T", ConstraintTypes: []types.TypeRef{moneyRef}}}
	initOnly := types.NewProperty("Id", intRef(), true, true)
	initOnly.InitOnly = true

	types.NewType(types.TypeKindStruct, "Wallet").
		Add(count, name, ctor, plus, conv, abstract, ext, generic, initOnly).
		Build(ns)

	r := testRenderer(t, func(c *options.Config) { c.NamespaceStyle = options.NamespaceOmittedAsContaining })
	tests := []struct {
		sym  types.Symbol
		want string
	}{
		{count, "public static readonly int Count"},
		{name, `public const string Name = "say \"hi\""`},
		{ctor, "public Wallet(decimal amount)"},
		{plus, "public static Money operator +(Money left, Money right)"},
		{conv, "public static implicit operator decimal(Money value)"},
		{abstract, "public abstract string Describe()"},
		{ext, "public static int Twice(this int value)"},
		{generic, "public T Find<T>(in string key) where T : Money"},
		{initOnly, "public int Id { get; init; }"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, r, tt.sym))
		})
	}
}

func TestRender_NamespaceStyles(t *testing.T) {
	ns := acme.Namespace("Acme")
	widget := types.NewType(types.TypeKindClass, "Widget").Build(ns)
	m := types.NewMethod("M", types.Void(),
		types.Param("w", widget.Ref()),
		types.Param("t", types.Named("Other", "Thing", types.TypeKindClass)))
	host(m)

	tests := []struct {
		style options.NamespaceStyle
		want  string
	}{
		{options.NamespaceOmitted, "public void M(Widget w, Thing t)"},
		{options.NamespaceOmittedAsContaining, "public void M(Widget w, Other.Thing t)"},
		{options.NamespaceIncluded, "public void M(Acme.Widget w, Other.Thing t)"},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			r := testRenderer(t, func(c *options.Config) { c.NamespaceStyle = tt.style })
			assert.Equal(t, tt.want, render(t, r, m))
		})
	}
}

func TestRender_TypeHeaders(t *testing.T) {
	ns := acme.Namespace("Acme")
	handler := types.NewType(types.TypeKindDelegate, "Handler").
		Signature(types.Void(),
			types.Param("sender", types.Special(types.SpecialObject)),
			types.Param("e", types.Named("System", "EventArgs", types.TypeKindClass))).
		Build(ns)
	color := types.NewType(types.TypeKindEnum, "Color").Underlying(types.Special(types.SpecialByte)).Build(ns)
	static := types.NewType(types.TypeKindClass, "Util").Modifiers(types.ModStatic).Build(ns)
	span := types.NewType(types.TypeKindStruct, "Span").Modifiers(types.ModReadOnly | types.ModRef).Build(ns)
	variant := types.NewType(types.TypeKindInterface, "IProducer").
		TypeParameters(types.TypeParameter{Name: "T", Variance: types.VarianceOut}).
		Build(ns)

	r := testRenderer(t, nil)
	assert.Equal(t, "public delegate void Handler(object sender, System.EventArgs e)", render(t, r, handler))
	assert.Equal(t, "public enum Color : byte", render(t, r, color))
	assert.Equal(t, "public static class Util", render(t, r, static))
	assert.Equal(t, "public readonly ref struct Span", render(t, r, span))
	assert.Equal(t, "public interface IProducer<out T>", render(t, r, variant))
	assert.Equal(t, "namespace Acme", render(t, r, ns))
}

func TestRender_EnumMember(t *testing.T) {
	red := types.NewEnumMember("Red", 1)
	types.NewType(types.TypeKindEnum, "Color").Add(red).Build(acme.Namespace("Acme"))

	assert.Equal(t, "Red = 1", render(t, testRenderer(t, nil), red))
}
