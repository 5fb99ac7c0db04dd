// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/petar-djukic/go-deflist/internal/deflist"
	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsSrc = `using System;
using System.Collections.Generic;

namespace Acme.Widgets
{
    public enum Mode : byte { Off, On = 4, Auto }

    [Flags]
    public enum Access { None = 0, Read = 1, Write = 1 << 1, All = Read | Write }

    public interface IWidget
    {
        string Name { get; }
        void Run(Mode mode = Mode.On);
    }

    public abstract partial class Widget : IWidget
    {
        public const int Limit = 10;
        protected internal static readonly string Prefix;
        public string Name { get; private set; }
        public event EventHandler Changed;
        protected Widget(int size) { }
        public void Run(Mode mode = Mode.On) { }
        public T Find<T>(IEnumerable<T> items, T fallback = default) where T : class, new() => fallback;
        public static Widget operator +(Widget a, Widget b) => a;
        public static implicit operator string(Widget w) => w.Name;
        private void Hidden() { }
        public class Nested { }
    }

    public delegate void Handler(object sender, string message);

    public record Point(int X, int Y);

    struct Secret { }
}
`

const widgetPartSrc = `namespace Acme.Widgets
{
    partial class Widget
    {
        public void Extra() { }
    }
}
`

const toolsSrc = `namespace Acme.Tools;

public static class Extensions
{
    public static string Shout(this string s) => s;
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func load(t *testing.T) *types.Assembly {
	t.Helper()
	dir := writeFiles(t, map[string]string{
		"Widgets.cs":          widgetsSrc,
		"Widget.Part.cs":      widgetPartSrc,
		"tools/Extensions.cs": toolsSrc,
		"bin/Debug/Gen.cs":    "public class Generated { }",
		"gen/Skip.cs":         "public class Excluded { }",
		"ignored/Skip.cs":     "public class Ignored { }",
		".gitignore":          "ignored/\n",
		"README.md":           "not C#",
	})
	l := &Loader{Dir: dir, Name: "Acme", Version: "2.1", Exclude: []string{"gen/**"}, Concurrency: 2}
	assemblies, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, assemblies, 1)
	return assemblies[0]
}

func typeNamed(t *testing.T, asm *types.Assembly, name string) *types.NamedType {
	t.Helper()
	for _, typ := range asm.Types(nil) {
		if typ.Name == name {
			return typ
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

func memberNamed(t *testing.T, typ *types.NamedType, name string) types.Symbol {
	t.Helper()
	for _, m := range typ.Members {
		if m.Info().Name == name {
			return m
		}
	}
	t.Fatalf("member %s not found in %s", name, typ.Name)
	return nil
}

func TestLoader_Files(t *testing.T) {
	asm := load(t)
	assert.Equal(t, "Acme", asm.Name)
	assert.Equal(t, "2.1", asm.Version)

	var names []string
	for _, typ := range asm.Types(nil) {
		names = append(names, typ.Name)
	}
	assert.ElementsMatch(t, []string{
		"Mode", "Access", "IWidget", "Widget", "Nested", "Handler", "Point", "Secret", "Extensions",
	}, names)
	assert.Equal(t, "Acme.Tools", typeNamed(t, asm, "Extensions").Namespace.FullName())
	assert.Equal(t, "Acme.Widgets", typeNamed(t, asm, "Widget").Namespace.FullName())
}

func TestLoader_Enums(t *testing.T) {
	asm := load(t)

	mode := typeNamed(t, asm, "Mode")
	assert.Equal(t, types.TypeKindEnum, mode.TypeKind)
	require.NotNil(t, mode.EnumUnderlying)
	assert.Equal(t, types.SpecialByte, mode.EnumUnderlying.Special)
	var unsigned []any
	for _, f := range mode.Fields() {
		unsigned = append(unsigned, f.Constant.Value)
	}
	assert.Equal(t, []any{uint64(0), uint64(4), uint64(5)}, unsigned, "byte enums hold unsigned values")

	access := typeNamed(t, asm, "Access")
	assert.True(t, access.IsFlagsEnum())
	var values []int64
	for _, f := range access.Fields() {
		values = append(values, f.Constant.Value.(int64))
	}
	assert.Equal(t, []int64{0, 1, 2, 3}, values)
}

func TestLoader_Types(t *testing.T) {
	asm := load(t)

	widget := typeNamed(t, asm, "Widget")
	assert.Equal(t, types.AccessPublic, widget.Accessibility)
	assert.True(t, widget.Modifiers.Has(types.ModAbstract))
	assert.Nil(t, widget.BaseType)
	require.Len(t, widget.Interfaces, 1)
	assert.Same(t, typeNamed(t, asm, "IWidget"), widget.Interfaces[0].Definition)

	limit := memberNamed(t, widget, "Limit").(*types.Field)
	assert.True(t, limit.IsConst())
	assert.Equal(t, int64(10), limit.Constant.Value)

	prefix := memberNamed(t, widget, "Prefix").(*types.Field)
	assert.Equal(t, types.AccessProtectedOrInternal, prefix.Accessibility)
	assert.True(t, prefix.Modifiers.Has(types.ModStatic|types.ModReadOnly))

	name := memberNamed(t, widget, "Name").(*types.Property)
	require.NotNil(t, name.Setter)
	assert.Equal(t, types.AccessPrivate, name.Setter.Accessibility)

	ctor := memberNamed(t, widget, ".ctor").(*types.Method)
	assert.Equal(t, types.AccessProtected, ctor.Accessibility)
	assert.False(t, ctor.Implicit)

	run := memberNamed(t, widget, "Run").(*types.Method)
	require.Len(t, run.Parameters, 1)
	def := run.Parameters[0].Default
	assert.True(t, run.Parameters[0].HasDefault)
	assert.Equal(t, types.ConstantEnum, def.Kind)
	assert.Equal(t, int64(4), def.Value)
	assert.Same(t, typeNamed(t, asm, "Mode"), def.Type.Definition)

	find := memberNamed(t, widget, "Find").(*types.Method)
	require.Len(t, find.TypeParameters, 1)
	assert.True(t, find.TypeParameters[0].ReferenceType)
	assert.True(t, find.TypeParameters[0].Constructor)
	require.Len(t, find.Parameters, 2)
	assert.Equal(t, types.SpecialIEnumerableT, find.Parameters[0].Type.Special)
	assert.True(t, find.Parameters[1].HasDefault)

	plus := memberNamed(t, widget, "op_+").(*types.Method)
	assert.Equal(t, types.MethodOperator, plus.MethodKind)
	conv := memberNamed(t, widget, "op_Implicit").(*types.Method)
	assert.Equal(t, types.SpecialString, conv.ReturnType.Special)

	assert.Equal(t, types.AccessPrivate, memberNamed(t, widget, "Hidden").Info().Accessibility)
	memberNamed(t, widget, "Extra")
	memberNamed(t, widget, "Changed")
	assert.Same(t, widget, typeNamed(t, asm, "Nested").Containing)

	handler := typeNamed(t, asm, "Handler")
	assert.Equal(t, types.TypeKindDelegate, handler.TypeKind)
	require.NotNil(t, handler.Invoke)
	assert.Len(t, handler.Invoke.Parameters, 2)

	point := typeNamed(t, asm, "Point")
	pctor := memberNamed(t, point, ".ctor").(*types.Method)
	assert.Len(t, pctor.Parameters, 2)
	x := memberNamed(t, point, "X").(*types.Property)
	assert.True(t, x.InitOnly)

	assert.Equal(t, types.AccessInternal, typeNamed(t, asm, "Secret").Accessibility)

	shout := memberNamed(t, typeNamed(t, asm, "Extensions"), "Shout").(*types.Method)
	assert.True(t, shout.IsExtension())
	assert.True(t, shout.IsStatic())
}

func render(t *testing.T, asm *types.Assembly, opts *options.Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, deflist.New(&buf, opts, nil).Write([]*types.Assembly{asm}))
	return buf.String()
}

func TestLoader_Render(t *testing.T) {
	asm := load(t)

	all := render(t, asm, options.Default())
	assert.Contains(t, all, "assembly Acme, Version=2.1.0.0, Culture=neutral, PublicKeyToken=null\n")
	assert.Contains(t, all, "namespace Acme.Widgets\n")
	assert.Contains(t, all, "namespace Acme.Tools\n")
	assert.Contains(t, all, "Hidden()", "private members are listed by default")
	assert.Contains(t, all, "struct Secret", "internal types are listed by default")

	cfg := options.DefaultConfig()
	cfg.Visibilities = []types.Visibility{types.VisibilityPublic}
	opts, err := options.New(cfg)
	require.NoError(t, err)
	public := render(t, asm, opts)
	assert.Contains(t, public, "namespace Acme.Widgets\n")
	assert.NotContains(t, public, "Hidden")
	assert.NotContains(t, public, "Secret")
}

func TestLoader_UnsignedEnum(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Big.cs": "namespace Acme { public enum Big : ulong { Zero = 0, Max = 18446744073709551615 } }",
	})
	assemblies, err := (&Loader{Dir: dir, Name: "Acme"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, assemblies, 1)

	big := typeNamed(t, assemblies[0], "Big")
	assert.Equal(t, uint64(18446744073709551615), memberNamed(t, big, "Max").(*types.Field).Constant.Value)
	out := render(t, assemblies[0], options.Default())
	assert.Contains(t, out, "Max = 18446744073709551615")
	assert.NotContains(t, out, "-1")
}

func TestLoader_AttributeArguments(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"A.cs": `namespace Acme
{
    [Foo(nameof(A), 5, Level = 2)]
    [Bar("x", Level = 2)]
    public class A { }
}`,
	})
	assemblies, err := (&Loader{Dir: dir, Name: "Acme"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, assemblies, 1)

	attrs := typeNamed(t, assemblies[0], "A").Attributes
	require.Len(t, attrs, 2)
	assert.Equal(t, "FooAttribute", attrs[0].Type.Name)
	assert.Empty(t, attrs[0].ConstructorArgs, "a non-constant argument drops the argument list")
	assert.Empty(t, attrs[0].NamedArgs)
	assert.Len(t, attrs[1].ConstructorArgs, 1)
	assert.Len(t, attrs[1].NamedArgs, 1)

	out := render(t, assemblies[0], options.Default())
	assert.Contains(t, out, "[Foo]")
	assert.NotContains(t, out, "Foo(5")
	assert.Contains(t, out, `[Bar("x", Level = 2)]`)
}

func TestLoader_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.cs": "class A { }"})

	_, err := (&Loader{Dir: filepath.Join(dir, "a.cs")}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = (&Loader{Dir: dir, Include: []string{"[a"}}).Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = (&Loader{Dir: filepath.Join(dir, "missing")}).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&Loader{Dir: dir}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilter_Keep(t *testing.T) {
	dir := writeFiles(t, map[string]string{".gitignore": "*.g.cs\nout/\n"})
	f, err := newFilter(dir, []string{"src/**/*.cs"}, []string{"src/legacy/**"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"src/A.cs", true},
		{"src/deep/B.cs", true},
		{"src/legacy/C.cs", false},
		{"src/D.g.cs", false},
		{"test/E.cs", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.keep(tt.path))
		})
	}
}

func TestNumberLiteral(t *testing.T) {
	tests := []struct {
		lit   string
		value any
		st    types.SpecialType
	}{
		{"42", int64(42), types.SpecialInt32},
		{"0x_FF", int64(255), types.SpecialInt32},
		{"0b101", int64(5), types.SpecialInt32},
		{"3000000000", int64(3000000000), types.SpecialUInt32},
		{"10L", int64(10), types.SpecialInt64},
		{"10UL", uint64(10), types.SpecialUInt64},
		{"1.5", 1.5, types.SpecialDouble},
		{"2f", 2.0, types.SpecialSingle},
		{"1_000.25m", 1000.25, types.SpecialDecimal},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			v, st, ok := numberLiteral(tt.lit)
			require.True(t, ok)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.st, st)
		})
	}
}

func TestStringLiteral(t *testing.T) {
	tests := []struct {
		lit, want string
	}{
		{`"plain"`, "plain"},
		{`"tab\there"`, "tab\there"},
		{`"\u0041\x42"`, "AB"},
		{`@"C:\dir ""q"""`, `C:\dir "q"`},
		{`"""raw "text" """`, `raw "text" `},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, ok := stringLiteral(tt.lit)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
