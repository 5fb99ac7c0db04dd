// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package deflist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/petar-djukic/go-deflist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmeYAML = `
assemblies:
  - name: Acme
    version: "1.0"
    namespaces:
      - name: Acme
        types:
          - kind: class
            name: Widget
            access: public
            members:
              - {kind: method, name: Run, access: public}
              - {kind: method, name: Reset, access: internal}
`

func acmeLoader() Loader {
	return LoaderFunc(func(context.Context) ([]*types.Assembly, error) {
		asm := types.NewAssembly("Acme", "1.0")
		ns := asm.Namespace("Acme")
		hidden := types.NewMethod("Reset", types.Void())
		hidden.Accessibility = types.AccessInternal
		asm.AddType(types.NewType(types.TypeKindClass, "Widget").
			Access(types.AccessPublic).
			Add(types.NewMethod("Run", types.Void()), hidden).
			Build(ns))
		return []*types.Assembly{asm}, nil
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"visibility", func(c *Config) { c.Visibility = []string{"protected"} }},
		{"depth", func(c *Config) { c.Depth = "assembly" }},
		{"namespace style", func(c *Config) { c.NamespaceStyle = "sometimes" }},
		{"sort", func(c *Config) { c.Sort = "name" }},
		{"language", func(c *Config) { c.Language = "fortran" }},
		{"manifest without paths", func(c *Config) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestList_Manifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(acmeYAML), 0o644))

	cfg := DefaultConfig()
	cfg.Paths = []string{path}
	cfg.Visibility = []string{"public"}
	l, err := New(cfg)
	require.NoError(t, err)

	got, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "assembly Acme, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null\n"+
		"\n"+
		"namespace Acme\n"+
		"\n"+
		"  public class Widget\n"+
		"\n"+
		"    public Widget();\n"+
		"\n"+
		"    public void Run();\n", got)
}

func TestList_CustomLoader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loader = acmeLoader()
	cfg.Depth = "type"
	l, err := New(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.Write(context.Background(), &buf))
	assert.Contains(t, buf.String(), "  public class Widget\n")
	assert.NotContains(t, buf.String(), "Run")
}

func TestList_LoadError(t *testing.T) {
	boom := errors.New("boom")
	cfg := DefaultConfig()
	cfg.Loader = LoaderFunc(func(context.Context) ([]*types.Assembly, error) { return nil, boom })
	l, err := New(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = l.Write(context.Background(), &buf)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, buf.Len(), "nothing written on failure")
}

func TestList_Cancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loader = acmeLoader()
	l, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
