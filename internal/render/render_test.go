package render

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pachca/pachcagen/internal/extract"
)

const transportPath = "github.com/pachca/pachcagen/transport"

const fileA = `package messages

import (
	"context"

	"example.com/client/models"
	"github.com/pachca/pachcagen/transport"
	"github.com/pachca/pachcagen/types"
)

// GetMessage fetches one message.
func (c *Client) GetMessage(ctx context.Context, id int) (*types.Response[*models.Message], error) {
	return nil, nil
}

func getMessageRequest(id int) *transport.Request { return &transport.Request{} }
`

const fileB = `package chats

import (
	"context"
	"net/http"

	"example.com/client/models"
	"github.com/pachca/pachcagen/transport"
	"github.com/pachca/pachcagen/types"
	yaml "gopkg.in/yaml.v3"
)

func (c *Client) GetChat(ctx context.Context, id int) (*types.Response[*models.Chat], error) {
	_ = http.MethodGet
	_ = yaml.Marshal
	return nil, nil
}
`

func extractAll(t *testing.T, files ...string) ([]extract.Function, []extract.Import) {
	t.Helper()
	var fns []extract.Function
	var imps []extract.Import
	for i, src := range files {
		res, err := extract.Source(string(rune('a'+i))+".go", []byte(src))
		require.NoError(t, err)
		fns = append(fns, res.Functions...)
		imps = append(imps, res.Imports...)
	}
	return fns, imps
}

func TestRender_DeduplicatesAndGroupsImports(t *testing.T) {
	t.Parallel()
	fns, imps := extractAll(t, fileA, fileB)
	out, err := Render(fns, imps, Options{Package: "pachca", TransportImport: transportPath, Header: "// Code generated. DO NOT EDIT."})
	require.NoError(t, err)
	src := string(out)

	assert.Equal(t, 1, strings.Count(src, `"example.com/client/models"`), "models import appears once")
	assert.Equal(t, 1, strings.Count(src, `"context"`))
	assert.Equal(t, 1, strings.Count(src, `"github.com/pachca/pachcagen/types"`))
	assert.Equal(t, 1, strings.Count(src, `"`+transportPath+`"`), "transport import appears once")

	order := []string{
		`"example.com/client/models"`,
		`"context"`,
		`"net/http"`,
		`"github.com/pachca/pachcagen/types"`,
		`import yaml "gopkg.in/yaml.v3"`,
		`import "` + transportPath + `"`,
		"type Client struct",
		"func NewClient(token string, opts ...transport.Option) *Client",
		"// GetMessage fetches one message.\nfunc (c *Client) GetMessage(",
		"func getMessageRequest(",
		"func (c *Client) GetChat(",
	}
	last := -1
	for _, want := range order {
		i := strings.Index(src, want)
		require.GreaterOrEqual(t, i, 0, "missing %q in:\n%s", want, src)
		assert.Greater(t, i, last, "%q out of order", want)
		last = i
	}
	assert.True(t, strings.HasPrefix(src, "// Code generated. DO NOT EDIT.\n\npackage pachca\n"))

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "client.go", out, parser.ImportsOnly)
	require.NoError(t, err)
	assert.Len(t, f.Imports, 6)
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()
	fns, imps := extractAll(t, fileA, fileB)
	first, err := Render(fns, imps, Options{Package: "pachca", TransportImport: transportPath})
	require.NoError(t, err)

	reversed := make([]extract.Import, len(imps))
	for i, imp := range imps {
		reversed[len(imps)-1-i] = imp
	}
	second, err := Render(fns, reversed, Options{Package: "pachca", TransportImport: transportPath})
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRender_TransportAlias(t *testing.T) {
	t.Parallel()
	src := `package x

import tr "github.com/pachca/pachcagen/transport"

func build() *tr.Request { return nil }
`
	fns, imps := extractAll(t, src)
	out, err := Render(fns, imps, Options{Package: "x", TransportImport: transportPath})
	require.NoError(t, err)
	assert.Contains(t, string(out), `import tr "`+transportPath+`"`)
	assert.Contains(t, string(out), "*tr.Client")

	other := `package y

import tp "github.com/pachca/pachcagen/transport"

func other() *tp.Request { return nil }
`
	fns, imps = extractAll(t, src, other)
	_, err = Render(fns, imps, Options{Package: "x", TransportImport: transportPath})
	assert.Error(t, err)
}

func TestRender_MixedTransportBindings(t *testing.T) {
	t.Parallel()
	plain := `package x

import "github.com/pachca/pachcagen/transport"

func build() *transport.Request { return nil }
`
	aliased := `package y

import tr "github.com/pachca/pachcagen/transport"

func other() *tr.Request { return nil }
`
	for _, order := range [][]string{{plain, aliased}, {aliased, plain}} {
		fns, imps := extractAll(t, order...)
		_, err := Render(fns, imps, Options{Package: "x", TransportImport: transportPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transport imported as both")
	}

	named := `package z

import transport "github.com/pachca/pachcagen/transport"

func third() *transport.Request { return nil }
`
	fns, imps := extractAll(t, plain, named)
	out, err := Render(fns, imps, Options{Package: "x", TransportImport: transportPath})
	require.NoError(t, err)
	assert.Contains(t, string(out), "*transport.Client")
}

func TestRender_Conflicts(t *testing.T) {
	t.Parallel()
	fns, imps := extractAll(t, fileA, fileA)
	_, err := Render(fns, imps, Options{Package: "pachca", TransportImport: transportPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.GetMessage")

	_, err = Render(nil, []extract.Import{
		{Category: extract.Models, Path: "example.com/a/models"},
		{Category: extract.Models, Path: "example.com/b/models"},
	}, Options{Package: "pachca", TransportImport: transportPath})
	assert.Error(t, err)

	_, err = Render(nil, nil, Options{TransportImport: transportPath})
	assert.Error(t, err)
	_, err = Render(nil, nil, Options{Package: "p"})
	assert.Error(t, err)
}
