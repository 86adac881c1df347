package pipeline

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pachca/pachcagen/internal/spec"
)

const doc = `
openapi: 3.0.3
info: {title: Pachca, version: "1"}
paths:
  /messages/{id}:
    get:
      operationId: getMessage
      tags: [Messages]
      parameters:
        - name: id
          in: path
          required: true
          schema: {type: integer}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: "#/components/schemas/MessageResponse"}
        "404":
          description: missing
          content:
            application/json:
              schema: {$ref: "#/components/schemas/Missing"}
  /profile:
    get:
      operationId: getProfile
      tags: [Common]
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  data:
                    type: object
                    properties:
                      id: {type: integer}
components:
  schemas:
    MessageResponse:
      type: object
      properties:
        data: {$ref: "#/components/schemas/Message"}
    Message:
      type: object
      required: [id]
      properties:
        id: {type: integer}
        content: {type: string}
    Missing:
      type: object
      properties:
        message: {type: string}
`

func newContext(t *testing.T, src string, logger *slog.Logger) *Context {
	t.Helper()
	d, err := spec.ParseDocument([]byte(src))
	require.NoError(t, err)
	return New(d, logger)
}

func TestRun_WritesAggregateAndModels(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	c := newContext(t, doc, slog.New(slog.NewTextHandler(&logs, nil)))
	dir := t.TempDir()

	res, err := Run(context.Background(), c, Config{OutDir: dir, ModulePath: "example.com/app/pachca"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Operations)
	assert.Equal(t, 5, res.Models)
	assert.Equal(t, ClientFile, res.Planned[0].RelPath)
	assert.Contains(t, logs.String(), "operations=2")

	client, err := os.ReadFile(filepath.Join(dir, ClientFile))
	require.NoError(t, err)
	src := string(client)
	assert.True(t, strings.HasPrefix(src, "// Code generated by pachcagen. DO NOT EDIT.\n\npackage pachca\n"))
	assert.Contains(t, src, `"example.com/app/pachca/models"`)
	assert.Contains(t, src, "func NewClient(token string, opts ...transport.Option) *Client")
	assert.Contains(t, src, "func (c *Client) GetMessage(ctx context.Context, id int) (any, error)")
	assert.Contains(t, src, "func (c *Client) GetProfile(ctx context.Context) (*models.GetProfileResponse200, error)")

	_, err = parser.ParseFile(token.NewFileSet(), ClientFile, client, parser.AllErrors)
	require.NoError(t, err)

	for _, rel := range []string{"message.go", "message_response.go", "missing.go", "get_profile_response_200.go", "get_profile_response_200_data.go"} {
		_, err := os.Stat(filepath.Join(dir, "models", rel))
		assert.NoError(t, err, rel)
	}
	_, err = os.Stat(filepath.Join(dir, "api"))
	assert.True(t, os.IsNotExist(err), "per-endpoint files stay in memory by default")
}

func TestRun_EmitEndpoints(t *testing.T) {
	t.Parallel()
	c := newContext(t, doc, nil)
	dir := t.TempDir()
	_, err := Run(context.Background(), c, Config{OutDir: dir, ModulePath: "example.com/app/pachca", Package: "client", EmitEndpoints: true})
	require.NoError(t, err)

	for _, rel := range []string{"api/messages/client.go", "api/messages/get_message.go", "api/common/get_profile.go"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
	client, err := os.ReadFile(filepath.Join(dir, ClientFile))
	require.NoError(t, err)
	assert.Contains(t, string(client), "package client")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()
	c := newContext(t, doc, nil)
	dir := t.TempDir()
	res, err := Run(context.Background(), c, Config{OutDir: dir, ModulePath: "example.com/app/pachca", DryRun: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Planned)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_ExistingClientWithoutForce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ClientFile), []byte("package pachca\n"), 0o600))

	_, err := Run(context.Background(), newContext(t, doc, nil), Config{OutDir: dir, ModulePath: "example.com/app/pachca"})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "models"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written when the run fails")

	_, err = Run(context.Background(), newContext(t, doc, nil), Config{OutDir: dir, ModulePath: "example.com/app/pachca", Force: true})
	require.NoError(t, err)
}

func TestRun_FatalOperationErrorFailsRun(t *testing.T) {
	t.Parallel()
	broken := strings.Replace(doc, "      parameters:\n        - name: id\n          in: path\n          required: true\n          schema: {type: integer}\n",
		"      parameters:\n        - $ref: \"#/components/parameters/missing\"\n", 1)
	dir := t.TempDir()
	_, err := Run(context.Background(), newContext(t, broken, nil), Config{OutDir: dir, ModulePath: "example.com/app/pachca"})
	require.Error(t, err)
	assert.ErrorIs(t, err, spec.ErrSchemaNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_InvalidPathPattern(t *testing.T) {
	t.Parallel()
	_, err := Run(context.Background(), newContext(t, doc, nil), Config{OutDir: t.TempDir(), ModulePath: "m", PathPatterns: []string{"("}})
	assert.Error(t, err)
}
