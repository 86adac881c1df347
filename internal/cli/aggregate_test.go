package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const endpointSrc = `package messages

import (
	"context"

	"example.com/app/pachca/models"
)

// GetMessage fetches one message.
func (c *Client) GetMessage(ctx context.Context, id int) (*models.Message, error) {
	return nil, nil
}
`

func writeEndpoints(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pkg := filepath.Join(dir, "api", "messages")
	if err := os.MkdirAll(pkg, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pkg, "get_message.go"), []byte(endpointSrc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dir
}

func TestAggregate_Stdout(t *testing.T) {
	t.Parallel()
	dir := writeEndpoints(t)

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"aggregate", "--dir", filepath.Join(dir, "api"), "--package", "pachca", "--out", "-"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	src := out.String()
	for _, want := range []string{
		"package pachca",
		`"example.com/app/pachca/models"`,
		"func NewClient(",
		"// GetMessage fetches one message.",
		"func (c *Client) GetMessage(ctx context.Context, id int) (*models.Message, error)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("aggregate output lacks %q:\n%s", want, src)
		}
	}
}

func TestAggregate_WritesFileAndSkipsItself(t *testing.T) {
	t.Parallel()
	dir := writeEndpoints(t)
	outPath := filepath.Join(dir, "api", "client.go")

	run := func(extra ...string) error {
		root := NewRootCmd()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs(append([]string{"aggregate", "--dir", filepath.Join(dir, "api"), "--package", "pachca", "--out", outPath}, extra...))
		return root.Execute()
	}
	if err := run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := run(); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error without --force, got %v", err)
	}
	// The previous aggregate sits inside --dir; it must not be merged again.
	if err := run("--force"); err != nil {
		t.Fatalf("forced run: %v", err)
	}
	second, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("aggregate changed between runs:\n%s\n---\n%s", first, second)
	}
}

func TestAggregate_RequiresDirAndPackage(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{
		{"aggregate", "--package", "pachca"},
		{"aggregate", "--dir", "."},
	} {
		root := NewRootCmd()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		if err := root.Execute(); !errors.Is(err, ErrUsage) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
	}
}
