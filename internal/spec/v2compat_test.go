package spec

import (
	"strings"
	"testing"
)

func TestRepairSwagger2_MultipleBodiesMerged(t *testing.T) {
	t.Parallel()
	in := []byte(`swagger: "2.0"
info: { title: t, version: "1.0.0" }
paths:
  /messages:
    post:
      parameters:
      - in: body
        name: content
        required: true
        schema: { type: string }
      - in: body
        name: chat_id
        schema: { type: integer }
      - in: query
        name: silent
        type: boolean
      responses: { '200': { description: ok } }
`)
	out, changed, err := repairSwagger2(in)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	s := string(out)
	if strings.Count(s, "in: body") != 1 || !strings.Contains(s, "name: body") {
		t.Fatalf("expected one merged body parameter, got:\n%s", s)
	}
	if !strings.Contains(s, "chat_id:") || !strings.Contains(s, "- content") {
		t.Fatalf("expected merged properties with content required, got:\n%s", s)
	}
	if !strings.Contains(s, "name: silent") {
		t.Fatalf("expected the query parameter to survive, got:\n%s", s)
	}
}

func TestRepairSwagger2_BodyAndFormData(t *testing.T) {
	t.Parallel()
	in := []byte(`swagger: "2.0"
info: { title: t, version: "1.0.0" }
paths:
  /uploads:
    post:
      parameters:
      - in: body
        name: meta
        schema: { $ref: "#/definitions/Meta" }
      - in: formData
        name: file
        type: file
        required: true
      responses: { '200': { description: ok } }
definitions:
  Meta: { type: object }
`)
	out, changed, err := repairSwagger2(in)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	s := string(out)
	if strings.Contains(s, "in: body") {
		t.Fatalf("expected no body parameters after conversion, got:\n%s", s)
	}
	if !strings.Contains(s, "multipart/form-data") {
		t.Fatalf("expected multipart consumes, got:\n%s", s)
	}
}

func TestRepairSwagger2_CompliantUntouched(t *testing.T) {
	t.Parallel()
	in := []byte(`swagger: "2.0"
info: { title: t, version: "1.0.0" }
paths:
  /messages:
    post:
      parameters:
      - in: body
        name: body
        schema: { type: object }
      responses: { '200': { description: ok } }
`)
	out, changed, err := repairSwagger2(in)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if changed || string(out) != string(in) {
		t.Fatalf("expected input returned untouched")
	}

	if _, _, err := repairSwagger2([]byte("paths: [")); err == nil {
		t.Fatalf("expected a parse error")
	}
}
