package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/pachca/pachcagen/types"
)

// Request describes one API call before it is bound to a Client.
type Request struct {
	Method     string
	Path       string
	PathParams map[string]any
	Query      Query
	// JSON is encoded as the request body unless nil or a nil pointer.
	JSON any
	// Multipart is encoded as multipart/form-data under the same rule.
	// JSON wins if both are set.
	Multipart any
	Headers   map[string]string
}

// Field is one query parameter. Nil values and nil pointers are dropped.
type Field struct {
	Name  string
	Value any
}

// Query is an ordered list of query parameters.
type Query []Field

// Encode renders q in declaration order, dereferencing pointers and
// expanding slices into repeated keys.
func (q Query) Encode() string {
	var parts []string
	for _, f := range q {
		v, ok := deref(f.Value)
		if !ok {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				parts = append(parts, url.QueryEscape(f.Name)+"="+url.QueryEscape(fmt.Sprint(rv.Index(i).Interface())))
			}
			continue
		}
		parts = append(parts, url.QueryEscape(f.Name)+"="+url.QueryEscape(fmt.Sprint(v)))
	}
	return strings.Join(parts, "&")
}

func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// ExpandPath substitutes every {name} placeholder in path with the escaped
// value of params[name].
func ExpandPath(path string, params map[string]any) (string, error) {
	var b strings.Builder
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			b.WriteString(path)
			return b.String(), nil
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in %q", path)
		}
		name := path[open+1 : open+end]
		raw, ok := deref(params[name])
		if !ok {
			return "", fmt.Errorf("missing path parameter %q", name)
		}
		b.WriteString(path[:open])
		b.WriteString(url.PathEscape(fmt.Sprint(raw)))
		path = path[open+end+1:]
	}
}

func (r *Request) body() ([]byte, string, error) {
	if v, ok := deref(r.JSON); ok {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
	if v, ok := deref(r.Multipart); ok {
		return encodeMultipart(v)
	}
	return nil, "", nil
}

// encodeMultipart writes the members of v's JSON object form as form
// fields, in the order they are encoded. Strings are written as they are,
// other values as JSON. Members holding a types.File become file parts.
func encodeMultipart(v any) ([]byte, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	files := formFiles(v)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	dec := jsontext.NewDecoder(bytes.NewReader(data))
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, "", err
	}
	if tok.Kind() != '{' {
		return nil, "", fmt.Errorf("multipart body must encode as an object, got %v", tok.Kind())
	}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, "", err
		}
		name := tok.String()
		value, err := dec.ReadValue()
		if err != nil {
			return nil, "", err
		}
		if f, ok := files[name]; ok {
			if err := writeFile(w, name, f); err != nil {
				return nil, "", err
			}
			continue
		}
		field := string(value)
		switch value.Kind() {
		case 'n':
			continue
		case '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, "", err
			}
			field = s
		}
		if err := w.WriteField(name, field); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// formFiles collects the types.File members of a struct, keyed by JSON
// member name, or of a map with string keys.
func formFiles(v any) map[string]*types.File {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	files := map[string]*types.File{}
	add := func(name string, fv reflect.Value) {
		if !fv.IsValid() || !fv.CanInterface() {
			return
		}
		switch f := fv.Interface().(type) {
		case types.File:
			files[name] = &f
		case *types.File:
			if f != nil {
				files[name] = f
			}
		}
	}
	switch rv.Kind() {
	case reflect.Struct:
		rt := rv.Type()
		for i := range rt.NumField() {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			add(name, rv.Field(i))
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		for it := rv.MapRange(); it.Next(); {
			add(it.Key().String(), it.Value())
		}
	}
	return files
}

func writeFile(w *multipart.Writer, field string, f *types.File) error {
	if f.Content == nil {
		return nil
	}
	name := f.Name
	if name == "" {
		name = field
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%s; filename=%s`, quoteParam(field), quoteParam(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f.Content)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func quoteParam(s string) string { return `"` + quoteEscaper.Replace(s) + `"` }
