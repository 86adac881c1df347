package goemitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pachca/pachcagen/internal/models"
	"github.com/pachca/pachcagen/internal/naming"
	"github.com/pachca/pachcagen/internal/spec"
)

type modelData struct {
	Header      string
	TypesImport string
	Name        string
	Doc         []string

	Enum     bool
	EnumType string
	Values   []enumValue

	Fields   []fieldData
	KnownVar string
	Known    []string
	UsesTime bool
}

type enumValue struct {
	Const   string
	Literal string
}

type fieldData struct {
	GoName string
	Type   string
	Tag    string
	Doc    []string
}

func newModelData(m *models.Model, header, typesImport string) modelData {
	d := modelData{
		Header:      header,
		TypesImport: typesImport,
		Name:        m.Name,
		Doc:         modelDoc(m),
	}
	if m.Kind == models.KindEnum {
		d.Enum = true
		d.EnumType = m.EnumType
		taken := map[string]bool{}
		for _, v := range m.Values {
			if v == nil {
				continue
			}
			name := naming.EnumConstant(m.Name, v)
			for i := 2; taken[name]; i++ {
				name = fmt.Sprintf("%s%d", naming.EnumConstant(m.Name, v), i)
			}
			taken[name] = true
			d.Values = append(d.Values, enumValue{Const: name, Literal: enumLiteral(m.EnumType, v)})
		}
		return d
	}

	d.KnownVar = naming.Unexported(m.Name) + "Fields"
	for _, f := range m.Fields {
		t := f.Type.GoType("")
		if f.Pointer() {
			t = "*" + t
		}
		tag := f.Name
		if !f.Required {
			tag += ",omitempty"
		}
		d.Fields = append(d.Fields, fieldData{GoName: f.GoName, Type: t, Tag: tag, Doc: comment(f.Description)})
		d.Known = append(d.Known, f.Name)
		d.UsesTime = d.UsesTime || f.Type.UsesTime()
	}
	return d
}

func modelDoc(m *models.Model) []string {
	first := fmt.Sprintf("// %s mirrors an inline schema.", m.Name)
	if m.Origin != "" {
		first = fmt.Sprintf("// %s mirrors %s.", m.Name, m.Origin)
	}
	doc := []string{first}
	if desc := comment(m.Description); len(desc) > 0 {
		doc = append(doc, "//")
		doc = append(doc, desc...)
	}
	return doc
}

func enumLiteral(goType string, v any) string {
	if goType == "string" {
		return strconv.Quote(fmt.Sprint(v))
	}
	return fmt.Sprint(v)
}

type clientData struct {
	Header          string
	Package         string
	Tag             string
	TransportImport string
}

type endpointData struct {
	Header          string
	Package         string
	ModelsImport    string
	TransportImport string
	TypesImport     string

	Name   string
	Lower  string
	Method string
	Verb   string
	Path   string
	Doc    []string

	PathParams  []paramData
	QueryParams []paramData
	BodyField   string

	// Params is the request builder parameter list, Signature the same list
	// after the context argument of the operation methods.
	Params    string
	Signature string
	Args      string
	CallArgs  string

	Responses []responseData
	Parsed    string
}

type paramData struct {
	Name string
	Wire string
	Type string
}

type responseData struct {
	Status  int
	Decode  bool
	GoType  string
	Pointer bool
}

var methodConsts = map[spec.HttpMethod]string{
	spec.GET:     "http.MethodGet",
	spec.POST:    "http.MethodPost",
	spec.PUT:     "http.MethodPut",
	spec.PATCH:   "http.MethodPatch",
	spec.DELETE:  "http.MethodDelete",
	spec.HEAD:    "http.MethodHead",
	spec.OPTIONS: "http.MethodOptions",
	spec.TRACE:   "http.MethodTrace",
}

func newEndpointData(op *spec.Operation, header string, paths importPaths) endpointData {
	d := endpointData{
		Header:          header,
		Package:         naming.Package(op.Tag),
		ModelsImport:    paths.models,
		TransportImport: paths.transport,
		TypesImport:     paths.types,
		Name:            naming.Exported(op.ID),
		Lower:           naming.Unexported(op.ID),
		Method:          methodConsts[op.Method],
		Verb:            strings.ToUpper(string(op.Method)),
		Path:            op.Path,
		Doc:             operationDoc(op),
	}
	if d.Method == "" {
		d.Method = strconv.Quote(d.Verb)
	}

	taken := map[string]bool{}
	unique := func(wire string) string {
		name := naming.Unexported(wire)
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s%d", naming.Unexported(wire), i)
		}
		taken[name] = true
		return name
	}

	var params []paramData
	for _, p := range op.PathParams {
		pd := paramData{Name: unique(p.Name), Wire: p.Name, Type: p.GoType}
		d.PathParams = append(d.PathParams, pd)
		params = append(params, pd)
	}
	if op.Body != nil {
		taken["body"] = true
		t := op.Body.GoType
		if op.Body.Model != "" {
			t = "*" + t
		}
		params = append(params, paramData{Name: "body", Type: t})
		d.BodyField = "JSON"
		if op.Body.ContentType == spec.ContentTypeMultipart {
			d.BodyField = "Multipart"
		}
	}
	for _, p := range op.QueryParams {
		t := p.GoType
		if !p.Required && !strings.HasPrefix(t, "[]") {
			t = "*" + t
		}
		pd := paramData{Name: unique(p.Name), Wire: p.Name, Type: t}
		d.QueryParams = append(d.QueryParams, pd)
		params = append(params, pd)
	}

	var decl, args []string
	for _, p := range params {
		decl = append(decl, p.Name+" "+p.Type)
		args = append(args, p.Name)
	}
	d.Params = strings.Join(decl, ", ")
	d.Args = strings.Join(args, ", ")
	if len(params) > 0 {
		d.Signature = ", " + d.Params
		d.CallArgs = ", " + d.Args
	}

	d.Responses, d.Parsed = dispatch(op.Responses)
	return d
}

// dispatch lists the dispatch cases and picks the parsed payload type:
// the single concrete type when every content-bearing response agrees,
// any otherwise.
func dispatch(responses []spec.Response) ([]responseData, string) {
	var out []responseData
	distinct := map[string]bool{}
	var only string
	for _, r := range responses {
		rd := responseData{Status: r.StatusCode}
		if r.HasContent() {
			rd.Decode = true
			rd.GoType = r.GoType
			rd.Pointer = r.Model != "" || isPrimitive(r.GoType)
			parsed := r.GoType
			if rd.Pointer {
				parsed = "*" + parsed
			}
			if !distinct[parsed] {
				distinct[parsed] = true
				only = parsed
			}
		}
		out = append(out, rd)
	}
	if len(distinct) != 1 {
		return out, "any"
	}
	return out, only
}

func isPrimitive(goType string) bool {
	switch goType {
	case "int", "int32", "int64", "float32", "float64", "bool", "string", "time.Time":
		return true
	}
	return false
}

func operationDoc(op *spec.Operation) []string {
	name := naming.Exported(op.ID)
	verb := strings.ToUpper(string(op.Method))
	doc := []string{fmt.Sprintf("// %s sends %s %s and returns the parsed payload, or nil for", name, verb, op.Path)}
	doc = append(doc, "// undocumented status codes.")
	text := op.Summary
	if op.Description != "" && op.Description != op.Summary {
		text = strings.TrimSpace(text + "\n\n" + op.Description)
	}
	if lines := comment(text); len(lines) > 0 {
		doc = append(doc, "//")
		doc = append(doc, lines...)
	}
	if op.Deprecated {
		doc = append(doc, "//", "// Deprecated: the API marks this operation as deprecated.")
	}
	return doc
}

// comment turns free text into // lines, dropping trailing blank lines.
func comment(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			out = append(out, "//")
			continue
		}
		out = append(out, "// "+line)
	}
	return out
}
