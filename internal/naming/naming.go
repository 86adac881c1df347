// Package naming derives Go identifiers, model names and file names from
// the names found in an API description.
package naming

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are upper-cased as a whole when they form a word.
var initialisms = map[string]string{
	"Id":   "ID",
	"Ids":  "IDs",
	"Url":  "URL",
	"Uri":  "URI",
	"Http": "HTTP",
	"Api":  "API",
	"Json": "JSON",
	"Uuid": "UUID",
}

// Exported returns an exported Go identifier: "entity_id" -> "EntityID",
// "getMessage" -> "GetMessage", "sort[id]" -> "SortID".
func Exported(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		w = cases.Title(language.English, cases.NoLower).String(w)
		if up, ok := initialisms[w]; ok {
			w = up
		}
		b.WriteString(w)
	}
	out := b.String()
	if out == "" {
		return "X"
	}
	if !unicode.IsLetter(rune(out[0])) {
		out = "X" + out
	}
	return out
}

// Unexported returns an unexported Go identifier that is safe to use as a
// parameter name: "id" -> "id", "chat_id" -> "chatID", "type" -> "type_".
func Unexported(s string) string {
	e := Exported(s)
	lowered := false
	for _, up := range leadingInitialisms {
		if strings.HasPrefix(e, up) {
			e = strings.ToLower(up) + e[len(up):]
			lowered = true
			break
		}
	}
	if !lowered {
		e = strings.ToLower(e[:1]) + e[1:]
	}
	if token.Lookup(e).IsKeyword() || predeclared[e] {
		e += "_"
	}
	return e
}

// leadingInitialisms is ordered so that longer forms match first.
var leadingInitialisms = []string{"UUID", "HTTP", "JSON", "IDs", "URL", "URI", "API", "ID"}

var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "error": true, "false": true,
	"float64": true, "int": true, "int64": true, "nil": true, "string": true,
	"true": true, "ctx": true, "c": true, "r": true, "resp": true, "req": true,
	"err": true, "body": true, "out": true, "parsed": true,
}

// OperationID returns the operation identifier, deriving one from the
// method and path when the description does not declare it:
// GET /messages/{id} -> getMessagesId.
func OperationID(declared, method, path string) string {
	if strings.TrimSpace(declared) != "" {
		return declared
	}
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strcase.ToLowerCamel(strings.Join(parts, "_"))
}

// ResponseModel names the model of an inline response schema.
func ResponseModel(operationID string, status int) string {
	return fmt.Sprintf("%sResponse%d", Exported(operationID), status)
}

// BodyModel names the model of an inline request body schema.
func BodyModel(operationID string) string {
	return Exported(operationID) + "Body"
}

// Nested names a model synthesized for a property of parent.
func Nested(parent, property string) string {
	return parent + Exported(property)
}

// FileName returns the snake_case Go file name for an identifier.
func FileName(name string) string {
	return strcase.ToSnake(name) + ".go"
}

// Package returns a lower-case package name for a tag: "Common methods" -> "common_methods".
func Package(tag string) string {
	p := strings.ToLower(strcase.ToSnake(strings.TrimSpace(tag)))
	if p == "" {
		return "untagged"
	}
	// Tag packages must not look like the models or types packages to
	// extract.Categorize.
	if !unicode.IsLetter(rune(p[0])) || strings.HasPrefix(p, "models") || p == "types" {
		p = "api_" + p
	}
	if token.Lookup(p).IsKeyword() {
		p += "_"
	}
	return p
}

// EnumConstant names one value of an enum type: ("UserRole", "multi_guest") -> "UserRoleMultiGuest".
func EnumConstant(typeName string, value any) string {
	return typeName + Exported(fmt.Sprint(value))
}

func splitWords(s string) []string {
	snake := strcase.ToSnake(s)
	fields := strings.FieldsFunc(snake, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return fields
}
