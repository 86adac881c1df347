package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-json-experiment/json/jsontext"
)

// Extra holds object members a model does not declare, in the order they
// were read. The zero value is empty and ready to use.
type Extra struct {
	keys   []string
	values map[string]jsontext.Value
}

// Len returns the number of members.
func (e *Extra) Len() int { return len(e.keys) }

// Keys returns the member names in order.
func (e *Extra) Keys() []string { return slices.Clone(e.keys) }

// Get returns the raw JSON value of key.
func (e *Extra) Get(key string) (jsontext.Value, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Decode unmarshals the value of key into v.
func (e *Extra) Decode(key string, v any) error {
	raw, ok := e.values[key]
	if !ok {
		return fmt.Errorf("types: no additional property %q", key)
	}
	return json.Unmarshal(raw, v)
}

// Set stores v under key, keeping the position of an existing key.
func (e *Extra) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e.setRaw(key, jsontext.Value(raw))
	return nil
}

// Delete removes key.
func (e *Extra) Delete(key string) {
	if _, ok := e.values[key]; !ok {
		return
	}
	delete(e.values, key)
	e.keys = slices.DeleteFunc(e.keys, func(k string) bool { return k == key })
}

func (e *Extra) setRaw(key string, v jsontext.Value) {
	if e.values == nil {
		e.values = map[string]jsontext.Value{}
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = v
}

// MarshalWithExtra encodes v, which must encode as a JSON object, and
// appends the members of extra that v does not already carry.
func MarshalWithExtra(v any, extra Extra) ([]byte, error) {
	known, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if extra.Len() == 0 {
		return known, nil
	}

	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	seen := map[string]bool{}
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return nil, err
	}
	err = eachMember(known, func(name string, value jsontext.Value) error {
		seen[name] = true
		return writeMember(enc, name, value)
	})
	if err != nil {
		return nil, err
	}
	for _, name := range extra.keys {
		if seen[name] {
			continue
		}
		if err := writeMember(enc, name, extra.values[name]); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// UnmarshalWithExtra decodes data into v and returns the members whose
// names are not listed in known.
func UnmarshalWithExtra(data []byte, v any, known ...string) (Extra, error) {
	var extra Extra
	if err := json.Unmarshal(data, v); err != nil {
		return extra, err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return extra, nil
	}
	err := eachMember(data, func(name string, value jsontext.Value) error {
		if !slices.Contains(known, name) {
			extra.setRaw(name, value.Clone())
		}
		return nil
	})
	return extra, err
}

func eachMember(data []byte, fn func(string, jsontext.Value) error) error {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("types: expected a JSON object, got %v", tok.Kind())
	}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		name := tok.String()
		value, err := dec.ReadValue()
		if err != nil {
			return err
		}
		if err := fn(name, value); err != nil {
			return err
		}
	}
	_, err = dec.ReadToken()
	return err
}

func writeMember(enc *jsontext.Encoder, name string, value jsontext.Value) error {
	if err := enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	return enc.WriteValue(value)
}
