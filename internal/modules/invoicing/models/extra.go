package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds the keys of a stored record that the model does not declare.
// They are written back unchanged so rewriting a collection never drops them.
type Extra map[string]json.RawMessage

// jsonKeys lists the JSON names declared by the struct type of v
func jsonKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = true
	}
	return keys
}

// splitExtra returns the keys of the JSON object b that are not in known.
// It returns nil when b is not an object or has no unknown keys.
func splitExtra(b []byte, known map[string]bool) Extra {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	for k := range raw {
		if known[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return Extra(raw)
}

// mergeExtra adds extra keys to the encoded object b. Declared fields win.
func mergeExtra(b []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return b, nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}
