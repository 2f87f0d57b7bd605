package dividends

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// objectWriter builds a JSON object whose keys keep the order they were
// written in, so ledger lines stay stable and diff friendly.
// Its zero value is ready to use.
type objectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key-value pair. The value is marshaled with json.Marshal.
func (w *objectWriter) Append(key string, value any) *objectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal value for key %q: %w", key, err)
		return w
	}
	keyData, _ := json.Marshal(key)
	w.Write(keyData)
	w.WriteByte(':')
	w.Write(data)
	w.WriteByte(',')
	return w
}

// Optional appends the pair only if value is not the zero value of its type.
// Nil pointers are omitted too.
func (w *objectWriter) Optional(key string, value any) *objectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON wraps the content in braces.
func (w *objectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	out := make([]byte, 0, len(content)+2)
	out = append(out, '{')
	out = append(out, content...)
	out = append(out, '}')
	return out, nil
}
