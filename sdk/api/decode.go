package api

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// The backend is inconsistent about response shapes. Depending on the
// endpoint (and on its version), a list comes back either as a bare array or
// wrapped in an object under a named field, and a single entity comes back
// either bare or wrapped. These two functions are the only place that deals
// with that; everything above them sees plain Go values.

// listDecoder returns a decode function that fills out (a pointer to a slice)
// from either `[...]` or `{"<field>": [...]}`. A wrapper that reports
// `"success": false` without the field decodes as an empty list.
func listDecoder(field string, out interface{}) func([]byte) error {
	return func(body []byte) error {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 {
			return errors.New("empty response body")
		}
		if trimmed[0] == '[' {
			return json.Unmarshal(trimmed, out)
		}
		wrapper := map[string]json.RawMessage{}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		if raw, ok := wrapper[field]; ok {
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '[' {
				return json.Unmarshal(raw, out)
			}
			if bytes.Equal(raw, []byte("null")) {
				return nil
			}
			return errors.Errorf("field %q is not a list", field)
		}
		if raw, ok := wrapper["success"]; ok &&
			bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
			return nil
		}
		return errors.Errorf("response has neither a list nor a %q field", field)
	}
}

// itemDecoder returns a decode function that fills out (a pointer to a
// struct) from either `{...}` or `{"<field>": {...}}`. The wrapper form is
// only recognised when the named field holds an object, so an entity that
// happens to have a scalar field of the same name still decodes correctly.
func itemDecoder(field string, out interface{}) func([]byte) error {
	return func(body []byte) error {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return errors.New("response body is not an object")
		}
		wrapper := map[string]json.RawMessage{}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		if raw, ok := wrapper[field]; ok {
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '{' {
				return json.Unmarshal(raw, out)
			}
		}
		return json.Unmarshal(trimmed, out)
	}
}

// objectDecoder decodes a plain JSON object into out.
func objectDecoder(out interface{}) func([]byte) error {
	return func(body []byte) error {
		return json.Unmarshal(body, out)
	}
}
