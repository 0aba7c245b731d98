package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// SubmitInputFromJSON decodes a contact form body.
//
// An empty body decodes as an empty object. A field counts as missing when it
// is absent, null, false, 0 or "". Other non-string values are kept in their
// JSON text form. A body that is valid JSON but not an object yields an empty
// input. Invalid JSON returns *MalformedInputError.
func SubmitInputFromJSON(body []byte) (SubmitInput, error) {
	var in SubmitInput
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return in, &MalformedInputError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return in, &MalformedInputError{Err: errors.New("unexpected data after top-level JSON value")}
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return in, nil
	}
	in.Name, _ = fieldText(fields["name"])
	in.Message, _ = fieldText(fields["message"])
	if email, ok := fieldText(fields["email"]); ok {
		in.Email = &email
	}
	return in, nil
}

// fieldText converts a decoded JSON value to text. ok is false for values
// that count as missing.
func fieldText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case bool:
		if !x {
			return "", false
		}
		return "true", true
	case json.Number:
		if f, err := strconv.ParseFloat(x.String(), 64); err == nil && f == 0 {
			return "", false
		}
		return x.String(), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
