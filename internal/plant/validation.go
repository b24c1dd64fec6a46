package plant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Request body field names.
const (
	fieldName  = "name"
	fieldImage = "image"
	fieldPrice = "price"
)

var jsonNull = []byte("null")

// DecodeInput reads a JSON object from r and returns the validated fields.
//
// Guard order:
//  1. The body must be present and be a single JSON object.
//  2. name, image and price must each be present and not null; name and
//     image must also be non-blank.
//  3. name and image must be strings and price a number.
//
// Unknown fields, including "id", are ignored.
//
// Returns:
//   - Input: validated fields, zero value on error
//   - error: *ValidationError (wrapping ErrValidation) describing the first failure
func DecodeInput(r io.Reader) (Input, error) {
	body, err := decodeObject(r)
	if err != nil {
		return Input{}, err
	}

	for _, field := range []string{fieldName, fieldImage, fieldPrice} {
		if isAbsent(body[field]) {
			return Input{}, missingField(field)
		}
	}

	var in Input
	if err := decodeString(body, fieldName, &in.Name); err != nil {
		return Input{}, err
	}
	if err := decodeString(body, fieldImage, &in.Image); err != nil {
		return Input{}, err
	}
	if err := json.Unmarshal(body[fieldPrice], &in.Price); err != nil {
		return Input{}, invalidType(fieldPrice, "a number")
	}

	return in, nil
}

// decodeObject reads exactly one JSON value from r and requires it to be an
// object (or null, which is treated as an empty object).
func decodeObject(r io.Reader) (map[string]json.RawMessage, error) {
	if r == nil {
		return nil, &ValidationError{Kind: KindEmptyBody, Message: msgMissingFields}
	}

	dec := json.NewDecoder(r)
	var body map[string]json.RawMessage
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Kind: KindEmptyBody, Message: msgMissingFields}
		}
		return nil, &ValidationError{Kind: KindMalformed, Message: msgInvalidJSON}
	}

	// Trailing data after the object makes the body ambiguous.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Kind: KindMalformed, Message: msgInvalidJSON}
	}

	return body, nil
}

// decodeString unmarshals body[field] into dst and rejects blank strings.
func decodeString(body map[string]json.RawMessage, field string, dst *string) error {
	if err := json.Unmarshal(body[field], dst); err != nil {
		return invalidType(field, "a string")
	}
	if strings.TrimSpace(*dst) == "" {
		return missingField(field)
	}
	return nil
}

// isAbsent reports whether a raw field value is missing or JSON null.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Field: field, Message: msgMissingFields}
}

func invalidType(field, want string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidType,
		Field:   field,
		Message: fmt.Sprintf("Invalid value for field %s: must be %s", field, want),
	}
}
