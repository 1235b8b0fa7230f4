package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSyntax means the input is not valid JSON.
	ErrSyntax = errors.New("invalid JSON")
	// ErrShape means the input is valid JSON but not an array of objects.
	ErrShape = errors.New("expected a JSON array of objects")
)

// DecodeArray parses a JSON array of objects, keeping the key order of
// every object. Duplicate keys inside one object keep their first position
// and take the last value. The non-finite literals NaN, Infinity and
// -Infinity are accepted as numbers; invalid UTF-8 and unpaired surrogate
// escapes are rejected.
func DecodeArray(data []byte) ([]*Record, error) {
	data, nonFinite, err := prescan(data)
	if err != nil {
		return nil, err
	}

	// Full validation up front so the token walk below only has to check shape.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	dec := &decoder{Decoder: json.NewDecoder(bytes.NewReader(data)), nonFinite: nonFinite}
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrShape, describe(tok))
	}

	records := []*Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("%w: element %d is %s", ErrShape, len(records), describe(tok))
		}
		r, err := dec.readObject()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

type decoder struct {
	*json.Decoder
	nonFinite map[int64]string
}

func (dec *decoder) readObject() (*Record, error) {
	r := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is %s", ErrSyntax, describe(tok))
		}
		v, err := dec.readValue()
		if err != nil {
			return nil, err
		}
		r.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return r, nil
}

func (dec *decoder) readValue() (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := dec.readObject()
			if err != nil {
				return Value{}, err
			}
			return Object(obj), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := dec.readValue()
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
			}
			return Array(items...), nil
		}
		return Value{}, fmt.Errorf("%w: unexpected %q", ErrSyntax, rune(t))
	case string:
		return String(t), nil
	case json.Number:
		if lit, ok := dec.nonFinite[dec.InputOffset()]; ok {
			return Number(lit), nil
		}
		return Number(string(t)), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrSyntax, tok)
}

func describe(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return "an object"
		}
		if t == '[' {
			return "an array"
		}
		return fmt.Sprintf("%q", rune(t))
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a bool"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", tok)
}
