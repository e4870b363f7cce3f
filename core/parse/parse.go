package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrEmptyContent is returned by [ParseStringAs] when content holds no JSON
// value and T is not a map.
var ErrEmptyContent = errors.New("empty content")

// ParseStringAs parses tool arguments into T.
//
// Parsing is lenient, in this order:
//  1. strict JSON decode, keeping number literals as json.Number
//  2. on failure, repair the text with jsonrepair (single quotes, trailing
//     commas, unquoted keys, Python constants, truncated input) and retry
//  3. on failure, unwrap schema-like {"type": ..., "value": ...} envelopes
//     and retry
//
// Empty or whitespace-only content yields an empty map when T is a map type,
// and ErrEmptyContent otherwise.
//
// Example usage:
//
//	args, err := ParseStringAs[map[string]any](`{query: 'golang', max_results: 5,}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	if strings.TrimSpace(content) == "" {
		value := reflect.ValueOf(&result).Elem()
		if value.Kind() != reflect.Map {
			return result, ErrEmptyContent
		}
		value.Set(reflect.MakeMap(value.Type()))
		return result, nil
	}

	err := decodeExact(content, &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	result = *new(T)
	if err = decodeExact(repairedJSON, &result); err == nil {
		return result, nil
	}

	// Hosts occasionally send the schema shape instead of the data.
	if unwrapped, unwrapErr := unwrapSchemaValues(repairedJSON); unwrapErr == nil {
		result = *new(T)
		if unwrapErr = decodeExact(unwrapped, &result); unwrapErr == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repairedJSON)
}

// decodeExact decodes exactly one JSON value from content into v.
func decodeExact(content string, v any) error {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} object in
// jsonStr by its value.
//
// Example input:
//
//	{"query": {"type": "string", "value": "golang"}, "max_results": {"type": "number", "value": 5}}
//
// Example output:
//
//	{"max_results":5,"query":"golang"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(jsonStr)))
	decoder.UseNumber()

	var data any
	if err := decoder.Decode(&data); err != nil {
		return "", err
	}

	result, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}

		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
