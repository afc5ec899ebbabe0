// Package jsonenc holds the JSON encoding shared by the json and jsonl codecs.
package jsonenc

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/tailscale/hujson"
)

// api encodes compactly with sorted map keys and decodes numbers as json.Number
// so Normalize can pick int or float64.
var api = newAPI()

func newAPI() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
	api.RegisterExtension(&floatExtension{})
	return api
}

// Marshal encodes v as compact JSON without a trailing newline.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Standardize converts HuJSON (comments, trailing commas) to standard JSON.
func Standardize(data []byte) ([]byte, error) {
	return hujson.Standardize(data)
}

// Decode decodes one JSON value into a generic value with normalized numbers.
// When lenient is set, comments and trailing commas are accepted.
func Decode(data []byte, lenient bool) (any, error) {
	if lenient {
		std, err := Standardize(data)
		if err != nil {
			return nil, err
		}
		data = std
	}
	var v any
	if err := api.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return Normalize(v), nil
}

// DecodeInto decodes one JSON value into v.
func DecodeInto(data []byte, v any, lenient bool) error {
	if lenient {
		std, err := Standardize(data)
		if err != nil {
			return err
		}
		data = std
	}
	return api.Unmarshal(data, v)
}

// Normalize replaces numbers in a decoded value: integral values become int,
// others float64. Integers outside the int range become float64.
func Normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		return number(string(val))
	case map[string]any:
		for k, item := range val {
			val[k] = Normalize(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = Normalize(item)
		}
		return val
	default:
		return v
	}
}

func number(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

// Error wraps a decode error with the path it came from.
func Error(path string, err error) error {
	return fmt.Errorf("decode json %q: %w", path, err)
}
