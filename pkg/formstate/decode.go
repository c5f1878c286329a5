package formstate

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecoderConfig returns the mapstructure configuration used to turn
// controller values into typed structs: json tag names, weak typing for
// posted strings, and blank strings decoding to NaN for float fields.
func DecoderConfig(result any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       blankToNaNHook,
	}
}

// Decode converts a values snapshot into T.
func Decode[T any](values map[string]any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(DecoderConfig(&out))
	if err != nil {
		return out, fmt.Errorf("formstate: new decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return out, fmt.Errorf("formstate: decode: %w", err)
	}
	return out, nil
}

func blankToNaNHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Float64 && to.Kind() != reflect.Float32 {
		return data, nil
	}
	if from.Kind() != reflect.String {
		return data, nil
	}
	trimmed := strings.TrimSpace(reflect.ValueOf(data).String())
	if trimmed == "" {
		return math.NaN(), nil
	}
	return trimmed, nil
}
