package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errFormIDMissing       = errors.New("model: form id is required")
	errFormEndpointMissing = errors.New("model: form endpoint is required")
	errFormMethodMissing   = errors.New("model: form method is required")
)

// Validate checks the structural invariants renderers rely on: identity
// fields are present and every field path is unique.
func Validate(form FormModel) error {
	if strings.TrimSpace(form.ID) == "" {
		return errFormIDMissing
	}
	if strings.TrimSpace(form.Endpoint) == "" {
		return errFormEndpointMissing
	}
	if strings.TrimSpace(form.Method) == "" {
		return errFormMethodMissing
	}

	seen := make(map[string]struct{})
	for _, field := range form.Fields() {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return errors.New("model: field name is required")
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("model: duplicate field %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
