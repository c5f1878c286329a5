package formstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotArray is returned when an array operation targets a path that
	// holds something other than a list.
	ErrNotArray = errors.New("formstate: path is not an array")
	// ErrIndexOutOfRange is returned by RemoveArrayItem for invalid indices.
	ErrIndexOutOfRange = errors.New("formstate: index out of range")
)

// ValidationError reports the field errors that blocked a submit, keyed by
// dotted path.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "formstate: validation failed"
	}
	return fmt.Sprintf("formstate: validation failed: %s", strings.Join(e.Paths(), ", "))
}

// Paths returns the failing paths sorted.
func (e *ValidationError) Paths() []string {
	if e == nil {
		return nil
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Message returns the first message recorded for path.
func (e *ValidationError) Message(path string) string {
	if e == nil {
		return ""
	}
	if messages := e.Fields[path]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
