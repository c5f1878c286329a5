package render

import (
	"strings"

	"github.com/goliatone/go-curatorform/pkg/model"
)

// ErrorMapping splits an error payload into field messages keyed by dotted
// form path ("playlists.0.link") and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload sorts server-side errors onto the field paths of form. Keys
// may be dotted paths ("playlists.0.link"), bracketed ("socialLinks[1].link")
// or JSON pointers ("/email"). A key naming a sub-path of a field lands on that
// field; keys that match no field, and the "" or "form" keys, become
// form-level messages.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	fields := make(map[string]bool)
	for _, field := range form.Fields() {
		fields[field.Name] = true
	}

	for key, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		path := fieldForKey(key, fields)
		if path == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}
	for path, messages := range mapping.Fields {
		mapping.Fields[path] = normalizeMessages(messages)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}

// fieldForKey returns the longest field path that prefixes key, or "".
func fieldForKey(key string, fields map[string]bool) string {
	key = strings.TrimSpace(key)
	if strings.EqualFold(key, "form") {
		return ""
	}
	key = strings.NewReplacer("[", ".", "]", "", "/", ".").Replace(key)
	segments := strings.FieldsFunc(key, func(r rune) bool { return r == '.' })
	for end := len(segments); end > 0; end-- {
		if path := strings.Join(segments[:end], "."); fields[path] {
			return path
		}
	}
	return ""
}
