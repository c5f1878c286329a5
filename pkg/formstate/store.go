package formstate

import (
	"fmt"
	"strconv"
	"strings"
)

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value at path, creating intermediate maps and growing
// slices when a numeric segment points past the end.
func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("formstate: root map is nil")
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("formstate: empty segment in path %q", path)
		}
	}
	if _, err := strconv.Atoi(segments[0]); err == nil {
		return fmt.Errorf("formstate: path %q must start with a field name", path)
	}

	_, err := setIn(root, segments, value, path)
	return err
}

// setIn returns the container with value written under segments. Slices may
// be reallocated, so callers store the returned node back into the parent.
func setIn(node any, segments []string, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment := segments[0]

	if idx, err := strconv.Atoi(segment); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("formstate: negative index in path %q", path)
		}
		list, _ := node.([]any)
		if len(list) <= idx {
			list = append(list, make([]any, idx+1-len(list))...)
		}
		child, err := setIn(containerFor(list[idx], segments[1:]), segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		list[idx] = child
		return list, nil
	}

	object, ok := node.(map[string]any)
	if !ok || object == nil {
		object = make(map[string]any)
	}
	child, err := setIn(containerFor(object[segment], segments[1:]), segments[1:], value, path)
	if err != nil {
		return nil, err
	}
	object[segment] = child
	return object, nil
}

func containerFor(existing any, rest []string) any {
	if len(rest) == 0 {
		return existing
	}
	if _, err := strconv.Atoi(rest[0]); err == nil {
		if list, ok := existing.([]any); ok {
			return list
		}
		return []any(nil)
	}
	if object, ok := existing.(map[string]any); ok {
		return object
	}
	return map[string]any(nil)
}

// DisplayValue converts a stored value into the string a text control shows.
// NaN numbers (the "not entered yet" sentinel) display as "".
func DisplayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v != v {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		f := float64(v)
		if f != f {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return v != v
	case float32:
		return v != v
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+".")
}

// splitIndexed splits "playlists.2.link" for array path "playlists" into
// (2, "link", true).
func splitIndexed(path, arrayPath string) (int, string, bool) {
	if !strings.HasPrefix(path, arrayPath+".") {
		return 0, "", false
	}
	rest := strings.TrimPrefix(path, arrayPath+".")
	head, tail, _ := strings.Cut(rest, ".")
	idx, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", false
	}
	return idx, tail, true
}

func indexedPath(arrayPath string, index int, tail string) string {
	out := arrayPath + "." + strconv.Itoa(index)
	if tail != "" {
		out += "." + tail
	}
	return out
}

// shiftAfterRemove drops entries under arrayPath.index and renumbers the
// entries of later rows so they follow the removed row's slice shift.
func shiftAfterRemove[V any](entries map[string]V, arrayPath string, index int) map[string]V {
	if len(entries) == 0 {
		return entries
	}
	out := make(map[string]V, len(entries))
	for path, value := range entries {
		idx, tail, ok := splitIndexed(path, arrayPath)
		switch {
		case !ok:
			out[path] = value
		case idx == index:
			continue
		case idx > index:
			out[indexedPath(arrayPath, idx-1, tail)] = value
		default:
			out[path] = value
		}
	}
	return out
}
