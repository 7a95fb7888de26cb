// Package binding resolves ${path} references against document data.
package binding

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Resolve(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Resolve looks up a dotted path such as "items[0].name". Maps with string
// keys, slices, arrays and exported struct fields are traversed.
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// Items returns the elements of a list value, or false when v is not a list.
func Items(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Truthy 判断条件值：nil、false、0、空字符串与空集合为假。
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// Scope is the data visible to a part of a document: the document data
// plus names bound by enclosing loops. The document data is also reachable
// as "data".
type Scope struct {
	parent *Scope
	name   string
	value  any
}

// NewScope returns the root scope for data.
func NewScope(data any) *Scope {
	return &Scope{name: "data", value: data}
}

// With returns a child scope binding name to value.
func (s *Scope) With(name string, value any) *Scope {
	return &Scope{parent: s, name: name, value: value}
}

func (s *Scope) lookup(name string) (any, bool) {
	for c := s; c != nil; c = c.parent {
		if c.name == name {
			return c.value, true
		}
	}
	// fall back to top-level keys of the document data
	root := s
	for root.parent != nil {
		root = root.parent
	}
	return descendMap(root.value, name)
}

// Resolve looks up path in the scope.
func (s *Scope) Resolve(path string) (any, bool) {
	head, rest, _ := strings.Cut(path, ".")
	name, indexes := parseSegment(head)
	v, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	for _, idxStr := range indexes {
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil, false
		}
		if v, ok = descendArray(v, idx); !ok {
			return nil, false
		}
	}
	if rest == "" {
		return v, true
	}
	return Resolve(v, rest)
}

// Interpolate replaces ${path} references resolved in the scope.
func (s *Scope) Interpolate(text string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if val, ok := s.Resolve(path); ok && path != "" {
			return fmt.Sprint(val)
		}
		return match
	})
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	if m, ok := current.(map[string]any); ok {
		val, ok := m[key]
		return val, ok
	}
	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		f := rv.FieldByName(key)
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	items, ok := Items(current)
	if !ok || idx < 0 || idx >= len(items) {
		return nil, false
	}
	return items[idx], true
}
