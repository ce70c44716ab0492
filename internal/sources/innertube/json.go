package innertube

import (
	"slices"
	"strconv"
	"strings"
)

// node is one decoded JSON value. Responses are untyped: every access is guarded.
type node = any

// get walks m along keys. String keys index objects, int keys index arrays.
// Returns nil as soon as a step does not fit.
func get(v node, keys ...any) node {
	cur := v
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}
			cur = arr[key]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// str returns v as a string, or "" when it is not one.
func str(v node) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// text reads YouTube's text shapes: plain strings, {simpleText}, {runs:[{text}]} and {content}.
func text(v node) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s := str(t["simpleText"]); s != "" {
			return s
		}
		if s := str(t["content"]); s != "" {
			return s
		}
		if runs, ok := t["runs"].([]any); ok {
			var b strings.Builder
			for _, r := range runs {
				b.WriteString(str(get(r, "text")))
			}
			return b.String()
		}
	}
	return ""
}

// firstText returns the first non-empty text among candidates.
func firstText(candidates ...node) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(text(c)); s != "" {
			return s
		}
	}
	return ""
}

// list returns v as an array, or nil.
func list(v node) []any {
	arr, _ := v.([]any)
	return arr
}

// object returns v as an object, or nil.
func object(v node) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// walk visits every object in v depth first. Returning false from fn skips the object's children.
//
// Object keys are visited in sorted order so results do not depend on map iteration.
func walk(v node, fn func(m map[string]any) bool) {
	switch t := v.(type) {
	case map[string]any:
		if !fn(t) {
			return
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			walk(t[k], fn)
		}
	case []any:
		for _, child := range t {
			walk(child, fn)
		}
	}
}
