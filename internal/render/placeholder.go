// Package render expands {dotted.key.path} placeholders in plain-text templates.
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Context is the nested data a template is rendered against.
// Nested maps are walked one path segment at a time.
type Context map[string]any

// tokenPattern matches a placeholder: braces around word characters, dots, hyphens and underscores.
var tokenPattern = regexp.MustCompile(`\{[\w.\-_]+\}`)

// Render replaces every placeholder in tmpl with the value found at its key path in ctx.
// Substituted values are inserted as literal text and are not expanded again.
// Unresolved placeholders are left in place during substitution and then removed,
// together with any placeholder-shaped text a substituted value carried in.
func Render(tmpl string, ctx Context) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tokenPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		value, ok := Lookup(ctx, token[1:len(token)-1])
		if !ok {
			return token
		}
		return value
	})
	return tokenPattern.ReplaceAllString(out, "")
}

// Lookup resolves a dotted key path against ctx and formats the leaf value as text.
// It reports false when a segment is missing or the path ends on a nested map.
func Lookup(ctx Context, path string) (string, bool) {
	var current any = map[string]any(ctx)
	for _, key := range strings.Split(path, ".") {
		node, ok := asMap(current)
		if !ok {
			return "", false
		}
		current, ok = node[key]
		if !ok {
			return "", false
		}
	}
	return format(current)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Context:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func format(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case fmt.Stringer:
		return val.String(), true
	case map[string]any, Context, map[string]string:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}
