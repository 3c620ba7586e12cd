package jsonutil

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Node is a decoded JSON value of any shape. A nil *Node stands for "no value" and is safe to call methods on.
type Node struct {
	value any
}

// Get returns the member called field of an object node. It returns nil if n is nil, not an object, or the member is
// absent or null.
func (n *Node) Get(field string) *Node {
	if n == nil {
		return nil
	}

	object, ok := n.value.(map[string]any)
	if !ok {
		return nil
	}

	value, ok := object[field]
	if !ok || value == nil {
		return nil
	}

	return &Node{value: value}
}

// Index returns the i-th element of an array node, or nil.
func (n *Node) Index(i int) *Node {
	if n == nil {
		return nil
	}

	array, ok := n.value.([]any)
	if !ok || i < 0 || i >= len(array) || array[i] == nil {
		return nil
	}

	return &Node{value: array[i]}
}

// Len is the number of elements of an array node or members of an object node.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}

	switch v := n.value.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	default:
		return 0
	}
}

// Set adds or replaces a member of an object node and returns the node. It is a no-op on anything else.
func (n *Node) Set(field string, value any) *Node {
	if n == nil {
		return nil
	}

	if object, ok := n.value.(map[string]any); ok {
		object[field] = value
	}

	return n
}

// IsObject reports whether n is a JSON object.
func (n *Node) IsObject() bool {
	if n == nil {
		return false
	}

	_, ok := n.value.(map[string]any)
	return ok
}

// Value returns the underlying decoded value. Numbers are json.Number.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}

	return n.value
}

// Text returns the value as text. Strings are returned as is, numbers and booleans in their JSON form. Objects,
// arrays and nil nodes yield "".
func (n *Node) Text() string {
	if n == nil {
		return ""
	}

	switch n.value.(type) {
	case map[string]any, []any:
		return ""
	}

	return cast.ToString(n.value)
}

// Int returns the value as an int, truncating fractions. Non-numeric values yield 0.
func (n *Node) Int() int {
	return int(n.Long())
}

// Long returns the value as an int64, truncating fractions. Non-numeric values yield 0.
func (n *Node) Long() int64 {
	if n == nil {
		return 0
	}

	switch v := n.value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		f, err := v.Float64()
		if err != nil {
			return 0
		}

		return truncate(f)
	case string:
		return parseLong(v)
	case map[string]any, []any:
		return 0
	default:
		return cast.ToInt64(v)
	}
}

// parseLong reads decimal text only: "010" is 10 and "0x10" is not a number. Fractions are truncated.
func parseLong(text string) int64 {
	text = strings.TrimSpace(text)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}

	if strings.ContainsAny(text, "xX_") {
		return 0
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	return truncate(f)
}

// truncate drops the fraction of f, saturating at the int64 bounds. NaN and infinities yield 0.
func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// MarshalJSON encodes the node's value.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}

	return json.Marshal(n.value)
}

// GetText returns the text of node's member field, or "" if node or the member is missing.
func GetText(node *Node, field string) string {
	return node.Get(field).Text()
}

// GetInt returns node's member field as an int, or 0 if node or the member is missing.
func GetInt(node *Node, field string) int {
	return node.Get(field).Int()
}

// GetLong returns node's member field as an int64, or 0 if node or the member is missing.
func GetLong(node *Node, field string) int64 {
	return node.Get(field).Long()
}
