// Package jsonutil holds the JSON helpers used to talk to qTest. There are two tiers: strict functions that return
// errors (ParseTree, Decode) and lenient ones that log a warning and fall back to a default (ReadTree, FromJSON, ToJSON,
// the Get* helpers). Remote responses are loosely structured, so most callers want the lenient tier.
package jsonutil

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

// Codec parses and serializes JSON. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	log      *zap.SugaredLogger
	location *time.Location
}

// New returns a codec that logs to log. Timestamps without a zone are read as UTC.
func New(log *zap.SugaredLogger) *Codec {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Codec{log: log, location: time.UTC}
}

// NewNode returns an empty object node.
func (c *Codec) NewNode() *Node {
	return &Node{value: map[string]any{}}
}

// ParseTree parses text into a Node. Blank text is not an error: it yields a nil node.
func (c *Codec) ParseTree(text string) (*Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var value any
	if err := decodeStrict(text, &value); err != nil {
		return nil, err
	}

	return &Node{value: value}, nil
}

// ReadTree is the lenient version of ParseTree. Malformed JSON is logged and yields a nil node.
func (c *Codec) ReadTree(text string) *Node {
	node, err := c.ParseTree(text)
	if err != nil {
		c.log.Warnf("unable to read JSON tree from body: %s", err)
		return nil
	}

	return node
}

// Decode strictly decodes text into a new T. Blank text and a JSON null yield (nil, nil). Unknown fields are ignored.
func Decode[T any](c *Codec, text string) (*T, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var target *T
	if err := decodeStrict(text, &target); err != nil {
		return nil, err
	}

	return target, nil
}

// FromJSON is the lenient version of Decode: malformed text or a shape mismatch is logged and yields nil.
func FromJSON[T any](c *Codec, text string) *T {
	target, err := Decode[T](c, text)
	if err != nil {
		c.log.Warnf("unable to map JSON to %s: %s", reflect.TypeOf((*T)(nil)).Elem(), err)
		return nil
	}

	return target
}

// ToJSON serializes value. A nil value yields "". Serialization never fails: errors are logged and yield "".
func (c *Codec) ToJSON(value any) string {
	if isNil(value) {
		return ""
	}

	buf, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("unable to serialize %T to JSON: %s", value, err)
		return ""
	}

	return string(buf)
}

// ToNode converts value into an object node. Nil values and values that don't serialize to a JSON object yield an
// empty object node.
func (c *Codec) ToNode(value any) *Node {
	if isNil(value) {
		return c.NewNode()
	}

	buf, err := json.Marshal(value)
	if err != nil {
		return c.NewNode()
	}

	node, err := c.ParseTree(string(buf))
	if err != nil || !node.IsObject() {
		return c.NewNode()
	}

	return node
}

func decodeStrict(text string, target any) error {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		return errors.NewInputError("unable to parse JSON: %s", err)
	}

	if _, err := decoder.Token(); err != io.EOF {
		return errors.NewInputError("unable to parse JSON: unexpected data after top-level value")
	}

	return nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
