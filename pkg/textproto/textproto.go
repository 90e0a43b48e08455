// Package textproto reads protocol buffer text format documents without a
// schema.
//
// Font corpus descriptors (METADATA.pb) and language data files
// (*.textproto) are written in text format. Only a handful of their fields
// matter here, so instead of compiling message types the documents are
// parsed with txtpbfmt into a tree of named nodes and queried by name.
// Unknown fields are simply carried along.
//
// Scalars are returned as written, except string literals, which are
// unquoted and concatenated when adjacent (`name: "a" "b"`). Messages may
// use `{}` or `<>`; list values (`[1, 2]`, `[{...}, {...}]`) count as
// repeated fields.
package textproto

import (
	"fmt"
	"os"
	"strconv"

	"github.com/protocolbuffers/txtpbfmt/ast"
	"github.com/protocolbuffers/txtpbfmt/parser"
	"github.com/protocolbuffers/txtpbfmt/unquote"
)

// Message is a parsed text format message. Field order is preserved per
// name; repeated fields keep every occurrence.
type Message struct {
	fields map[string][]value
}

type value struct {
	scalar string
	msg    *Message
}

// SyntaxError reports a document that is not valid text format.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "syntax error: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

func newMessage() *Message {
	return &Message{fields: make(map[string][]value)}
}

func (m *Message) add(name string, v value) {
	m.fields[name] = append(m.fields[name], v)
}

// Has reports whether the field appears at least once.
func (m *Message) Has(name string) bool {
	return len(m.fields[name]) > 0
}

// Count returns the number of occurrences of a field.
func (m *Message) Count(name string) int {
	return len(m.fields[name])
}

// String returns the first scalar value of a field, or "" if absent.
func (m *Message) String(name string) string {
	for _, v := range m.fields[name] {
		if v.msg == nil {
			return v.scalar
		}
	}
	return ""
}

// Strings returns every scalar value of a repeated field.
func (m *Message) Strings(name string) []string {
	var out []string
	for _, v := range m.fields[name] {
		if v.msg == nil {
			out = append(out, v.scalar)
		}
	}
	return out
}

// Int returns the first scalar value of a field as an integer.
// An absent field yields 0 and no error.
func (m *Message) Int(name string) (int64, error) {
	s := m.String(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return n, nil
}

// Message returns the first nested message of a field, or nil if absent.
func (m *Message) Message(name string) *Message {
	for _, v := range m.fields[name] {
		if v.msg != nil {
			return v.msg
		}
	}
	return nil
}

// Messages returns every nested message of a repeated field.
func (m *Message) Messages(name string) []*Message {
	var out []*Message
	for _, v := range m.fields[name] {
		if v.msg != nil {
			out = append(out, v.msg)
		}
	}
	return out
}

// Parse parses a text format document.
func Parse(data []byte) (*Message, error) {
	nodes, err := parser.Parse(data)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return build(nodes)
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	msg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msg, nil
}

func build(nodes []*ast.Node) (*Message, error) {
	m := newMessage()
	for _, n := range nodes {
		if n.Deleted || n.IsCommentOnly() {
			continue
		}
		switch {
		case n.ValuesAsList:
			for _, v := range n.Values {
				s, err := scalar([]*ast.Value{v})
				if err != nil {
					return nil, fieldError(n.Name, err)
				}
				m.add(n.Name, value{scalar: s})
			}
		case n.ChildrenAsList:
			for _, c := range n.Children {
				if c.IsCommentOnly() {
					continue
				}
				sub, err := build(c.Children)
				if err != nil {
					return nil, err
				}
				m.add(n.Name, value{msg: sub})
			}
		case len(n.Values) > 0:
			s, err := scalar(n.Values)
			if err != nil {
				return nil, fieldError(n.Name, err)
			}
			m.add(n.Name, value{scalar: s})
		default:
			sub, err := build(n.Children)
			if err != nil {
				return nil, err
			}
			m.add(n.Name, value{msg: sub})
		}
	}
	return m, nil
}

// scalar returns the text of a value. String literals are unquoted and
// joined; anything else (numbers, enum names) is returned as written.
func scalar(vals []*ast.Value) (string, error) {
	if raw := vals[0].Value; raw == "" || (raw[0] != '"' && raw[0] != '\'') {
		return raw, nil
	}
	s, _, err := unquote.Unquote(&ast.Node{Values: vals})
	return s, err
}

func fieldError(name string, err error) error {
	return &SyntaxError{Err: fmt.Errorf("field %s: %w", name, err)}
}
