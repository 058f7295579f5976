package textcritics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type nodeKind int

const (
	kindScalar nodeKind = iota
	kindObject
	kindArray
)

// node is one JSON value. Objects keep their members as an ordered list so
// re-serialization preserves the source member order.
type node struct {
	kind    nodeKind
	members []member
	items   []*node
	scalar  any // string, json.Number, bool, or nil
}

type member struct {
	key   string
	value *node
}

func parseValue(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*node, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return &node{kind: kindScalar, scalar: tok}, nil
	}

	switch delim {
	case '{':
		n := &node{kind: kindObject}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, want string", keyTok)
			}
			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.members = append(n.members, member{key: key, value: value})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case '[':
		n := &node{kind: kindArray}
		for dec.More() {
			item, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// get returns the value of an object member, or nil when n is not an object
// or the key is absent.
func (n *node) get(key string) *node {
	if n == nil || n.kind != kindObject {
		return nil
	}
	for i := range n.members {
		if n.members[i].key == key {
			return n.members[i].value
		}
	}
	return nil
}

// stringValue returns the member's string value, or "" when the member is
// absent or holds a non-string.
func (n *node) stringValue(key string) string {
	v := n.get(key)
	if v == nil || v.kind != kindScalar {
		return ""
	}
	s, _ := v.scalar.(string)
	return s
}

// setString replaces the member's value in place, keeping its position;
// a missing member is appended.
func (n *node) setString(key, value string) {
	if v := n.get(key); v != nil {
		v.kind = kindScalar
		v.members = nil
		v.items = nil
		v.scalar = value
		return
	}
	n.members = append(n.members, member{key: key, value: &node{kind: kindScalar, scalar: value}})
}

const indentUnit = "    "

func (n *node) encode(buf *bytes.Buffer, depth int) {
	switch n.kind {
	case kindObject:
		if len(n.members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i := range n.members {
			writeIndent(buf, depth+1)
			encodeString(buf, n.members[i].key)
			buf.WriteString(": ")
			n.members[i].value.encode(buf, depth+1)
			if i < len(n.members)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case kindArray:
		if len(n.items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range n.items {
			writeIndent(buf, depth+1)
			item.encode(buf, depth+1)
			if i < len(n.items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	default:
		switch v := n.scalar.(type) {
		case string:
			encodeString(buf, v)
		case json.Number:
			buf.WriteString(v.String())
		case bool:
			buf.WriteString(strconv.FormatBool(v))
		case nil:
			buf.WriteString("null")
		default:
			fmt.Fprintf(buf, "%v", v)
		}
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

// encodeString writes s as a JSON string without escaping non-ASCII runes,
// matching the document's existing on-disk form.
func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
