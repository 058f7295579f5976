package textcritics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is a parsed textcritics file. Apart from the svgGroupId values the
// tool rewrites, every field round-trips through Parse and Render unchanged.
type Document struct {
	root *node
}

// Parse reads a textcritics document from its serialized form.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parse textcritics document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse textcritics document: trailing content after top-level value")
	}
	return &Document{root: root}, nil
}

// Render serializes the document with four-space indentation and literal
// (unescaped) non-ASCII text, the form the document is maintained in.
func (d *Document) Render() []byte {
	var buf bytes.Buffer
	d.root.encode(&buf, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Entries returns the document's textcritics entries in document order. The
// entry collection is either the root object's "textcritics" member or, for
// bare exports, the root array itself. Non-object items are skipped.
func (d *Document) Entries() []*Entry {
	list := d.root
	if d.root.kind == kindObject {
		if tc := d.root.get("textcritics"); tc != nil {
			list = tc
		}
	}
	if list == nil || list.kind != kindArray {
		return nil
	}

	var entries []*Entry
	for _, item := range list.items {
		if item.kind == kindObject {
			entries = append(entries, &Entry{node: item})
		}
	}
	return entries
}

// Entry is one textcritics record.
type Entry struct {
	node *node
}

// ID returns the entry identifier, or "" when the entry has none.
func (e *Entry) ID() string {
	return e.node.stringValue("id")
}

// Blocks returns the entry's block comments across all comment groups, in
// document order.
func (e *Entry) Blocks() []*Block {
	comments := e.node.get("commentary").get("comments")
	if comments == nil || comments.kind != kindArray {
		return nil
	}

	var blocks []*Block
	for _, group := range comments.items {
		blockComments := group.get("blockComments")
		if blockComments == nil || blockComments.kind != kindArray {
			continue
		}
		for _, b := range blockComments.items {
			if b.kind == kindObject {
				blocks = append(blocks, &Block{node: b})
			}
		}
	}
	return blocks
}

// Block is one block comment referencing an SVG group.
type Block struct {
	node *node
}

// GroupRef returns the block's svgGroupId, or "" when absent or non-string.
func (b *Block) GroupRef() string {
	return b.node.stringValue("svgGroupId")
}

// SetGroupRef rewrites the block's svgGroupId in place.
func (b *Block) SetGroupRef(value string) {
	b.node.setString("svgGroupId", value)
}
