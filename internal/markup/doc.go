// Package markup rewrites group id attributes inside raw SVG text.
//
// Matching is regex-driven over the serialized markup rather than a real XML
// parse. That is deliberate: the correlation and ambiguity rules of the tool
// are defined against the exact attribute-order and quote-style patterns
// below, and a structured parser would quietly change which elements qualify.
// Only elements carrying class "tkk" are ever touched, and only their id
// attribute is rewritten; every other byte is preserved.
package markup
