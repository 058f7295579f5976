// Package textcritics reads and writes the textcritics JSON document.
//
// The document is an external contract shared with the edition's web
// application: the tool rewrites svgGroupId values and nothing else, so the
// parser keeps every object member in source order and round-trips unknown
// fields untouched. Navigation follows the fixed nesting
// textcritics[] -> commentary.comments[] -> blockComments[].svgGroupId.
package textcritics
