// Package unify drives the group-id unification run.
//
// The Unifier walks the textcritics entries in document order, narrows the
// SVG corpus to each entry's relevant files, and renames every referenced
// group id to a fresh prefixed sequence number, mutating the document and the
// cached SVG text together. Files are flushed at entry boundaries and once
// more at the end of the run; a second, non-evicting cache keeps every file
// ever loaded so the closing validation pass can certify completeness.
//
// Per-block problems (an id that no relevant file contains, or one carried by
// several tkk elements) never abort the run: the block is left untouched,
// the failure is recorded, and the validation report flags the residue.
package unify
