// Package catalog correlates textcritics entries with SVG filenames.
//
// Both entry ids and filenames embed a Moldenhauer catalog number behind an
// M or Mx marker ("M_143_TF1", "M143_Textfassung1-1von2-final.svg"). Number
// extracts that number; RelevantFiles narrows the full file listing to the
// subset an entry's group ids may live in, honouring the SkRT, Textfassung,
// and sketch qualifiers carried by the entry id.
package catalog
