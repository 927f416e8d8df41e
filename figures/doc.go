// Package figures implements the caption-driven detection of figures and
// tables on a page.
//
// Detection is caption-first: every page is scanned for "Figure N" and
// "Table N" caption lines, then each candidate visual element (an embedded
// raster image, a cluster of vector drawing paths, or a table text region)
// is associated with its nearest plausible caption. A caption claims at
// most one element, and ties are broken by caption scan order so results
// are deterministic.
//
// All distance and size thresholds live in [Config]; [DefaultConfig]
// returns the values the heuristics were tuned with.
package figures
