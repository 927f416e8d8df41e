// Package reader opens a PDF and produces the per-page content model the
// detectors consume.
//
// Two libraries share the work. pdfcpu owns document structure: validation,
// page count and dimensions, decoded content streams, embedded image
// extraction, and the info dictionary. ledongthuc/pdf supplies positioned
// text runs, which are assembled into lines and blocks here because its
// glyph-level output is too granular for caption scanning.
//
// All geometry leaves this package in top-left page coordinates.
package reader
