// Package contentstream parses decoded PDF page content streams and
// reduces them to the geometry the detectors need: the page-space
// rectangles of placed image XObjects and of painted vector paths.
//
// The [Parser] tokenizes a stream into operator/operand pairs. The
// [Scanner] replays those operations while tracking the graphics state
// (the CTM and the q/Q save stack), flattening path construction into
// bounding boxes at paint operators and recording each image Do as the
// unit square transformed by the current matrix.
//
// Text-showing operators are ignored here; positioned text comes from the
// reader's text layer instead.
package contentstream
