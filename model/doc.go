// Package model provides the data types shared by the extraction pipeline.
//
// The user-facing result type is [Figure], which describes one extracted
// figure or table: its kind, name, caption, page, bounding box, and an
// optional rendered crop. All coordinates are in PDF points with the origin
// at the top-left of the page and Y increasing downward, matching the JSON
// output contract.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - corner-form bounding box with intersection, union, and
//     overlap calculations
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation matrix
//
// # Page Content
//
// The detector pipeline consumes [PageContent], which collects the text
// blocks, embedded image placements, and vector drawing paths found on a
// single page.
package model
