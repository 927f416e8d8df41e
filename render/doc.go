// Package render turns page regions into PNG artifacts.
//
// Page rasterization is delegated to an external renderer binary (poppler's
// pdftoppm by default, mutool supported) through the [Rasterizer]
// interface; everything after the raster is pure Go: cropping a figure's
// bounding box out of the page image, scaling thumbnails, and encoding the
// base64 data URIs embedded in the JSON output.
package render
