// Package vector loads SVG documents and renders them to raster images.
//
// Geometry (the intrinsic width and height) is read from the root element
// with etree; drawing is done by oksvg on a rasterx scanner. A Document is
// parsed once and may be rendered at any number of sizes.
package vector
