// Package render turns an edit state into pixels.
//
// A [Compositor] runs the same per-pixel pipeline for two renderers:
//
//   - [Compositor.Preview] draws the transformed, adjusted image onto a
//     canvas and reports text and overlay layers as positioned elements
//     for the caller to display on top.
//   - [Compositor.Export] rasterizes everything, overlays and text
//     included, into one flattened pixmap for a crop or a download.
//
// Pipeline order for the subject image:
//
//	decode -> filter chain -> duotone -> brush blur -> rotate/scale -> shadow
//
// Images are decoded asynchronously by a [Loader] and cached by content
// hash. [Encode] writes the result as PNG, JPEG, BMP or TIFF.
package render
