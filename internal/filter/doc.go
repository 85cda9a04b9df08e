// Package filter provides the pixel kernels behind the editor's filter chain,
// selective blur and shadows:
//   - color matrix transformations with CSS filter-function semantics
//   - Gaussian blur (separable, O(n) per radius)
//   - drop shadow (offset + blur + colorize, composited under the source)
//
// Filters read premultiplied pixmaps and write into a caller-provided
// destination, restricted to a pixel rectangle.
package filter
