// Package imgedit holds the pixel primitives shared by the editor's
// rendering pipeline.
//
// # Overview
//
// imgedit is the root of a non-destructive image editor: a single source
// image plus an edit state (tone adjustments, duotone, shadow, selective
// blur mask, rotation/perspective, crop, text and overlay layers) is
// re-rendered on every change. The root package provides the raster types
// every stage exchanges:
//
//   - [Pixmap]: premultiplied RGBA buffer that shares memory with
//     [image.RGBA] so golang.org/x/image/draw can resample into it
//   - [Mask]: 8-bit coverage buffer
//   - [RGBA]: straight-alpha float color plus CSS color parsing
//   - [Point]: 2D vector
//
// # Packages
//
//   - adjust: tone and color knobs compiled to an ordered filter chain
//   - duotone: luminance-driven two-color gradient map
//   - shadow: drop shadow, glow and outline effects
//   - brush: selective blur mask painting and compositing
//   - geometry: canvas bounds, affine transform, crop regions
//   - text: text layer rasterizer
//   - scene: the edit state value
//   - history: linear undo/redo stack
//   - render: asynchronous image loading, preview and export
//   - editor: the command surface tying everything together
//
// # Logging
//
// Logging is silent by default. See [SetLogger].
package imgedit
