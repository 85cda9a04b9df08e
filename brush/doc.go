// Package brush implements selective blur: a persistent mask painted with
// round-capped strokes and a compositor that reveals a blurred copy of an
// image wherever the mask is painted.
//
// The mask lives in source image pixel space. Callers map pointer positions
// through the inverse display transform (see package geometry) before
// painting.
//
// Engine is the only writer of the mask. Renderers read an immutable
// snapshot through [Engine.Stencil].
package brush
