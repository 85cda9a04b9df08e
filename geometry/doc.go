// Package geometry computes the canvas placement of the edited image:
// rotation, independent horizontal and vertical perspective scale, shadow
// bleed padding and crop regions.
//
// Three coordinate spaces are involved:
//
//   - source: pixels of the source image, origin at its top-left corner
//   - canvas: backing pixels of the rendered canvas
//   - display: the size the canvas is shown at, which may differ from
//     its backing size
//
// The forward transform maps source to canvas:
//
//	canvas = C + S(h, v) * R(θ) * (source - c)
//
// where C is the canvas center and c the source center. [Transform.Invert]
// inverts it numerically so brush strokes land under the pointer;
// [ScreenToSource] is the same inverse in closed form.
package geometry
