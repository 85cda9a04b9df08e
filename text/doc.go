// Package text rasterizes single-line text layers.
//
// Text is shaped with HarfBuzz via go-text/typesetting, glyph outlines come
// from golang.org/x/image/font/sfnt and are filled with the
// golang.org/x/image/vector rasterizer. Fonts are resolved through a
// [FontSet] by family, weight and style; the Go fonts are registered by
// default so rendering works without any font files.
//
// Basic usage:
//
//	fs := text.NewFontSet()
//	st := text.Style{Size: 32, Family: "Go", Weight: "bold"}
//	fs.Draw(dst, "Hello", 50, 50, st, color.Black, 1)
package text
