package editor

import (
	"bytes"
	"context"
	"testing"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/render"
)

func pngBytes(t *testing.T, w, h int, c imgedit.RGBA) []byte {
	t.Helper()
	p := imgedit.NewPixmap(w, h)
	p.Clear(c)
	var buf bytes.Buffer
	if err := render.Encode(&buf, p, render.FormatPNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

// loaded returns an editor holding a w x h gray image.
func loaded(t *testing.T, w, h int, opts ...Option) *Editor {
	t.Helper()
	e := New(opts...)
	t.Cleanup(e.Close)
	if err := e.Upload(context.Background(), "photo.png", "image/png", pngBytes(t, w, h, imgedit.RGB(0.4, 0.4, 0.4))); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return e
}

func decode(t *testing.T, data []byte) *imgedit.Pixmap {
	t.Helper()
	img, _, err := render.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return img
}
