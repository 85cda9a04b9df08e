package editor

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/scene"
)

func TestBrightnessExport(t *testing.T) {
	ctx := context.Background()
	e := loaded(t, 800, 600)

	before, err := e.Download(ctx, render.FormatPNG)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if err := e.ApplyAdjustments(adjust.Tone{Brightness: 20}); err != nil {
		t.Fatalf("ApplyAdjustments: %v", err)
	}
	after, err := e.Download(ctx, render.FormatPNG)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	src, out := decode(t, before), decode(t, after)
	if out.Width() != 800 || out.Height() != 600 {
		t.Fatalf("export = %dx%d, want 800x600", out.Width(), out.Height())
	}
	if imgedit.MeanLuminance(out) <= imgedit.MeanLuminance(src) {
		t.Errorf("mean luminance %v not above source %v",
			imgedit.MeanLuminance(out), imgedit.MeanLuminance(src))
	}
}

func TestTextUndoRedo(t *testing.T) {
	e := loaded(t, 400, 300)
	id, err := e.AddText(NewText{Text: "Hello", Size: 32})
	if err != nil {
		t.Fatalf("AddText: %v", err)
	}
	added := e.State().Texts
	if len(added) != 1 || added[0].ID != id || added[0].X != 50 || added[0].Y != 50 || added[0].Size != 32 {
		t.Fatalf("Texts = %+v", added)
	}
	if e.State().ActiveTool != scene.ToolText {
		t.Errorf("ActiveTool = %q, want text", e.State().ActiveTool)
	}

	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := e.State(); len(got.Texts) != 0 || got.ActiveTool != scene.ToolNone {
		t.Fatalf("after undo: texts %v, tool %q", got.Texts, got.ActiveTool)
	}
	if !e.CanRedo() || e.CanUndo() {
		t.Errorf("CanUndo/CanRedo = %v/%v, want false/true", e.CanUndo(), e.CanRedo())
	}

	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	got := e.State().Texts
	if len(got) != 1 || got[0] != added[0] {
		t.Errorf("after redo: %+v, want %+v", got, added)
	}
	if e.Redo() {
		t.Error("Redo at the newest entry changed the state")
	}
}

func TestFinalizeCropSquare(t *testing.T) {
	ctx := context.Background()
	e := loaded(t, 800, 600)
	if _, err := e.AddText(NewText{Text: "gone"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddOverlay(ctx, "logo.png", "image/png", pngBytes(t, 20, 10, imgedit.White)); err != nil {
		t.Fatal(err)
	}
	if err := e.ApplyCrop("1:1"); err != nil {
		t.Fatalf("ApplyCrop: %v", err)
	}
	c := e.State().Crop
	if c.X != 100 || c.Y != 0 || c.Width != 600 || c.Height != 600 || c.AspectRatio != "1:1" {
		t.Fatalf("crop = %+v, want 600x600 at (100, 0)", c)
	}

	if err := e.FinalizeCrop(ctx); err != nil {
		t.Fatalf("FinalizeCrop: %v", err)
	}
	st := e.State()
	if len(st.Texts) != 0 || len(st.Overlays) != 0 {
		t.Errorf("layers not reset: %d texts, %d overlays", len(st.Texts), len(st.Overlays))
	}
	if st.Crop != (geometry.Crop{}) {
		t.Errorf("crop not reset: %+v", st.Crop)
	}
	img := decode(t, st.Source.Data)
	if img.Width() != 600 || img.Height() != 600 {
		t.Errorf("new source = %dx%d, want 600x600", img.Width(), img.Height())
	}
	if w, h := e.engine.Size(); w != 600 || h != 600 {
		t.Errorf("brush mask = %dx%d, want 600x600", w, h)
	}
	if !e.CanUndo() {
		t.Error("finalized crop cannot be undone")
	}
}

func TestFinalizeCropNeedsRegion(t *testing.T) {
	e := loaded(t, 10, 10)
	if err := e.FinalizeCrop(context.Background()); !errors.Is(err, ErrNoCrop) {
		t.Errorf("FinalizeCrop err = %v, want ErrNoCrop", err)
	}
}

func TestOverlayLimit(t *testing.T) {
	ctx := context.Background()
	e := loaded(t, 100, 100)
	for i := range DefaultMaxOverlays {
		// Distinct bytes give each overlay its own image.
		data := pngBytes(t, 4+i, 4, imgedit.White)
		if _, err := e.AddOverlay(ctx, "o.png", "image/png", data); err != nil {
			t.Fatalf("overlay %d: %v", i, err)
		}
	}
	_, err := e.AddOverlay(ctx, "extra.png", "image/png", pngBytes(t, 4, 4, imgedit.Black))
	if !errors.Is(err, ErrOverlayLimit) {
		t.Fatalf("11th overlay err = %v, want ErrOverlayLimit", err)
	}
	var rej *RejectError
	if !errors.As(err, &rej) || rej.Name != "extra.png" {
		t.Errorf("err = %#v, want *RejectError for extra.png", err)
	}
	if n := len(e.State().Overlays); n != DefaultMaxOverlays {
		t.Errorf("overlays = %d, want %d", n, DefaultMaxOverlays)
	}
}

func TestOverlayPlacement(t *testing.T) {
	e := loaded(t, 100, 100)
	id, err := e.AddOverlay(context.Background(), "wide.png", "image/png", pngBytes(t, 400, 100, imgedit.White))
	if err != nil {
		t.Fatal(err)
	}
	o := e.State().Overlays[0]
	if o.ID != id || o.X != 50 || o.Y != 50 || o.Width != 200 || o.Height != 50 || o.Opacity != 1 {
		t.Errorf("overlay = %+v", o)
	}
	if e.Selected() != id {
		t.Errorf("Selected() = %d, want %d", e.Selected(), id)
	}
	if e.State().ActiveTool != scene.ToolOverlay {
		t.Errorf("ActiveTool = %q", e.State().ActiveTool)
	}
}

func TestUploadRejects(t *testing.T) {
	tests := []struct {
		name string
		mime string
		data []byte
		want error
	}{
		{"text", "text/plain", []byte("hello"), ErrNotImage},
		{"too large", "image/png", make([]byte, 65), ErrFileTooLarge},
		{"corrupt", "image/png", []byte("not png"), ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithMaxFileSize(64))
			defer e.Close()
			err := e.Upload(context.Background(), tt.name, tt.mime, tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Upload err = %v, want %v", err, tt.want)
			}
			if e.State().HasImage() {
				t.Error("rejected upload changed the state")
			}
		})
	}
}

func TestCommandsNeedImage(t *testing.T) {
	e := New()
	defer e.Close()
	ctx := context.Background()

	checks := map[string]error{
		"AddText":      func() error { _, err := e.AddText(NewText{}); return err }(),
		"ApplyCrop":    e.ApplyCrop("1:1"),
		"ApplyShadow":  e.ApplyShadow(scene.New(scene.ImageRef{}).Shadow),
		"FinalizeCrop": e.FinalizeCrop(ctx),
		"BeginStroke":  e.BeginStroke(imgedit.Pt(1, 1)),
		"Download":     func() error { _, err := e.Download(ctx, render.FormatPNG); return err }(),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNoImage) {
			t.Errorf("%s err = %v, want ErrNoImage", name, err)
		}
	}
	if e.CanUndo() || e.Undo() {
		t.Error("empty editor can undo")
	}
}

func TestUploadResetsSession(t *testing.T) {
	e := loaded(t, 50, 50)
	if err := e.ApplyAdjustments(adjust.Tone{Contrast: 30}); err != nil {
		t.Fatal(err)
	}
	if err := e.Upload(context.Background(), "b.png", "image/png", pngBytes(t, 30, 20, imgedit.White)); err != nil {
		t.Fatal(err)
	}
	st := e.State()
	if !st.Tone.IsZero() || e.CanUndo() || e.hist.Len() != 1 {
		t.Errorf("session not reset: tone %+v, history %d", st.Tone, e.hist.Len())
	}
	if w, h := e.engine.Size(); w != 30 || h != 20 {
		t.Errorf("brush mask = %dx%d, want 30x20", w, h)
	}
}

func TestUploadForgetsPreviousImages(t *testing.T) {
	e := loaded(t, 20, 20)
	ctx := context.Background()
	old := e.State().Source
	if _, err := e.AddOverlay(ctx, "logo.png", "image/png", pngBytes(t, 4, 4, imgedit.White)); err != nil {
		t.Fatal(err)
	}
	logo := e.State().Overlays[0].Image
	if _, ok := e.loader.Cached(logo); !ok {
		t.Fatal("overlay not cached after AddOverlay")
	}

	if err := e.Upload(ctx, "b.png", "image/png", pngBytes(t, 10, 10, imgedit.Black)); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.loader.Cached(old); ok {
		t.Error("previous source still cached")
	}
	if _, ok := e.loader.Cached(logo); ok {
		t.Error("previous overlay still cached")
	}
	if _, ok := e.loader.Cached(e.State().Source); !ok {
		t.Error("new source not cached")
	}

	// Re-uploading the same bytes keeps the cached decode.
	same := e.State().Source
	if err := e.Upload(ctx, "b.png", "image/png", same.Data); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.loader.Cached(same); !ok {
		t.Error("re-uploaded source dropped from cache")
	}
}

func TestUploadAsync(t *testing.T) {
	e := New()
	defer e.Close()
	done := make(chan error, 1)
	if err := e.UploadAsync("a.png", "image/png", pngBytes(t, 8, 8, imgedit.White), func(err error) { done <- err }); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("async upload: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("async upload never finished")
	}
	if !e.State().HasImage() {
		t.Error("async upload did not load the image")
	}

	if err := e.UploadAsync("x.txt", "text/plain", nil, nil); !errors.Is(err, ErrNotImage) {
		t.Errorf("invalid async upload err = %v, want ErrNotImage", err)
	}
}

func TestStaleUploadIgnored(t *testing.T) {
	e := loaded(t, 10, 10)
	before := e.State()

	ref := scene.NewImageRef("image/png", pngBytes(t, 3, 3, imgedit.White))
	img := imgedit.NewPixmap(3, 3)
	if err := e.finishUpload(e.upload-1, "old.png", ref, img, nil); err != nil {
		t.Fatalf("superseded upload err = %v", err)
	}
	if !e.State().Equal(before) {
		t.Error("superseded upload replaced the image")
	}

	e.Close()
	if err := e.finishUpload(e.upload, "late.png", ref, img, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("late upload err = %v, want ErrClosed", err)
	}
	if err := e.ApplyRotation(10); !errors.Is(err, ErrClosed) {
		t.Errorf("command after Close err = %v, want ErrClosed", err)
	}
}

func TestGestureCoalescesHistory(t *testing.T) {
	e := loaded(t, 20, 20)
	start := e.hist.Len()

	if err := e.BeginGesture(); err != nil {
		t.Fatal(err)
	}
	for v := 1.0; v <= 30; v++ {
		if err := e.ApplyAdjustments(adjust.Tone{Brightness: v}); err != nil {
			t.Fatal(err)
		}
	}
	if e.hist.Len() != start {
		t.Fatalf("history grew during gesture: %d -> %d", start, e.hist.Len())
	}
	if err := e.EndGesture(); err != nil {
		t.Fatal(err)
	}
	if e.hist.Len() != start+1 {
		t.Errorf("history = %d, want %d", e.hist.Len(), start+1)
	}
	if err := e.EndGesture(); !errors.Is(err, ErrNoGesture) {
		t.Errorf("second EndGesture err = %v, want ErrNoGesture", err)
	}

	e.Undo()
	if !e.State().Tone.IsZero() {
		t.Errorf("undo did not return before the gesture: %+v", e.State().Tone)
	}
}

func TestToolChangesAreNotHistory(t *testing.T) {
	e := loaded(t, 20, 20)
	n := e.hist.Len()
	for _, tool := range []scene.Tool{scene.ToolCrop, scene.ToolAdjust, scene.ToolNone} {
		if err := e.SetActiveTool(tool); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.ApplyAdjustments(adjust.Tone{}); err != nil {
		t.Fatal(err)
	}
	if e.hist.Len() != n {
		t.Errorf("history = %d, want %d", e.hist.Len(), n)
	}
}

func TestDragLayer(t *testing.T) {
	e := loaded(t, 800, 600)
	id, err := e.AddText(NewText{Text: "Hi", Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	n := e.hist.Len()

	if err := e.BeginDrag(id, imgedit.Pt(60, 60)); err != nil {
		t.Fatal(err)
	}
	if e.PointerMove(imgedit.Pt(63, 65)) {
		t.Error("move within the threshold changed the state")
	}
	if !e.PointerMove(imgedit.Pt(80, 90)) {
		t.Fatal("move past the threshold did nothing")
	}
	if !e.PointerMove(imgedit.Pt(2000, -50)) {
		t.Fatal("second move did nothing")
	}
	l := e.State().Texts[0]
	if l.X != 800-l.Width || l.Y != 0 {
		t.Errorf("clamped position = (%v, %v), want (%v, 0)", l.X, l.Y, 800-l.Width)
	}
	if err := e.PointerUp(); err != nil {
		t.Fatal(err)
	}
	if e.hist.Len() != n+1 {
		t.Errorf("history = %d, want %d", e.hist.Len(), n+1)
	}
}

func TestPressWithoutMoveOnlySelects(t *testing.T) {
	e := loaded(t, 100, 100)
	id, _ := e.AddText(NewText{Text: "a"})
	if err := e.Select(0); err != nil {
		t.Fatal(err)
	}
	n := e.hist.Len()
	if err := e.BeginDrag(id, imgedit.Pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerUp(); err != nil {
		t.Fatal(err)
	}
	if e.hist.Len() != n || e.Selected() != id {
		t.Errorf("history %d (want %d), selected %d (want %d)", e.hist.Len(), n, e.Selected(), id)
	}
	if err := e.PointerUp(); !errors.Is(err, ErrNoGesture) {
		t.Errorf("PointerUp without gesture err = %v", err)
	}
}

func TestResizeTextScalesFont(t *testing.T) {
	e := loaded(t, 800, 600)
	id, _ := e.AddText(NewText{Text: "Hello", Size: 32})
	start := e.State().Texts[0]

	if err := e.BeginResize(id, scene.HandleSE, imgedit.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	e.PointerMove(imgedit.Pt(10, 5))
	if err := e.PointerUp(); err != nil {
		t.Fatal(err)
	}
	l := e.State().Texts[0]
	wantH := start.Height + 10
	if math.Abs(l.Height-wantH) > 1e-9 || math.Abs(l.Width-(start.Width+10)) > 1e-9 {
		t.Errorf("box = %vx%v, want %vx%v", l.Width, l.Height, start.Width+10, wantH)
	}
	if want := 32 * wantH / start.Height; math.Abs(l.Size-want) > 1e-9 {
		t.Errorf("font size = %v, want %v", l.Size, want)
	}
}

func TestResizeOverlayMinimum(t *testing.T) {
	e := loaded(t, 300, 300)
	id, err := e.AddOverlay(context.Background(), "o.png", "image/png", pngBytes(t, 100, 100, imgedit.White))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.BeginResize(id, scene.HandleE, imgedit.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	e.PointerMove(imgedit.Pt(-500, 0))
	e.PointerUp()
	if w := e.State().Overlays[0].Width; w != scene.MinOverlaySize {
		t.Errorf("width = %v, want %v", w, scene.MinOverlaySize)
	}
}

func TestUpdateAndFitSelectedText(t *testing.T) {
	e := loaded(t, 400, 300)
	if err := e.UpdateSelectedText(TextPatch{}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("no selection err = %v", err)
	}
	if _, err := e.AddText(NewText{Text: "a", Heading: H2}); err != nil {
		t.Fatal(err)
	}
	txt, size, color := "Hello world", 40.0, "#ff0000"
	if err := e.UpdateSelectedText(TextPatch{Text: &txt, Size: &size, Color: &color}); err != nil {
		t.Fatal(err)
	}
	l := e.State().Texts[0]
	if l.Text != txt || l.Size != 40 || l.Color != color || l.Family != "Go" {
		t.Errorf("layer = %+v", l)
	}
	wantW, wantH := scene.EstimateTextBox(40, txt)
	if l.Width != wantW || l.Height != wantH {
		t.Errorf("box = %vx%v, want %vx%v", l.Width, l.Height, wantW, wantH)
	}

	if err := e.FitSelectedText(); err != nil {
		t.Fatal(err)
	}
	l = e.State().Texts[0]
	if l.Width < wantW || l.Width > 300 || l.Height <= 0 || l.Height > 150 {
		t.Errorf("fitted box = %vx%v", l.Width, l.Height)
	}
}

func TestDeleteSelected(t *testing.T) {
	e := loaded(t, 100, 100)
	a, _ := e.AddText(NewText{Text: "a"})
	b, _ := e.AddText(NewText{Text: "b"})
	if err := e.Select(a); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteSelected(); err != nil {
		t.Fatal(err)
	}
	texts := e.State().Texts
	if len(texts) != 1 || texts[0].ID != b {
		t.Errorf("texts = %+v, want only %d", texts, b)
	}
	if err := e.DeleteSelected(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("second delete err = %v", err)
	}
	if err := e.Select(999); !errors.Is(err, ErrNoLayer) {
		t.Errorf("Select(999) err = %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	e := loaded(t, 20, 20)
	if err := e.ApplyPreset("Cherry"); err != nil {
		t.Fatalf("Cherry: %v", err)
	}
	st := e.State()
	if st.Duotone == nil || st.Duotone.Highlight != "#e05353" || st.Tone.Sepia != 100 {
		t.Errorf("Cherry state = %+v / %+v", st.Tone, st.Duotone)
	}
	if err := e.ApplyPreset("Drop"); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !e.State().Shadow.Visible() {
		t.Error("Drop preset left the shadow invisible")
	}
	if err := e.ApplyPreset("Nope"); err == nil {
		t.Error("unknown preset accepted")
	}

	if err := e.ResetAll(); err != nil {
		t.Fatal(err)
	}
	st = e.State()
	if st.Duotone != nil || st.Shadow.Visible() || !st.Tone.IsZero() {
		t.Errorf("ResetAll left %+v", st)
	}
}

func TestApplyPerspectiveRejectsCollapse(t *testing.T) {
	e := loaded(t, 20, 20)
	if err := e.ApplyPerspective(-100, 0); !errors.Is(err, geometry.ErrSingular) {
		t.Errorf("err = %v, want ErrSingular", err)
	}
	if err := e.ApplyPerspective(10, -20); err != nil {
		t.Fatal(err)
	}
	c := e.State().Crop
	if c.VerticalPerspective != 10 || c.HorizontalPerspective != -20 {
		t.Errorf("crop = %+v", c)
	}
}

func TestOnChange(t *testing.T) {
	var calls int
	var last scene.State
	e := loaded(t, 20, 20, WithOnChange(func(s scene.State) {
		calls++
		last = s
	}))
	before := calls
	if err := e.ApplyRotation(45); err != nil {
		t.Fatal(err)
	}
	if calls != before+1 || last.Crop.Rotation != 45 {
		t.Errorf("onChange calls = %d, last rotation %v", calls-before, last.Crop.Rotation)
	}
}

func TestPreviewFrame(t *testing.T) {
	e := loaded(t, 40, 30)
	if err := e.ApplyCrop("freeform"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetActiveTool(scene.ToolCrop); err != nil {
		t.Fatal(err)
	}
	f, err := e.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if f.Canvas.Width() != 40 || f.Canvas.Height() != 30 {
		t.Errorf("canvas = %dx%d", f.Canvas.Width(), f.Canvas.Height())
	}
}

func TestBrushStroke(t *testing.T) {
	e := loaded(t, 200, 100, WithStrokeInterval(0))
	if err := e.BeginStroke(imgedit.Pt(10, 50)); !errors.Is(err, ErrBrushDisabled) {
		t.Fatalf("stroke with brush off err = %v", err)
	}
	if err := e.EnableBrush(brush.Settings{Size: 20, Intensity: 100, Mode: "bogus"}); err != nil {
		t.Fatal(err)
	}
	if got := e.State().Brush; !got.Enabled || got.Mode != brush.AddBlur {
		t.Errorf("brush = %+v, want enabled add-blur", got)
	}
	n := e.hist.Len()

	if err := e.BeginStroke(imgedit.Pt(10, 50)); err != nil {
		t.Fatal(err)
	}
	if !e.StrokeTo(imgedit.Pt(150, 50)) {
		t.Fatal("StrokeTo painted nothing")
	}
	if err := e.EndStroke(); err != nil {
		t.Fatal(err)
	}
	if err := e.EndStroke(); !errors.Is(err, ErrNoGesture) {
		t.Errorf("second EndStroke err = %v", err)
	}

	e.mu.Lock()
	m := e.stencil()
	e.mu.Unlock()
	if m == nil || m.At(80, 50) == 0 || m.At(80, 5) != 0 {
		t.Errorf("stencil does not follow the stroke")
	}
	// The mask is not part of the edit history.
	if e.hist.Len() != n {
		t.Errorf("history = %d, want %d", e.hist.Len(), n)
	}

	if err := e.ResetBrush(); err != nil {
		t.Fatal(err)
	}
	if !e.engine.Empty() {
		t.Error("ResetBrush left paint in the mask")
	}
	if err := e.DisableBrush(); err != nil {
		t.Fatal(err)
	}
	e.mu.Lock()
	m = e.stencil()
	e.mu.Unlock()
	if m != nil {
		t.Error("disabled brush still yields a stencil")
	}
}

func TestBrushFollowsDisplayScale(t *testing.T) {
	e := loaded(t, 200, 100, WithStrokeInterval(0))
	e.SetDisplaySize(100, 50)
	if err := e.EnableBrush(brush.Settings{Size: 10, Intensity: 100, Mode: brush.AddBlur}); err != nil {
		t.Fatal(err)
	}
	if err := e.BeginStroke(imgedit.Pt(5, 25)); err != nil {
		t.Fatal(err)
	}
	e.StrokeTo(imgedit.Pt(20, 25))
	e.EndStroke()

	m := e.engine.Stencil()
	if m.At(30, 50) == 0 {
		t.Error("display point (15, 25) did not paint source (30, 50)")
	}
	if m.At(30, 25) != 0 {
		t.Error("stroke painted at unscaled coordinates")
	}
}
