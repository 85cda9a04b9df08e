// Command imgedit applies a YAML edit recipe to an image file.
//
//	imgedit -in photo.jpg -recipe edit.yaml -out result.png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/editor"
	"github.com/gogpu/imgedit/render"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("imgedit: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("imgedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in      = fs.String("in", "", "input image file")
		out     = fs.String("out", "", "output file (default: <in>-edited.<format>)")
		recipe  = fs.String("recipe", "", "YAML edit recipe")
		format  = fs.String("format", "", "png, jpeg, bmp or tiff (default: from -out, else the recipe, else png)")
		verbose = fs.Bool("v", false, "log pipeline activity to stderr")
		quiet   = fs.Bool("q", false, "do not print the report")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}
	if *verbose {
		imgedit.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer imgedit.SetLogger(nil)
	}

	rec := &Recipe{}
	dir := "."
	if *recipe != "" {
		var err error
		if rec, err = LoadRecipe(*recipe); err != nil {
			return err
		}
		dir = filepath.Dir(*recipe)
	}

	f, err := outputFormat(*format, *out, rec.Format)
	if err != nil {
		return err
	}
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(*in, filepath.Ext(*in)) + "-edited" + f.Ext()
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	e := editor.New(editor.WithStrokeInterval(0))
	defer e.Close()
	if err := e.Upload(ctx, filepath.Base(*in), sniff(data), data); err != nil {
		return err
	}
	before := e.State()

	steps, err := rec.Apply(ctx, e, dir)
	if err != nil {
		return err
	}
	result, err := e.Download(ctx, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, result, 0o644); err != nil {
		return err
	}

	if !*quiet {
		w, h, _, _ := render.DecodeConfig(result)
		iw, ih, _, _ := render.DecodeConfig(data)
		fmt.Fprintln(stdout, Report{
			In:      *in,
			Out:     dst,
			Format:  f,
			InSize:  [2]int{iw, ih},
			OutSize: [2]int{w, h},
			Bytes:   len(result),
			InLuma:  meanLuminance(data),
			OutLuma: meanLuminance(result),
			Steps:   steps,
			Before:  before,
			After:   e.State(),
		}.Render())
	}
	return nil
}

// outputFormat picks the encoding: the -format flag, then the output
// file's extension, then the recipe, then PNG.
func outputFormat(flagValue, out, recipe string) (render.Format, error) {
	switch {
	case flagValue != "":
		return render.ParseFormat(flagValue)
	case filepath.Ext(out) != "":
		return render.ParseFormat(filepath.Ext(out))
	}
	return render.ParseFormat(recipe)
}

// meanLuminance decodes an encoded image and returns its mean luminance,
// or 0 when it does not decode.
func meanLuminance(data []byte) float64 {
	p, _, err := render.Decode(data)
	if err != nil {
		return 0
	}
	return imgedit.MeanLuminance(p)
}
