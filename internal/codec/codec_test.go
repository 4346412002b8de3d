package codec

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"

	"webpify/internal/planner"
)

func TestApplyOrientation(t *testing.T) {
	// 3x2 source, each pixel tagged by its red channel.
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(y*3 + x + 1), A: 0xff})
		}
	}

	cases := []struct {
		orientation int
		want        [][]uint8
	}{
		{1, [][]uint8{{1, 2, 3}, {4, 5, 6}}},
		{2, [][]uint8{{3, 2, 1}, {6, 5, 4}}},
		{3, [][]uint8{{6, 5, 4}, {3, 2, 1}}},
		{4, [][]uint8{{4, 5, 6}, {1, 2, 3}}},
		{5, [][]uint8{{1, 4}, {2, 5}, {3, 6}}},
		{6, [][]uint8{{4, 1}, {5, 2}, {6, 3}}},
		{7, [][]uint8{{6, 3}, {5, 2}, {4, 1}}},
		{8, [][]uint8{{3, 6}, {2, 5}, {1, 4}}},
	}

	for _, tc := range cases {
		out := applyOrientation(src, tc.orientation)
		b := out.Bounds()
		if b.Dy() != len(tc.want) || b.Dx() != len(tc.want[0]) {
			t.Fatalf("orientation %d: got %dx%d", tc.orientation, b.Dx(), b.Dy())
		}
		for y, row := range tc.want {
			for x, want := range row {
				r, _, _, _ := out.At(b.Min.X+x, b.Min.Y+y).RGBA()
				if uint8(r>>8) != want {
					t.Fatalf("orientation %d: pixel (%d,%d) = %d, want %d", tc.orientation, x, y, r>>8, want)
				}
			}
		}
	}
}

func TestApplyOrientationOffsetBounds(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	full.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 0xff})
	sub := full.SubImage(image.Rect(1, 1, 4, 3))

	out := applyOrientation(sub, 6)
	b := out.Bounds()
	if b.Min != (image.Point{}) || b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 2x3 at origin", b)
	}
	// The sub-image's top-left pixel lands top-right after a clockwise turn.
	if r, _, _, _ := out.At(1, 0).RGBA(); uint8(r>>8) != 9 {
		t.Fatalf("pixel (1,0) = %d, want 9", r>>8)
	}
}

func TestConvertPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "sample.png")
	writePNG(t, src, 4, 3)

	task := planner.Task{Source: src, DestDir: filepath.Join(dir, "out")}
	mkdir(t, task.DestDir)

	outcome := New(Options{}).Convert(context.Background(), task)
	if !outcome.OK {
		t.Fatalf("convert failed: %v", outcome.Err)
	}

	info, err := os.Stat(src)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if outcome.OriginalSize != uint64(info.Size()) {
		t.Fatalf("original size = %d, want %d", outcome.OriginalSize, info.Size())
	}

	cfg := webpConfig(t, filepath.Join(task.DestDir, "sample.png.webp"))
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	destInfo, _ := os.Stat(task.Dest())
	if outcome.WebPSize != uint64(destInfo.Size()) {
		t.Fatalf("webp size = %d, want %d", outcome.WebPSize, destInfo.Size())
	}

	leftovers, _ := filepath.Glob(filepath.Join(task.DestDir, ".webpify-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestConvertJPEGHonorsOrientation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rotated.jpg")
	writeJPEGWithOrientation(t, src, 8, 4, 6)

	task := planner.Task{Source: src, DestDir: dir}
	outcome := New(Options{Quality: 90}).Convert(context.Background(), task)
	if !outcome.OK {
		t.Fatalf("convert failed: %v", outcome.Err)
	}

	cfg := webpConfig(t, task.Dest())
	if cfg.Width != 4 || cfg.Height != 8 {
		t.Fatalf("expected rotated 4x8 output, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestReadOrientation(t *testing.T) {
	dir := t.TempDir()

	tagged := filepath.Join(dir, "tagged.jpg")
	writeJPEGWithOrientation(t, tagged, 2, 2, 3)
	if got := orientationOf(t, tagged); got != 3 {
		t.Fatalf("tagged orientation = %d, want 3", got)
	}

	plain := filepath.Join(dir, "plain.png")
	writePNG(t, plain, 2, 2)
	if got := orientationOf(t, plain); got != 1 {
		t.Fatalf("plain orientation = %d, want 1", got)
	}
}

func TestConvertCorruptFile(t *testing.T) {
	dir := t.TempDir()
	cases := map[string][]byte{
		"garbage.jpg":   []byte("this is definitely not an image"),
		"truncated.png": append([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, []byte("broken chunk data")...),
		"tiny.jpg":      {0xff, 0xd8},
	}

	for name, data := range cases {
		src := filepath.Join(dir, name)
		if err := os.WriteFile(src, data, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		task := planner.Task{Source: src, DestDir: dir}
		outcome := New(Options{}).Convert(context.Background(), task)
		if outcome.OK {
			t.Fatalf("%s: expected failure", name)
		}
		if !errors.Is(outcome.Err, ErrCodec) {
			t.Fatalf("%s: expected ErrCodec, got %v", name, outcome.Err)
		}
		if _, err := os.Stat(task.Dest()); !os.IsNotExist(err) {
			t.Fatalf("%s: destination written for failed conversion", name)
		}
	}
}

func TestConvertMissingSource(t *testing.T) {
	dir := t.TempDir()
	task := planner.Task{Source: filepath.Join(dir, "gone.jpg"), DestDir: dir}

	outcome := New(Options{}).Convert(context.Background(), task)
	if outcome.OK {
		t.Fatal("expected failure")
	}
	if !errors.Is(outcome.Err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", outcome.Err)
	}
	if outcome.Source() != task.Source {
		t.Fatalf("source = %q", outcome.Source())
	}
}

func TestNewClampsQuality(t *testing.T) {
	if got := New(Options{}).opts.Quality; got != DefaultQuality {
		t.Fatalf("default quality = %v", got)
	}
	if got := New(Options{Quality: 250}).opts.Quality; got != 100 {
		t.Fatalf("clamped quality = %v", got)
	}
}

func orientationOf(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	o, err := readOrientation(f)
	if err != nil {
		t.Fatalf("read orientation: %v", err)
	}
	return o
}

func webpConfig(t *testing.T, path string) image.Config {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open webp: %v", err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode webp config: %v", err)
	}
	return cfg
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x80, A: 0xff})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

// writeJPEGWithOrientation encodes a w x h JPEG and splices an APP1 EXIF
// segment carrying the given orientation right after SOI.
func writeJPEGWithOrientation(t *testing.T, path string, w, h int, orientation uint16) {
	t.Helper()
	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, testImage(w, h), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	data := encoded.Bytes()

	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, orientation)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))

	app1 := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(data[:2])
	out.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(app1)+2))
	out.Write(app1)
	out.Write(data[2:])

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatalf("write jpeg: %v", err)
	}
}
