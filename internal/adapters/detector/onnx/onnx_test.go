package onnx

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"nutriscope/internal/adapters/detector"
	perr "nutriscope/internal/platform/errors"
	kit "nutriscope/internal/platform/testkit"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestAnchors(t *testing.T) {
	if got := anchors(640); got != 8400 {
		t.Fatalf("anchors(640) = %d, want 8400", got)
	}
}

func TestFit_Landscape(t *testing.T) {
	f := fit(1280, 640, 640)
	if !near(f.scale, 0.5) || !near(f.padX, 0) || !near(f.padY, 160) {
		t.Fatalf("fit = %+v", f)
	}
	x, y := f.toSource(320, 320)
	if !near(x, 640) || !near(y, 320) {
		t.Fatalf("toSource centre = %v,%v", x, y)
	}
	// padding area clamps to the image edge
	x, y = f.toSource(0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("toSource clamp = %v,%v", x, y)
	}
}

func TestLetterbox_PadsAndScales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	data, f := letterbox(img, 8)
	if len(data) != 3*64 {
		t.Fatalf("len = %d", len(data))
	}
	if !near(f.padY, 2) || !near(f.scale, 1) {
		t.Fatalf("frame = %+v", f)
	}
	if data[0] != padValue {
		t.Fatalf("top row should be padding, got %v", data[0])
	}
	mid := 4*8 + 4
	if data[mid] < 0.99 || data[64+mid] > 0.01 {
		t.Fatalf("content pixel not red: r=%v g=%v", data[mid], data[64+mid])
	}
}

func TestLetterbox_OddPaddingGoesBottom(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	data, f := letterbox(img, 10)
	if f.padY != 1 || f.padX != 0 {
		t.Fatalf("frame = %+v", f)
	}
	row := func(y int) float32 { return data[y*10+5] }
	if row(0) != padValue || row(9) != padValue {
		t.Fatalf("pad rows = %v,%v", row(0), row(9))
	}
	if row(1) < 0.99 || row(8) < 0.99 {
		t.Fatalf("content rows = %v,%v", row(1), row(8))
	}
	// first content row maps back to the top of the source
	if _, y := f.toSource(5, 1); y != 0 {
		t.Fatalf("toSource top = %v", y)
	}
}

// head builds a [4+classes, n] output with the given anchors filled in
func head(classes, n int, set map[int][]float32) []float32 {
	out := make([]float32, (4+classes)*n)
	for i, v := range set {
		for row, x := range v {
			out[row*n+i] = x
		}
	}
	return out
}

func TestDecode_FiltersAndMaps(t *testing.T) {
	labels := detector.Labels{"pizza", "plate"}
	f := fit(100, 100, 100)
	out := head(2, 3, map[int][]float32{
		0: {50, 50, 20, 10, 0.9, 0.1},
		1: {10, 10, 4, 4, 0.1, 0.2}, // below min score
		2: {80, 80, 10, 10, 0.3, 0.6},
	})
	boxes := decode(out, 2, 3, 0.25, f, labels)
	if len(boxes) != 2 {
		t.Fatalf("boxes = %+v", boxes)
	}
	b := boxes[0]
	if b.Class != "pizza" || !near(b.Confidence, float64(float32(0.9))) {
		t.Fatalf("box0 = %+v", b)
	}
	if !near(b.X1, 40) || !near(b.Y1, 45) || !near(b.X2, 60) || !near(b.Y2, 55) {
		t.Fatalf("box0 coords = %+v", b)
	}
	if boxes[1].Class != "plate" || boxes[1].ClassID != 1 {
		t.Fatalf("box1 = %+v", boxes[1])
	}
}

func TestDecode_ShortOutput(t *testing.T) {
	if got := decode(make([]float32, 3), 2, 3, 0.25, fit(1, 1, 1), nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestNMS_ClassAware(t *testing.T) {
	a := detector.Box{ClassID: 0, Confidence: 0.9, X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := detector.Box{ClassID: 0, Confidence: 0.8, X1: 1, Y1: 0, X2: 11, Y2: 10}
	c := detector.Box{ClassID: 1, Confidence: 0.7, X1: 1, Y1: 0, X2: 11, Y2: 10}
	d := detector.Box{ClassID: 0, Confidence: 0.6, X1: 50, Y1: 50, X2: 60, Y2: 60}

	kept := nms([]detector.Box{d, b, a, c}, 0.7)
	if len(kept) != 3 {
		t.Fatalf("kept = %+v", kept)
	}
	if kept[0] != a || kept[1] != c || kept[2] != d {
		t.Fatalf("unexpected order/content: %+v", kept)
	}
}

type fakeRunner struct {
	out    []float32
	err    error
	gotLen int
	closed bool
}

func (f *fakeRunner) Run(in []float32) ([]float32, error) {
	f.gotLen = len(in)
	return f.out, f.err
}
func (f *fakeRunner) Close() { f.closed = true }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetector_Detect(t *testing.T) {
	n := anchors(64)
	fr := &fakeRunner{out: head(2, n, map[int][]float32{
		5: {32, 32, 20, 10, 0.05, 0.8},
	})}
	d := newDetector(Options{ImageSize: 64}, detector.Labels{"plate", "pizza"}, fr)

	boxes, err := d.Detect(context.Background(), pngBytes(t, 64, 32))
	if err != nil {
		t.Fatal(err)
	}
	if fr.gotLen != 3*64*64 {
		t.Fatalf("runner input len = %d", fr.gotLen)
	}
	if len(boxes) != 1 || boxes[0].Class != "pizza" {
		t.Fatalf("boxes = %+v", boxes)
	}
	b := boxes[0]
	if !near(b.X1, 22) || !near(b.Y1, 11) || !near(b.X2, 42) || !near(b.Y2, 21) {
		t.Fatalf("box = %+v", b)
	}
	d.Close()
	if !fr.closed {
		t.Fatal("Close should close the runner")
	}
}

func TestDetector_Errors(t *testing.T) {
	d := newDetector(Options{ImageSize: 64}, detector.Labels{"a"}, &fakeRunner{err: errors.New("boom")})
	if _, err := d.Detect(context.Background(), []byte("not an image")); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad image err = %v", err)
	}
	if _, err := d.Detect(context.Background(), pngBytes(t, 4, 4)); err == nil {
		t.Fatal("runner failure should surface")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Detect(ctx, pngBytes(t, 4, 4)); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled ctx err = %v", err)
	}
}

// pngHeader is a signature plus an IHDR chunk declaring w*h; no pixel data follows
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8], ihdr[9] = 8, 6 // 8-bit RGBA
	chunk := append([]byte("IHDR"), ihdr...)

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDetector_RejectsOversizedImage(t *testing.T) {
	fr := &fakeRunner{}
	d := newDetector(Options{ImageSize: 64}, detector.Labels{"a"}, fr)

	_, err := d.Detect(context.Background(), pngHeader(60000, 60000))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("oversized err = %v", err)
	}
	kit.MustContain(t, err.Error(), "too large")
	if fr.gotLen != 0 {
		t.Fatal("runner should not see an oversized image")
	}
}
