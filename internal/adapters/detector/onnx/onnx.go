// Package onnx runs a YOLOv8 detector exported to ONNX in process
package onnx

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // decoders for uploaded photos
	_ "image/png"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/logger"
)

// MaxPixels caps the declared size of an upload; image.Decode allocates the
// full frame from the header before reading pixel data
const MaxPixels = 50_000_000

// Options configures the detector
type Options struct {
	ModelPath    string
	MetadataPath string
	LibraryPath  string // onnxruntime shared library; empty uses the loader default
	ImageSize    int
	MinScore     float64
	IoU          float64
	InputName    string
	OutputName   string
}

// FromConfig reads the IDENTIFY_ detector keys
func FromConfig(cfg config.Conf) Options {
	return Options{
		ModelPath:    cfg.MayString("DETECTOR_MODEL_PATH", "models/yolov8m.onnx"),
		MetadataPath: cfg.MayString("DETECTOR_METADATA_PATH", "models/yolov8m.json"),
		LibraryPath:  cfg.MayString("ORT_LIBRARY_PATH", ""),
		ImageSize:    cfg.MayInt("DETECTOR_IMGSZ", 640),
		MinScore:     cfg.MayFloat64("DETECTOR_MIN_SCORE", 0.25),
		IoU:          cfg.MayFloat64("DETECTOR_IOU", 0.7),
	}
}

func (o *Options) defaults() {
	if o.ImageSize <= 0 {
		o.ImageSize = 640
	}
	if o.MinScore <= 0 {
		o.MinScore = 0.25
	}
	if o.IoU <= 0 {
		o.IoU = 0.7
	}
	if o.InputName == "" {
		o.InputName = "images"
	}
	if o.OutputName == "" {
		o.OutputName = "output0"
	}
}

// anchors is the YOLOv8 prediction count for a square input (strides 8, 16, 32)
func anchors(size int) int {
	n := 0
	for _, s := range []int{8, 16, 32} {
		g := size / s
		n += g * g
	}
	return n
}

// runner executes one forward pass over a CHW input
type runner interface {
	Run(in []float32) ([]float32, error)
	Close()
}

// Detector is the onnx backend
type Detector struct {
	opt     Options
	labels  detector.Labels
	anchors int
	run     runner
	log     *logger.Logger
}

// New initializes the onnxruntime environment and loads the model
func New(o Options) (*Detector, error) {
	o.defaults()
	labels, err := detector.LoadLabels(o.MetadataPath)
	if err != nil {
		return nil, err
	}
	if o.LibraryPath != "" {
		ort.SetSharedLibraryPath(o.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeNotConfigured, "initialize onnxruntime")
		}
	}
	n := anchors(o.ImageSize)
	s, err := newSession(o, len(labels), n)
	if err != nil {
		return nil, err
	}
	return newDetector(o, labels, s), nil
}

func newDetector(o Options, labels detector.Labels, r runner) *Detector {
	o.defaults()
	return &Detector{
		opt:     o,
		labels:  labels,
		anchors: anchors(o.ImageSize),
		run:     r,
		log:     logger.Named("detector.onnx"),
	}
}

// Detect decodes image, runs the model and returns boxes in source pixels after NMS
func (d *Detector) Detect(ctx context.Context, data []byte) ([]detector.Box, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unsupported image; expected JPEG or PNG")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "image too large: %dx%d", cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unsupported image; expected JPEG or PNG")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, f := letterbox(img, d.opt.ImageSize)
	out, err := d.run.Run(in)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "onnx inference failed")
	}
	boxes := nms(decode(out, len(d.labels), d.anchors, d.opt.MinScore, f, d.labels), d.opt.IoU)
	d.log.Debug().Int("boxes", len(boxes)).Int("w", f.srcW).Int("h", f.srcH).Msg("detected")
	return boxes, nil
}

// Close releases the session and the onnxruntime environment
func (d *Detector) Close() {
	if d.run != nil {
		d.run.Close()
	}
}

// session owns its tensors, so runs are serialized
type session struct {
	mu  sync.Mutex
	s   *ort.AdvancedSession
	in  *ort.Tensor[float32]
	out *ort.Tensor[float32]
}

func newSession(o Options, classes, n int) (*session, error) {
	size := int64(o.ImageSize)
	in, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeNotConfigured, "create input tensor")
	}
	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+classes), int64(n)))
	if err != nil {
		in.Destroy()
		return nil, perr.Wrap(err, perr.ErrorCodeNotConfigured, "create output tensor")
	}
	s, err := ort.NewAdvancedSession(o.ModelPath,
		[]string{o.InputName}, []string{o.OutputName},
		[]ort.ArbitraryTensor{in}, []ort.ArbitraryTensor{out},
		nil)
	if err != nil {
		in.Destroy()
		out.Destroy()
		return nil, perr.Wrapf(err, perr.ErrorCodeNotConfigured, "create onnx session for %s", o.ModelPath)
	}
	return &session{s: s, in: in, out: out}, nil
}

func (s *session) Run(in []float32) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.in.GetData(), in)
	if err := s.s.Run(); err != nil {
		return nil, err
	}
	return append([]float32(nil), s.out.GetData()...), nil
}

func (s *session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.in != nil {
		s.in.Destroy()
	}
	if s.out != nil {
		s.out.Destroy()
	}
	if s.s != nil {
		s.s.Destroy()
	}
	ort.DestroyEnvironment()
}
